package usecase

import (
	"context"
	"log/slog"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
)

type SearchInput struct {
	DesiredRegion string
	CurrentRegion string
	Agency        string
}

type SearchOutput struct {
	Profiles []entity.Profile
}

// Search finds swap candidates. Every set filter matches as a
// case-insensitive substring; an empty filter returns all profiles.
func (s *Usecase) Search(ctx context.Context, in SearchInput) (*SearchOutput, error) {
	ctx, span := s.startSpan(ctx, "Search")
	defer span.End()

	if _, err := s.subjectEmail(ctx); err != nil {
		return nil, err
	}

	profiles, err := s.repoDB.SearchProfiles(ctx, entity.ProfileFilter{
		DesiredRegion: in.DesiredRegion,
		CurrentRegion: in.CurrentRegion,
		Agency:        in.Agency,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo search profiles", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SearchOutput{Profiles: profiles}, nil
}
