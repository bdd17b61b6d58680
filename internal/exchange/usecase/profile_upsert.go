package usecase

import (
	"context"
	"log/slog"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
)

type ProfileUpsertInput struct {
	Name          string `validate:"required"`
	NIP           string
	Agency        string `validate:"required"`
	Position      string `validate:"required"`
	Grade         string
	CurrentRegion string `validate:"required"`
	DesiredRegion string `validate:"required"`
}

// ProfileUpsert creates or updates the caller's swap profile. The profile
// email is always the authenticated subject; it cannot be set from the body.
func (s *Usecase) ProfileUpsert(ctx context.Context, in ProfileUpsertInput) error {
	ctx, span := s.startSpan(ctx, "ProfileUpsert")
	defer span.End()

	email, err := s.subjectEmail(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	if err := s.repoDB.UpsertProfile(ctx, entity.Profile{
		ID:            s.uid.Generate(),
		Email:         email,
		Name:          in.Name,
		NIP:           in.NIP,
		Agency:        in.Agency,
		Position:      in.Position,
		Grade:         in.Grade,
		CurrentRegion: in.CurrentRegion,
		DesiredRegion: in.DesiredRegion,
		IsSubscribed:  false,
		IsVerified:    false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert profile", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
