package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
)

type MatchRequestInput struct {
	TargetEmail string `validate:"required,email"`
	Note        string `validate:"max=1000"`
}

// MatchRequest records a swap proposal from the authenticated caller to the
// target profile.
func (s *Usecase) MatchRequest(ctx context.Context, in MatchRequestInput) error {
	ctx, span := s.startSpan(ctx, "MatchRequest")
	defer span.End()

	requester, err := s.subjectEmail(ctx)
	if err != nil {
		return err
	}

	in.TargetEmail = strings.TrimSpace(strings.ToLower(in.TargetEmail))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if in.TargetEmail == requester {
		return goerror.NewInvalidInput(nil, "target_email", "cannot request a match with yourself")
	}

	if err := s.repoDB.CreateMatchRequest(ctx, entity.MatchRequest{
		ID:             s.uid.Generate(),
		RequesterEmail: requester,
		TargetEmail:    in.TargetEmail,
		Note:           in.Note,
		Status:         entity.MatchStatusPending,
		CreatedAt:      s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create match request", "requester", requester, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
