package usecase

import (
	"context"
	"log/slog"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
)

type MatchListOutput struct {
	Requests []entity.MatchRequest
}

// MatchList returns match requests the authenticated caller sent or received.
func (s *Usecase) MatchList(ctx context.Context) (*MatchListOutput, error) {
	ctx, span := s.startSpan(ctx, "MatchList")
	defer span.End()

	email, err := s.subjectEmail(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.repoDB.GetMatchRequestsByEmail(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get match requests", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MatchListOutput{Requests: requests}, nil
}
