package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
)

type ProfileGetInput struct {
	Email string `validate:"required,email"`
}

type ProfileGetOutput struct {
	Profile entity.Profile
}

func (s *Usecase) ProfileGet(ctx context.Context, in ProfileGetInput) (*ProfileGetOutput, error) {
	ctx, span := s.startSpan(ctx, "ProfileGet")
	defer span.End()

	if _, err := s.subjectEmail(ctx); err != nil {
		return nil, err
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	profile, err := s.repoDB.GetProfileByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Profile not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get profile", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileGetOutput{Profile: *profile}, nil
}
