package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/shared/constant"
)

type AdminVerifyInput struct {
	Email    string `validate:"required,email"`
	Verified bool
}

// AdminVerify marks a profile as verified (or revokes verification).
func (s *Usecase) AdminVerify(ctx context.Context, in AdminVerifyInput) error {
	ctx, span := s.startSpan(ctx, "AdminVerify")
	defer span.End()

	admin, err := s.authenticatedAndAuthorized(ctx, constant.PermExchangeAdmin, constant.PermActWrite)
	if err != nil {
		return err
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoDB.SetProfileVerified(ctx, in.Email, in.Verified)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Profile not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo set profile verified", "email", in.Email, "admin", admin, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "profile verification changed", "email", in.Email, "verified", in.Verified, "admin", admin)
	return nil
}
