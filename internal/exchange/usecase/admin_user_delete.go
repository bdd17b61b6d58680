package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/shared/constant"
)

type AdminUserDeleteInput struct {
	Email string `validate:"required,email"`
}

// AdminUserDelete removes a profile along with its chat messages.
func (s *Usecase) AdminUserDelete(ctx context.Context, in AdminUserDeleteInput) error {
	ctx, span := s.startSpan(ctx, "AdminUserDelete")
	defer span.End()

	admin, err := s.authenticatedAndAuthorized(ctx, constant.PermExchangeAdmin, constant.PermActDelete)
	if err != nil {
		return err
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoDB.DeleteProfileByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Profile not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete profile", "email", in.Email, "admin", admin, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "profile deleted", "email", in.Email, "admin", admin)
	return nil
}
