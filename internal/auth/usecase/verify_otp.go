package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/asnswap/asnswap/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,passcode"`
}

type VerifyOTPOutput struct {
	AccessToken string
}

// VerifyOTP exchanges a pending login code for a session token.
//
// A code is single use: both the expired and the successful outcome remove
// every pending code for the email. A wrong code leaves the pending code in
// place so the user can retry within the window.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	pc, err := s.repoStore.Get(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verify requested without pending passcode", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid OTP", goerror.CodeBadRequest)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get passcode", "email", in.Email, "error", err)
		return nil, goerror.NewUnavailable(err)
	}

	if !s.hmac.Verify(pc.CodeHash, in.Code) {
		slog.WarnContext(ctx, "passcode mismatch", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid OTP", goerror.CodeBadRequest)
	}

	if pc.Expired(s.clock.Now()) {
		if err := s.repoStore.DeleteAll(ctx, in.Email); err != nil {
			slog.ErrorContext(ctx, "failed to delete expired passcode", "email", in.Email, "error", err)
			return nil, goerror.NewUnavailable(err)
		}

		return nil, goerror.NewBusiness("OTP expired", goerror.CodeBadRequest)
	}

	if err := s.repoStore.DeleteAll(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to delete used passcode", "email", in.Email, "error", err)
		return nil, goerror.NewUnavailable(err)
	}

	token, err := s.jwt.Generate(in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPOutput{AccessToken: token}, nil
}
