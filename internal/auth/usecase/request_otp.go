package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/asnswap/asnswap/internal/auth/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
)

type RequestOTPInput struct {
	Email string `validate:"required,email"`
}

type RequestOTPOutput struct {
	// DebugCode carries the plaintext code back to the caller and is only
	// populated when modules.auth.expose_debug_code is enabled.
	DebugCode string
}

// RequestOTP issues a fresh login code for the email, replacing any code
// that was issued before. The code travels to the user by email; a publish
// failure is logged but does not fail the request.
func (s *Usecase) RequestOTP(ctx context.Context, in RequestOTPInput) (*RequestOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "RequestOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	code, err := s.passcode.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate passcode", "error", err)
		return nil, goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash passcode", "error", err)
		return nil, goerror.NewServer(err)
	}

	expiresAt := s.clock.Now().Add(s.cfg.GetSecond("modules.auth.otp_ttl_seconds"))
	if err := s.repoStore.Replace(ctx, entity.Passcode{
		Email:     in.Email,
		CodeHash:  string(codeHash),
		Purpose:   entity.PasscodePurposeLogin,
		ExpiresAt: expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store passcode", "email", in.Email, "error", err)
		return nil, goerror.NewUnavailable(err)
	}

	if err := s.repoMessaging.PublishOTPRequested(ctx, OTPRequestedEvent{
		Email:     in.Email,
		Code:      code,
		ExpiresAt: expiresAt.Unix(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp requested", "email", in.Email, "error", err)
	}

	out := &RequestOTPOutput{}
	if s.cfg.GetBool("modules.auth.expose_debug_code") {
		out.DebugCode = code
	}

	return out, nil
}
