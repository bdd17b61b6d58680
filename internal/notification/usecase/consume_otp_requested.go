package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/asnswap/asnswap/internal/pkg/mail"
)

const loginCodeBodyTemplate = `<p>Hello,</p>
<p>Your {{.company_name}} login code is:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px;">{{.code}}</p>
<p>The code expires at {{.expires_at}}. It can be used once.</p>
<p>If you did not request this code, you can ignore this email.</p>
<p>{{.company_name}} &middot; {{.support_email}} &middot; {{.year}}</p>`

type ConsumeOTPRequestedInput struct {
	Email     string `validate:"required,email"`
	Code      string `validate:"required,passcode"`
	ExpiresAt int64  `validate:"required,gt=0"`
}

// ConsumeOTPRequested emails the login code to the address that requested it.
// Malformed events are dropped so the broker does not redeliver them.
func (s *Usecase) ConsumeOTPRequested(ctx context.Context, in ConsumeOTPRequestedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPRequested")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["code"] = in.Code
	data["expires_at"] = time.Unix(in.ExpiresAt, 0).UTC().Format(time.RFC1123)

	body, err := s.renderTemplate("login_code", loginCodeBodyTemplate, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render login code email", "error", err)
		return nil
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  "Your login code",
		HTMLBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send login code email", "email", in.Email, "error", err)
		return err
	}

	return nil
}
