package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/valueobject"
)

type ChatSendInput struct {
	ToEmail string `validate:"required,email"`
	Body    string `validate:"required,max=4000"`
}

// ChatSend stores a chat message from the authenticated caller. The sender
// is always the token subject; it cannot be spoofed from the body.
func (s *Usecase) ChatSend(ctx context.Context, in ChatSendInput) error {
	ctx, span := s.startSpan(ctx, "ChatSend")
	defer span.End()

	from, err := s.subjectEmail(ctx)
	if err != nil {
		return err
	}

	in.ToEmail = strings.TrimSpace(strings.ToLower(in.ToEmail))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if in.ToEmail == from {
		return goerror.NewInvalidInput(nil, "to_email", "cannot message yourself")
	}

	if err := s.repoDB.CreateMessage(ctx, entity.Message{
		ID:        s.uid.Generate(),
		FromEmail: from,
		ToEmail:   in.ToEmail,
		Body:      in.Body,
		Read:      false,
		Metadata:  valueobject.JSONMap{},
		CreatedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create message", "from", from, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
