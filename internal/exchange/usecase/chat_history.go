package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
)

type ChatHistoryInput struct {
	WithEmail string `validate:"required,email"`
}

type ChatHistoryOutput struct {
	Messages []entity.Message
}

// ChatHistory returns the conversation between the authenticated caller and
// the other email, both directions, oldest first.
func (s *Usecase) ChatHistory(ctx context.Context, in ChatHistoryInput) (*ChatHistoryOutput, error) {
	ctx, span := s.startSpan(ctx, "ChatHistory")
	defer span.End()

	me, err := s.subjectEmail(ctx)
	if err != nil {
		return nil, err
	}

	in.WithEmail = strings.TrimSpace(strings.ToLower(in.WithEmail))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	messages, err := s.repoDB.GetConversation(ctx, me, in.WithEmail)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get conversation", "with", in.WithEmail, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ChatHistoryOutput{Messages: messages}, nil
}
