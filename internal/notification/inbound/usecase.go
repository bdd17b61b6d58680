package inbound

import (
	"context"

	"github.com/asnswap/asnswap/internal/notification/usecase"
)

type uc interface {
	ConsumeOTPRequested(ctx context.Context, in usecase.ConsumeOTPRequestedInput) error
}
