package inbound

import (
	"context"

	"github.com/asnswap/asnswap/internal/billing/usecase"
	"github.com/asnswap/asnswap/internal/pkg/router"
)

type uc interface {
	CheckoutSession(ctx context.Context, in usecase.CheckoutSessionInput) (*usecase.CheckoutSessionOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/checkout/session", end.CheckoutSession)
}
