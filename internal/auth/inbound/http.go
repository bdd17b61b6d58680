package inbound

import (
	"context"

	"github.com/asnswap/asnswap/internal/auth/usecase"
	"github.com/asnswap/asnswap/internal/pkg/router"
)

type uc interface {
	RequestOTP(ctx context.Context, in usecase.RequestOTPInput) (*usecase.RequestOTPOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
	Me(ctx context.Context) (*usecase.MeOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/auth/request-otp", end.RequestOTP)
	r.POST("/api/auth/verify-otp", end.VerifyOTP)

	r.GET("/api/me", end.Me) // need authenticated
}
