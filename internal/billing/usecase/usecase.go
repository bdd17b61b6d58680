package usecase

import (
	"context"

	"github.com/asnswap/asnswap/internal/billing/outbound/payment"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/idempotency"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoPayment interface {
	CreateSubscriptionCheckout(ctx context.Context, email string) (*payment.CheckoutSession, error)
}

type Usecase struct {
	repoPayment repoPayment
	validator   validator.Validator
	cfg         config.Config
	idem        idempotency.Idempotency
	ins         instrument.Instrumentation
}

type Dependency struct {
	RepoPayment repoPayment
	Validator   validator.Validator
	Config      config.Config
	Idempotency idempotency.Idempotency
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoPayment: dep.RepoPayment,
		validator:   dep.Validator,
		cfg:         dep.Config,
		idem:        dep.Idempotency,
		ins:         dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("billing.usecase").Start(ctx, name)
}
