// Package billing sells the premium subscription through Stripe checkout.
package billing

import (
	"github.com/asnswap/asnswap/internal/billing/inbound"
	"github.com/asnswap/asnswap/internal/billing/outbound/payment"
	"github.com/asnswap/asnswap/internal/billing/usecase"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/idempotency"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/router"
	"github.com/asnswap/asnswap/internal/pkg/validator"
)

type Dependency struct {
	Router      *router.Router             `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	stripePayment := payment.NewStripe(payment.Config{
		SecretKey:   dep.Config.GetString("modules.billing.stripe_secret_key"),
		Currency:    dep.Config.GetString("modules.billing.currency"),
		UnitAmount:  dep.Config.GetInt64("modules.billing.monthly_amount"),
		ProductName: dep.Config.GetString("modules.billing.product_name"),
		SuccessURL:  dep.Config.GetString("modules.billing.success_url"),
		CancelURL:   dep.Config.GetString("modules.billing.cancel_url"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoPayment: stripePayment,
		Validator:   dep.Validator,
		Config:      dep.Config,
		Idempotency: dep.Idempotency,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
