// Package payment integrates with Stripe for subscription checkout.
package payment

import (
	"context"
	"errors"

	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.opentelemetry.io/otel/codes"
)

// ErrKeyUnconfigured indicates the Stripe secret key is missing.
var ErrKeyUnconfigured = errors.New("pkgpayment: stripe secret key is not configured")

// CheckoutSession is the subset of a Stripe checkout session the app needs.
type CheckoutSession struct {
	ID  string
	URL string
}

// Config describes the subscription product sold at checkout.
type Config struct {
	// SecretKey is the Stripe API secret key.
	SecretKey string
	// Currency is the ISO currency code, e.g. "idr".
	Currency string
	// UnitAmount is the monthly price in the currency's smallest unit.
	UnitAmount int64
	// ProductName is shown on the Stripe checkout page.
	ProductName string
	// SuccessURL and CancelURL are the post-checkout redirects.
	SuccessURL string
	CancelURL  string
}

// Stripe creates subscription checkout sessions.
type Stripe struct {
	api *client.API
	cfg Config
	ins instrument.Instrumentation
}

func NewStripe(cfg Config, ins instrument.Instrumentation) *Stripe {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &Stripe{api: api, cfg: cfg, ins: ins}
}

// CreateSubscriptionCheckout opens a monthly subscription checkout session
// for the email and returns its ID and hosted payment URL.
func (s *Stripe) CreateSubscriptionCheckout(ctx context.Context, email string) (*CheckoutSession, error) {
	ctx, span := s.ins.Tracer("billing.outbound.payment").Start(ctx, "CreateSubscriptionCheckout")
	defer span.End()

	if s.cfg.SecretKey == "" {
		return nil, ErrKeyUnconfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(s.cfg.Currency),
				UnitAmount: stripe.Int64(s.cfg.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(s.cfg.ProductName),
				},
				Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
					Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(s.cfg.SuccessURL),
		CancelURL:  stripe.String(s.cfg.CancelURL),
	}
	params.Context = ctx

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
