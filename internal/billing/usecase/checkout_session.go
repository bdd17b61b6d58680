package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/asnswap/asnswap/internal/billing/outbound/payment"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/idempotency"
	"github.com/stripe/stripe-go/v82"
)

type CheckoutSessionInput struct {
	Email string `validate:"required,email"`
}

type CheckoutSessionOutput struct {
	ID  string
	URL string
}

// CheckoutSession opens a Stripe checkout session for the premium
// subscription. Concurrent attempts for the same email are collapsed into
// one session.
func (s *Usecase) CheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSessionOutput, error) {
	ctx, span := s.startSpan(ctx, "CheckoutSession")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var sess *payment.CheckoutSession
	err := s.idem.Exec(ctx, "checkout:"+in.Email, func(ctx context.Context) error {
		var execErr error
		sess, execErr = s.repoPayment.CreateSubscriptionCheckout(ctx, in.Email)
		return execErr
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.billing.checkout_lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetSecond("modules.billing.checkout_lock_seconds")),
	)

	switch {
	case err == nil:
		return &CheckoutSessionOutput{ID: sess.ID, URL: sess.URL}, nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyFailed):
		return nil, goerror.NewBusiness("Checkout already in progress", goerror.CodeTooManyRequest)
	case errors.Is(err, payment.ErrKeyUnconfigured):
		slog.ErrorContext(ctx, "stripe key is not configured")
		return nil, goerror.NewServer(err)
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		slog.WarnContext(ctx, "stripe rejected checkout", "email", in.Email, "error", err)
		return nil, goerror.NewBusiness("Payment provider rejected the request", goerror.CodeBadRequest)
	}

	slog.ErrorContext(ctx, "failed to create checkout session", "email", in.Email, "error", err)
	return nil, goerror.NewServer(err)
}
