package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/asnswap/asnswap/internal/billing/outbound/payment"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/idempotency"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/validator"
	"github.com/stripe/stripe-go/v82"
)

type fakePayment struct {
	sess *payment.CheckoutSession
	err  error

	gotEmail string
}

func (f *fakePayment) CreateSubscriptionCheckout(_ context.Context, email string) (*payment.CheckoutSession, error) {
	f.gotEmail = email
	if f.err != nil {
		return nil, f.err
	}
	return f.sess, nil
}

type fakeIdempotency struct {
	state idempotency.State
	keys  []string
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return f.state, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	switch f.state {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}
	return fn(ctx)
}

func newTestUsecase(t *testing.T, pay *fakePayment, idem *fakeIdempotency) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  billing:
    checkout_lock_seconds: 60
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return New(Dependency{
		RepoPayment: pay,
		Validator:   v10,
		Config:      cfg,
		Idempotency: idem,
		Instrument:  instrument.NewNoop(),
	})
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %T (%v)", err, err)
	}
	return gerr.StatusCode()
}

func TestCheckoutSession(t *testing.T) {

	t.Run("ReturnsSessionIDAndURL", func(t *testing.T) {

		// Arrange
		pay := &fakePayment{sess: &payment.CheckoutSession{
			ID:  "cs_test_123",
			URL: "https://checkout.stripe.com/c/pay/cs_test_123",
		}}
		idem := &fakeIdempotency{state: idempotency.StateNone}
		uc := newTestUsecase(t, pay, idem)

		// Act
		out, err := uc.CheckoutSession(context.Background(), CheckoutSessionInput{Email: "Ani@Kemenkeu.go.id"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ID != "cs_test_123" || out.URL == "" {
			t.Fatalf("unexpected output %+v", out)
		}
		if pay.gotEmail != "ani@kemenkeu.go.id" {
			t.Fatalf("expected normalized email, got %q", pay.gotEmail)
		}
		if len(idem.keys) != 1 || idem.keys[0] != "checkout:ani@kemenkeu.go.id" {
			t.Fatalf("unexpected idempotency keys %v", idem.keys)
		}
	})

	t.Run("ConcurrentCheckoutCollapsed", func(t *testing.T) {

		// Arrange
		pay := &fakePayment{}
		idem := &fakeIdempotency{state: idempotency.StateInProgress}
		uc := newTestUsecase(t, pay, idem)

		// Act
		_, err := uc.CheckoutSession(context.Background(), CheckoutSessionInput{Email: "ani@kemenkeu.go.id"})

		// Assert
		if got := statusOf(t, err); got != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", got)
		}
		if pay.gotEmail != "" {
			t.Fatalf("expected provider not called while in progress")
		}
	})

	t.Run("UnconfiguredKeyIsServerError", func(t *testing.T) {

		// Arrange
		pay := &fakePayment{err: payment.ErrKeyUnconfigured}
		idem := &fakeIdempotency{state: idempotency.StateNone}
		uc := newTestUsecase(t, pay, idem)

		// Act
		_, err := uc.CheckoutSession(context.Background(), CheckoutSessionInput{Email: "ani@kemenkeu.go.id"})

		// Assert
		if got := statusOf(t, err); got != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", got)
		}
	})

	t.Run("ProviderRejectionIsBadRequest", func(t *testing.T) {

		// Arrange
		pay := &fakePayment{err: &stripe.Error{Msg: "No such price"}}
		idem := &fakeIdempotency{state: idempotency.StateNone}
		uc := newTestUsecase(t, pay, idem)

		// Act
		_, err := uc.CheckoutSession(context.Background(), CheckoutSessionInput{Email: "ani@kemenkeu.go.id"})

		// Assert
		if got := statusOf(t, err); got != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", got)
		}
	})

	t.Run("InvalidEmailRejected", func(t *testing.T) {

		// Arrange
		pay := &fakePayment{}
		idem := &fakeIdempotency{state: idempotency.StateNone}
		uc := newTestUsecase(t, pay, idem)

		// Act
		_, err := uc.CheckoutSession(context.Background(), CheckoutSessionInput{Email: "not-an-email"})

		// Assert
		if got := statusOf(t, err); got != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", got)
		}
		if len(idem.keys) != 0 {
			t.Fatalf("expected no idempotency attempt for invalid input")
		}
	})
}
