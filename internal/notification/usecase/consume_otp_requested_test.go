package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/mail"
	"github.com/asnswap/asnswap/internal/pkg/validator"
)

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type stubClock struct{ t time.Time }

func (c stubClock) Now() time.Time { return c.t }

func newTestUsecase(t *testing.T, m *fakeMail) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  name: ASN Swap
modules:
  notification:
    support_email: support@asnswap.id
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewNotification(Dependency{
		Config:     cfg,
		Clock:      stubClock{t: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)},
		Validator:  v10,
		RepoMail:   m,
		Instrument: instrument.NewNoop(),
	})
}

func TestConsumeOTPRequested(t *testing.T) {

	t.Run("SendsLoginCodeEmail", func(t *testing.T) {

		// Arrange
		m := &fakeMail{}
		uc := newTestUsecase(t, m)

		// Act
		err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
			Email:     "ani@kemenkeu.go.id",
			Code:      "042517",
			ExpiresAt: time.Date(2026, 8, 25, 9, 10, 0, 0, time.UTC).Unix(),
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(m.sent) != 1 {
			t.Fatalf("expected one email, got %d", len(m.sent))
		}
		msg := m.sent[0]
		if msg.To[0] != "ani@kemenkeu.go.id" {
			t.Fatalf("unexpected recipient %q", msg.To[0])
		}
		if msg.Subject != "Your login code" {
			t.Fatalf("unexpected subject %q", msg.Subject)
		}
		if !strings.Contains(msg.HTMLBody, "042517") {
			t.Fatalf("expected code in body")
		}
		if !strings.Contains(msg.HTMLBody, "ASN Swap") {
			t.Fatalf("expected app name in body")
		}
	})

	t.Run("MalformedEventDropped", func(t *testing.T) {

		// Arrange
		m := &fakeMail{}
		uc := newTestUsecase(t, m)

		// Act
		err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
			Email: "not-an-email",
			Code:  "12",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected malformed event to be dropped without error, got %v", err)
		}
		if len(m.sent) != 0 {
			t.Fatalf("expected no email for malformed event")
		}
	})

	t.Run("SendFailureReturnedForRedelivery", func(t *testing.T) {

		// Arrange
		m := &fakeMail{err: errors.New("smtp: connection refused")}
		uc := newTestUsecase(t, m)

		// Act
		err := uc.ConsumeOTPRequested(context.Background(), ConsumeOTPRequestedInput{
			Email:     "ani@kemenkeu.go.id",
			Code:      "042517",
			ExpiresAt: time.Now().Add(10 * time.Minute).Unix(),
		})

		// Assert
		if err == nil {
			t.Fatalf("expected send failure to propagate")
		}
	})
}
