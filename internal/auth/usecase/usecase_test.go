package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/asnswap/asnswap/internal/auth/entity"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/jwt"
	"github.com/asnswap/asnswap/internal/pkg/validator"
	libJWT "github.com/golang-jwt/jwt/v5"
)

type fakeStore struct {
	data       map[string]entity.Passcode
	replaceErr error
	getErr     error
	deleteErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]entity.Passcode{}}
}

func (f *fakeStore) Replace(_ context.Context, pc entity.Passcode) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.data[pc.Email] = pc
	return nil
}

func (f *fakeStore) Get(_ context.Context, email string) (*entity.Passcode, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	pc, ok := f.data[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &pc, nil
}

func (f *fakeStore) DeleteAll(_ context.Context, email string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.data, email)
	return nil
}

type fakeMessaging struct {
	published []OTPRequestedEvent
	err       error
}

func (f *fakeMessaging) PublishOTPRequested(_ context.Context, msg OTPRequestedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

type fakePasscode struct{ code string }

func (f fakePasscode) Generate() (string, error) { return f.code, nil }

type fakeHash struct{}

func (fakeHash) Hash(str string) ([]byte, error) { return []byte("hashed:" + str), nil }

func (fakeHash) Verify(hashed, str string) bool { return hashed == "hashed:"+str }

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type fakeJWT struct{ err error }

func (f fakeJWT) Generate(email string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + email, nil
}

func (fakeJWT) Verify(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

type fixture struct {
	uc    *Usecase
	store *fakeStore
	msg   *fakeMessaging
	now   time.Time
}

func newFixture(t *testing.T, cfgYAML string) *fixture {
	t.Helper()

	if cfgYAML == "" {
		cfgYAML = `
modules:
  auth:
    otp_ttl_seconds: 600
    expose_debug_code: false
`
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte(cfgYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := newFakeStore()
	msg := &fakeMessaging{}
	now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	uc := New(Dependency{
		RepoStore:     store,
		RepoMessaging: msg,
		Validator:     v10,
		Config:        cfg,
		Passcode:      fakePasscode{code: "042517"},
		HMAC:          fakeHash{},
		Clock:         fakeClock{t: now},
		JWT:           fakeJWT{},
		Instrument:    instrument.NewNoop(),
	})

	return &fixture{uc: uc, store: store, msg: msg, now: now}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %T (%v)", err, err)
	}
	return gerr.StatusCode()
}

func TestRequestOTP(t *testing.T) {

	t.Run("StoresHashedCodeWithTTL", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")

		// Act
		out, err := f.uc.RequestOTP(context.Background(), RequestOTPInput{Email: "Ani@Kemenkeu.go.id"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pc, ok := f.store.data["ani@kemenkeu.go.id"]
		if !ok {
			t.Fatalf("expected passcode stored under normalized email")
		}
		if pc.CodeHash != "hashed:042517" {
			t.Fatalf("expected hashed code at rest, got %q", pc.CodeHash)
		}
		if pc.Purpose != entity.PasscodePurposeLogin {
			t.Fatalf("expected login purpose, got %q", pc.Purpose)
		}
		if want := f.now.Add(600 * time.Second); !pc.ExpiresAt.Equal(want) {
			t.Fatalf("expected expiry %v, got %v", want, pc.ExpiresAt)
		}
		if out.DebugCode != "" {
			t.Fatalf("expected no debug code by default, got %q", out.DebugCode)
		}
	})

	t.Run("PublishesEventWithPlaintextCode", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")

		// Act
		_, err := f.uc.RequestOTP(context.Background(), RequestOTPInput{Email: "ani@kemenkeu.go.id"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.msg.published) != 1 {
			t.Fatalf("expected one published event, got %d", len(f.msg.published))
		}
		ev := f.msg.published[0]
		if ev.Email != "ani@kemenkeu.go.id" || ev.Code != "042517" {
			t.Fatalf("unexpected event %+v", ev)
		}
		if ev.ExpiresAt != f.now.Add(600*time.Second).Unix() {
			t.Fatalf("unexpected event expiry %d", ev.ExpiresAt)
		}
	})

	t.Run("ReplacesPreviousCode", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		f.store.data["ani@kemenkeu.go.id"] = entity.Passcode{
			Email:    "ani@kemenkeu.go.id",
			CodeHash: "hashed:999999",
			Purpose:  entity.PasscodePurposeLogin,
		}

		// Act
		_, err := f.uc.RequestOTP(context.Background(), RequestOTPInput{Email: "ani@kemenkeu.go.id"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.store.data) != 1 {
			t.Fatalf("expected exactly one pending passcode, got %d", len(f.store.data))
		}
		if f.store.data["ani@kemenkeu.go.id"].CodeHash != "hashed:042517" {
			t.Fatalf("expected old code replaced")
		}
	})

	t.Run("PublishFailureStillSucceeds", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		f.msg.err = errors.New("broker down")

		// Act
		_, err := f.uc.RequestOTP(context.Background(), RequestOTPInput{Email: "ani@kemenkeu.go.id"})

		// Assert
		if err != nil {
			t.Fatalf("expected request to succeed despite publish failure, got %v", err)
		}
		if _, ok := f.store.data["ani@kemenkeu.go.id"]; !ok {
			t.Fatalf("expected passcode stored")
		}
	})

	t.Run("StoreFailureIsUnavailable", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		f.store.replaceErr = errors.New("redis: connection refused")

		// Act
		_, err := f.uc.RequestOTP(context.Background(), RequestOTPInput{Email: "ani@kemenkeu.go.id"})

		// Assert
		if got := statusOf(t, err); got != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", got)
		}
	})

	t.Run("InvalidEmailRejected", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")

		// Act
		_, err := f.uc.RequestOTP(context.Background(), RequestOTPInput{Email: "not-an-email"})

		// Assert
		if got := statusOf(t, err); got != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", got)
		}
		if len(f.store.data) != 0 {
			t.Fatalf("expected nothing stored for invalid input")
		}
	})

	t.Run("DebugCodeExposedWhenEnabled", func(t *testing.T) {

		// Arrange
		f := newFixture(t, `
modules:
  auth:
    otp_ttl_seconds: 600
    expose_debug_code: true
`)

		// Act
		out, err := f.uc.RequestOTP(context.Background(), RequestOTPInput{Email: "ani@kemenkeu.go.id"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.DebugCode != "042517" {
			t.Fatalf("expected debug code when enabled, got %q", out.DebugCode)
		}
	})
}

func TestVerifyOTP(t *testing.T) {
	issue := func(t *testing.T, f *fixture) {
		t.Helper()
		if _, err := f.uc.RequestOTP(context.Background(), RequestOTPInput{Email: "ani@kemenkeu.go.id"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("ValidCodeReturnsToken", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		issue(t, f)

		// Act
		out, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "ani@kemenkeu.go.id", Code: "042517"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken != "token-for-ani@kemenkeu.go.id" {
			t.Fatalf("unexpected token %q", out.AccessToken)
		}
		if len(f.store.data) != 0 {
			t.Fatalf("expected used code removed")
		}
	})

	t.Run("CodeIsSingleUse", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		issue(t, f)
		if _, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "ani@kemenkeu.go.id", Code: "042517"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "ani@kemenkeu.go.id", Code: "042517"})

		// Assert
		if got := statusOf(t, err); got != http.StatusBadRequest {
			t.Fatalf("expected 400 on reuse, got %d", got)
		}
	})

	t.Run("WrongCodeLeavesPendingCode", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		issue(t, f)

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "ani@kemenkeu.go.id", Code: "000000"})

		// Assert
		if got := statusOf(t, err); got != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", got)
		}
		if _, ok := f.store.data["ani@kemenkeu.go.id"]; !ok {
			t.Fatalf("expected pending code to survive a wrong attempt")
		}

		// The original code still works afterwards.
		if _, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "ani@kemenkeu.go.id", Code: "042517"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("UnknownEmailIsInvalid", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "nobody@kemenkeu.go.id", Code: "042517"})

		// Assert
		if got := statusOf(t, err); got != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", got)
		}
	})

	t.Run("ExpiredCodeIsConsumed", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		f.store.data["ani@kemenkeu.go.id"] = entity.Passcode{
			Email:     "ani@kemenkeu.go.id",
			CodeHash:  "hashed:042517",
			Purpose:   entity.PasscodePurposeLogin,
			ExpiresAt: f.now.Add(-time.Second),
		}

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "ani@kemenkeu.go.id", Code: "042517"})

		// Assert
		if got := statusOf(t, err); got != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", got)
		}
		if len(f.store.data) != 0 {
			t.Fatalf("expected expired code removed")
		}
	})

	t.Run("CodeValidAtExactExpiryInstant", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		f.store.data["ani@kemenkeu.go.id"] = entity.Passcode{
			Email:     "ani@kemenkeu.go.id",
			CodeHash:  "hashed:042517",
			Purpose:   entity.PasscodePurposeLogin,
			ExpiresAt: f.now,
		}

		// Act
		out, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "ani@kemenkeu.go.id", Code: "042517"})

		// Assert
		if err != nil {
			t.Fatalf("expected code to be accepted at the expiry instant, got %v", err)
		}
		if out.AccessToken == "" {
			t.Fatalf("expected access token")
		}
	})

	t.Run("StoreFailureIsUnavailable", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		f.store.getErr = errors.New("redis: connection refused")

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "ani@kemenkeu.go.id", Code: "042517"})

		// Assert
		if got := statusOf(t, err); got != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", got)
		}
	})

	t.Run("MalformedCodeRejected", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		issue(t, f)

		// Act
		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "ani@kemenkeu.go.id", Code: "42517"})

		// Assert
		if got := statusOf(t, err); got != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", got)
		}
	})
}

func TestMe(t *testing.T) {

	t.Run("ReturnsAuthenticatedEmail", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")
		ctx := jwt.SetAuth(context.Background(), jwt.Claims{
			RegisteredClaims: libJWT.RegisteredClaims{Subject: "ani@kemenkeu.go.id"},
			UserEmail:        "ani@kemenkeu.go.id",
		})

		// Act
		out, err := f.uc.Me(ctx)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Email != "ani@kemenkeu.go.id" {
			t.Fatalf("unexpected email %q", out.Email)
		}
	})

	t.Run("MissingAuthRejected", func(t *testing.T) {

		// Arrange
		f := newFixture(t, "")

		// Act
		_, err := f.uc.Me(context.Background())

		// Assert
		if got := statusOf(t, err); got != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", got)
		}
	})
}
