package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/asnswap/asnswap/internal/auth/usecase"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/jwt"
	"github.com/asnswap/asnswap/internal/pkg/router"
	"github.com/asnswap/asnswap/internal/pkg/uid"
)

type fakeUC struct {
	requestOut *usecase.RequestOTPOutput
	requestErr error
	verifyOut  *usecase.VerifyOTPOutput
	verifyErr  error
}

func (f *fakeUC) RequestOTP(context.Context, usecase.RequestOTPInput) (*usecase.RequestOTPOutput, error) {
	return f.requestOut, f.requestErr
}

func (f *fakeUC) VerifyOTP(context.Context, usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error) {
	return f.verifyOut, f.verifyErr
}

func (f *fakeUC) Me(ctx context.Context) (*usecase.MeOutput, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	return &usecase.MeOutput{Email: clm.Subject}, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newServer(t *testing.T, uc uc) (*router.Router, jwt.JWT) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verifier, err := jwt.NewHS256(jwt.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
		Issuer:    "asnswap",
		Audiences: []string{"asnswap-api"},
		TTL:       time.Hour,
		Clock:     fixedClock{t: time.Now()},
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		JWT:        verifier,
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(r, uc)

	return r, verifier
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestRequestOTPEndpoint(t *testing.T) {

	t.Run("HidesCodeByDefault", func(t *testing.T) {

		// Arrange
		r, _ := newServer(t, &fakeUC{requestOut: &usecase.RequestOTPOutput{}})
		body := strings.NewReader(`{"email":"ani@kemenkeu.go.id"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/request-otp", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if strings.Contains(rec.Body.String(), "debug_code") {
			t.Fatalf("expected debug_code omitted, got %s", rec.Body.String())
		}
		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if env.Message != "If the email is valid, a login code has been sent." {
			t.Fatalf("unexpected message %q", env.Message)
		}
	})

	t.Run("ExposesDebugCodeWhenSet", func(t *testing.T) {

		// Arrange
		r, _ := newServer(t, &fakeUC{requestOut: &usecase.RequestOTPOutput{DebugCode: "042517"}})
		body := strings.NewReader(`{"email":"ani@kemenkeu.go.id"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/request-otp", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		var data struct {
			DebugCode string `json:"debug_code"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.DebugCode != "042517" {
			t.Fatalf("expected debug code, got %q", data.DebugCode)
		}
	})

	t.Run("StoreOutageSurfacesAs503", func(t *testing.T) {

		// Arrange
		r, _ := newServer(t, &fakeUC{requestErr: goerror.NewUnavailable(context.DeadlineExceeded)})
		body := strings.NewReader(`{"email":"ani@kemenkeu.go.id"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/request-otp", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

func TestVerifyOTPEndpoint(t *testing.T) {

	t.Run("ReturnsBearerToken", func(t *testing.T) {

		// Arrange
		r, _ := newServer(t, &fakeUC{verifyOut: &usecase.VerifyOTPOutput{AccessToken: "tok"}})
		body := strings.NewReader(`{"email":"ani@kemenkeu.go.id","code":"042517"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		var data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.AccessToken != "tok" || data.TokenType != "bearer" {
			t.Fatalf("unexpected data %+v", data)
		}
	})

	t.Run("InvalidCodeIs400", func(t *testing.T) {

		// Arrange
		r, _ := newServer(t, &fakeUC{verifyErr: goerror.NewBusiness("Invalid OTP", goerror.CodeBadRequest)})
		body := strings.NewReader(`{"email":"ani@kemenkeu.go.id","code":"000000"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var resp struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp.Message != "Invalid OTP" {
			t.Fatalf("unexpected message %q", resp.Message)
		}
	})
}

func TestMeEndpoint(t *testing.T) {

	t.Run("RequiresToken", func(t *testing.T) {

		// Arrange
		r, _ := newServer(t, &fakeUC{})
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("ReturnsTokenSubject", func(t *testing.T) {

		// Arrange
		r, verifier := newServer(t, &fakeUC{})
		token, err := verifier.Generate("ani@kemenkeu.go.id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		var data struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if data.Email != "ani@kemenkeu.go.id" {
			t.Fatalf("unexpected email %q", data.Email)
		}
	})
}
