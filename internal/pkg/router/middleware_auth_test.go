package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/jwt"
	"github.com/asnswap/asnswap/internal/pkg/uid"
)

type testClock struct{ t time.Time }

func (c testClock) Now() time.Time { return c.t }

func newTestRouter(t *testing.T) (*Router, jwt.JWT) {
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
		Clock:     testClock{t: time.Now()},
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := NewRouter(Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		JWT:        verifier,
		Instrument: instrument.NewNoop(),
	})

	r.GET("/api/me", func(req *Request) (any, error) {
		clm := jwt.GetAuth(req.Context())
		if clm == nil {
			t.Fatalf("expected claims in context for authenticated request")
		}
		return map[string]string{"email": clm.Subject}, nil
	})
	r.POST("/api/auth/request-otp", func(*Request) (any, error) {
		return map[string]string{"ok": "true"}, nil
	})

	return r, verifier
}

func TestMiddlewareAuthentication(t *testing.T) {

	t.Run("AllFailureModesLookTheSame", func(t *testing.T) {
		r, _ := newTestRouter(t)

		cases := []struct {
			name   string
			header string
		}{
			{name: "MissingHeader", header: ""},
			{name: "NonBearerScheme", header: "Basic YW5pOnNlY3JldA=="},
			{name: "GarbageToken", header: "Bearer not-a-jwt"},
			{name: "BearerWithoutToken", header: "Bearer"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {

				// Arrange
				req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
				if tc.header != "" {
					req.Header.Set("Authorization", tc.header)
				}
				rec := httptest.NewRecorder()

				// Act
				r.ServeHTTP(rec, req)

				// Assert
				if rec.Code != http.StatusUnauthorized {
					t.Fatalf("expected 401, got %d", rec.Code)
				}
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["message"] != "Authentication required" {
					t.Fatalf("expected uniform failure message, got %q", body["message"])
				}
			})
		}
	})

	t.Run("ValidTokenPassesThrough", func(t *testing.T) {

		// Arrange
		r, verifier := newTestRouter(t)
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
	})

	t.Run("PublicEndpointSkipsAuth", func(t *testing.T) {

		// Arrange
		r, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/request-otp", nil)
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 without a token, got %d", rec.Code)
		}
	})

	t.Run("WelcomeRouteIsPublic", func(t *testing.T) {

		// Arrange
		r, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
