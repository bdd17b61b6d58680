package jwt

import (
	"errors"
	"testing"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type staticID struct{ id string }

func (s staticID) Generate() string { return s.id }

func newTestJWT(t *testing.T, now time.Time) *Symmetric {
	t.Helper()

	j, err := NewHS256(Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
		Issuer:    "asnswap",
		Audiences: []string{"asnswap-api"},
		TTL:       7 * 24 * time.Hour,
		Clock:     fixedClock{t: now},
		UUID:      staticID{id: "jti-1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return j
}

func TestNewHS256(t *testing.T) {

	t.Run("RejectsShortSecret", func(t *testing.T) {

		// Arrange
		cfg := Config{Secret: []byte("too-short")}

		// Act
		_, err := NewHS256(cfg)

		// Assert
		if !errors.Is(err, ErrSigningKeyTooShort) {
			t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
		}
	})
}

func TestSymmetricGenerateVerify(t *testing.T) {

	t.Run("RoundTrip", func(t *testing.T) {

		// Arrange
		j := newTestJWT(t, time.Now())

		// Act
		token, err := j.Generate("ani@kemenkeu.go.id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := j.Verify(token)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.Subject != "ani@kemenkeu.go.id" {
			t.Fatalf("expected subject to be the email, got %q", claims.Subject)
		}
		if claims.UserEmail != "ani@kemenkeu.go.id" {
			t.Fatalf("expected user_email to mirror subject, got %q", claims.UserEmail)
		}
		if claims.ID != "jti-1" {
			t.Fatalf("expected token id jti-1, got %q", claims.ID)
		}
	})

	t.Run("SevenDayExpiry", func(t *testing.T) {

		// Arrange
		now := time.Now()
		j := newTestJWT(t, now)

		// Act
		token, err := j.Generate("ani@kemenkeu.go.id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := j.Verify(token)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := now.Add(7 * 24 * time.Hour).Unix()
		if claims.ExpiresAt.Unix() != want {
			t.Fatalf("expected exp %d, got %d", want, claims.ExpiresAt.Unix())
		}
	})

	t.Run("TamperedTokenFails", func(t *testing.T) {

		// Arrange
		j := newTestJWT(t, time.Now())
		token, err := j.Generate("ani@kemenkeu.go.id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		_, err = j.Verify(token + "x")

		// Assert
		if err == nil {
			t.Fatalf("expected tampered token to fail verification")
		}
	})

	t.Run("ExpiredTokenFails", func(t *testing.T) {

		// Arrange
		j := newTestJWT(t, time.Now().Add(-8*24*time.Hour))
		token, err := j.Generate("ani@kemenkeu.go.id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		_, err = j.Verify(token)

		// Assert
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("WrongSigningMethodFails", func(t *testing.T) {

		// Arrange
		j := newTestJWT(t, time.Now())
		now := time.Now()
		foreign, err := libJWT.NewWithClaims(libJWT.SigningMethodHS512, libJWT.RegisteredClaims{
			Subject:   "ani@kemenkeu.go.id",
			Issuer:    "asnswap",
			Audience:  []string{"asnswap-api"},
			IssuedAt:  libJWT.NewNumericDate(now),
			ExpiresAt: libJWT.NewNumericDate(now.Add(time.Hour)),
		}).SignedString([]byte("0123456789abcdef0123456789abcdef"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		_, err = j.Verify(foreign)

		// Assert
		if err == nil {
			t.Fatalf("expected non-HS256 token to fail verification")
		}
	})

	t.Run("WrongIssuerFails", func(t *testing.T) {

		// Arrange
		other, err := NewHS256(Config{
			Secret:    []byte("0123456789abcdef0123456789abcdef"),
			Issuer:    "someone-else",
			Audiences: []string{"asnswap-api"},
			TTL:       time.Hour,
			Clock:     fixedClock{t: time.Now()},
			UUID:      staticID{id: "jti-2"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		token, err := other.Generate("ani@kemenkeu.go.id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		j := newTestJWT(t, time.Now())

		// Act
		_, err = j.Verify(token)

		// Assert
		if err == nil {
			t.Fatalf("expected wrong-issuer token to fail verification")
		}
	})
}
