package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/asnswap/asnswap/internal/auth/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	goredis "github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// newTestRedis spins up a disposable redis container. These tests need a
// local docker daemon, so they are opt-in.
func newTestRedis(t *testing.T) *Redis {
	t.Helper()

	if os.Getenv("ASNSWAP_TEST_CONTAINERS") == "" {
		t.Skip("set ASNSWAP_TEST_CONTAINERS=1 to run container-backed tests")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate redis container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis connection string: %v", err)
	}
	opts, err := goredis.ParseURL(uri)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := goredis.NewClient(opts)
	t.Cleanup(func() { client.Close() })

	return NewRedis(client, instrument.NewNoop(), 15*time.Minute)
}

func TestRedisStore(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()

	t.Run("ReplaceThenGet", func(t *testing.T) {

		// Arrange
		expires := time.Now().Add(10 * time.Minute)
		pc := entity.Passcode{
			Email:     "ani@kemenkeu.go.id",
			CodeHash:  "hash-1",
			Purpose:   entity.PasscodePurposeLogin,
			ExpiresAt: expires,
		}

		// Act
		if err := r.Replace(ctx, pc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := r.Get(ctx, "ani@kemenkeu.go.id")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.CodeHash != "hash-1" || got.Purpose != entity.PasscodePurposeLogin {
			t.Fatalf("unexpected passcode %+v", got)
		}
		if got.ExpiresAt.Unix() != expires.Unix() {
			t.Fatalf("expected expiry %d, got %d", expires.Unix(), got.ExpiresAt.Unix())
		}
	})

	t.Run("ReplaceOverwritesPreviousCode", func(t *testing.T) {

		// Arrange
		email := "budi@bkn.go.id"
		first := entity.Passcode{Email: email, CodeHash: "hash-old", Purpose: entity.PasscodePurposeLogin, ExpiresAt: time.Now().Add(time.Minute)}
		second := entity.Passcode{Email: email, CodeHash: "hash-new", Purpose: entity.PasscodePurposeLogin, ExpiresAt: time.Now().Add(10 * time.Minute)}

		// Act
		if err := r.Replace(ctx, first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := r.Replace(ctx, second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := r.Get(ctx, email)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.CodeHash != "hash-new" {
			t.Fatalf("expected latest code to win, got %q", got.CodeHash)
		}
	})

	t.Run("GetUnknownEmailIsNotFound", func(t *testing.T) {

		// Act
		_, err := r.Get(ctx, "nobody@kemendagri.go.id")

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteAllRemovesPendingCode", func(t *testing.T) {

		// Arrange
		email := "citra@kemdikbud.go.id"
		pc := entity.Passcode{Email: email, CodeHash: "hash-x", Purpose: entity.PasscodePurposeLogin, ExpiresAt: time.Now().Add(time.Minute)}
		if err := r.Replace(ctx, pc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		if err := r.DeleteAll(ctx, email); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := r.Get(ctx, email)

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})
}
