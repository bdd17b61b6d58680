// Package store persists pending login passcodes in redis.
package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/asnswap/asnswap/internal/auth/entity"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "otp:"

const (
	fieldCodeHash  = "code_hash"
	fieldPurpose   = "purpose"
	fieldExpiresAt = "expires_at"
)

// Redis keeps at most one passcode document per email under otp:<email>.
//
// Keys outlive the verification window by the retention duration so an
// expired code can still be reported as expired rather than unknown; redis
// garbage-collects the key afterwards.
type Redis struct {
	client    *redis.Client
	ins       instrument.Instrumentation
	retention time.Duration
}

// NewRedis builds the passcode store. retention must exceed the passcode
// time-to-live.
func NewRedis(client *redis.Client, ins instrument.Instrumentation, retention time.Duration) *Redis {
	return &Redis{client: client, ins: ins, retention: retention}
}

// Replace removes any pending passcode for the email and stores the new one
// in a single transaction, so two concurrent issuers can never leave two
// live codes behind.
func (r *Redis) Replace(ctx context.Context, pc entity.Passcode) error {
	ctx, span := r.startSpan(ctx, "Replace")
	defer span.End()

	key := keyPrefix + pc.Email
	err := r.withRetry(ctx, func(ctx context.Context) error {
		pipe := r.client.TxPipeline()
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]any{
			fieldCodeHash:  pc.CodeHash,
			fieldPurpose:   string(pc.Purpose),
			fieldExpiresAt: pc.ExpiresAt.Unix(),
		})
		pipe.Expire(ctx, key, r.retention)

		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		return r.fail(span, err)
	}

	return nil
}

// Get returns the pending passcode for the email, or goerror.ErrNotFound.
func (r *Redis) Get(ctx context.Context, email string) (*entity.Passcode, error) {
	ctx, span := r.startSpan(ctx, "Get")
	defer span.End()

	var doc map[string]string
	err := r.withRetry(ctx, func(ctx context.Context) error {
		var err error
		doc, err = r.client.HGetAll(ctx, keyPrefix+email).Result()
		return err
	})
	if err != nil {
		return nil, r.fail(span, err)
	}

	if len(doc) == 0 {
		return nil, goerror.ErrNotFound
	}

	expUnix, err := strconv.ParseInt(doc[fieldExpiresAt], 10, 64)
	if err != nil {
		return nil, r.fail(span, err)
	}

	return &entity.Passcode{
		Email:     email,
		CodeHash:  doc[fieldCodeHash],
		Purpose:   entity.PasscodePurpose(doc[fieldPurpose]),
		ExpiresAt: time.Unix(expUnix, 0),
	}, nil
}

// DeleteAll removes every pending passcode for the email.
func (r *Redis) DeleteAll(ctx context.Context, email string) error {
	ctx, span := r.startSpan(ctx, "DeleteAll")
	defer span.End()

	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.client.Del(ctx, keyPrefix+email).Err()
	})
	if err != nil {
		return r.fail(span, err)
	}

	return nil
}

func (r *Redis) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("auth.outbound.store").Start(ctx, name)
}

func (r *Redis) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// withRetry runs fn with a short exponential backoff on transient redis
// failures. Context cancellation is not retried.
func (r *Redis) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return retry.RetryableError(err)
	})
}
