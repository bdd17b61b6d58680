package usecase

import (
	"context"

	"github.com/asnswap/asnswap/internal/auth/entity"
	"github.com/asnswap/asnswap/internal/pkg/clock"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/hash"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/jwt"
	"github.com/asnswap/asnswap/internal/pkg/passcode"
	"github.com/asnswap/asnswap/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// OTPRequestedEvent carries the plaintext code to the notification module.
type OTPRequestedEvent struct {
	Email     string
	Code      string
	ExpiresAt int64
}

type repoMessaging interface {
	PublishOTPRequested(ctx context.Context, msg OTPRequestedEvent) error
}

// repoStore holds at most one pending passcode per email.
type repoStore interface {
	// Replace atomically removes any pending passcode for the email and
	// stores the new one.
	Replace(ctx context.Context, pc entity.Passcode) error
	// Get returns the pending passcode or goerror.ErrNotFound.
	Get(ctx context.Context, email string) (*entity.Passcode, error)
	// DeleteAll removes every pending passcode for the email.
	DeleteAll(ctx context.Context, email string) error
}

type Usecase struct {
	repoStore     repoStore
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	passcode      passcode.Generator
	hmac          hash.Hash
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoStore     repoStore
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Passcode      passcode.Generator
	HMAC          hash.Hash
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoStore:     dep.RepoStore,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		passcode:      dep.Passcode,
		hmac:          dep.HMAC,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}
