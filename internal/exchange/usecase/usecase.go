package usecase

import (
	"context"
	"log/slog"

	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/pkg/clock"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/goerror"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/jwt"
	"github.com/asnswap/asnswap/internal/pkg/storage"
	"github.com/asnswap/asnswap/internal/pkg/uid"
	"github.com/asnswap/asnswap/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	UpsertProfile(ctx context.Context, p entity.Profile) error
	GetProfileByEmail(ctx context.Context, email string) (*entity.Profile, error)
	SearchProfiles(ctx context.Context, f entity.ProfileFilter) ([]entity.Profile, error)
	ListProfiles(ctx context.Context) ([]entity.Profile, error)
	SetProfileVerified(ctx context.Context, email string, verified bool) error
	DeleteProfileByEmail(ctx context.Context, email string) error

	CreateMessage(ctx context.Context, m entity.Message) error
	GetConversation(ctx context.Context, a, b string) ([]entity.Message, error)

	CreateMatchRequest(ctx context.Context, m entity.MatchRequest) error
	GetMatchRequestsByEmail(ctx context.Context, email string) ([]entity.MatchRequest, error)
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	cfg       config.Config
	storage   storage.Storage
	uid       uid.NumberID
	oid       uid.StringID
	clock     clock.Clocker
	ins       instrument.Instrumentation
	enforcer  *casbin.Enforcer
}

type Dependency struct {
	RepoDB     repoDB
	Validator  validator.Validator
	Config     config.Config
	Storage    storage.Storage
	UID        uid.NumberID
	OID        uid.StringID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	Enforcer   *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		cfg:       dep.Config,
		storage:   dep.Storage,
		uid:       dep.UID,
		oid:       dep.OID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		enforcer:  dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("exchange.usecase").Start(ctx, name)
}

// subjectEmail returns the authenticated email from the request context.
func (s *Usecase) subjectEmail(ctx context.Context) (string, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return "", goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm.Subject, nil
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (string, error) {
	email, err := s.subjectEmail(ctx)
	if err != nil {
		return "", err
	}

	ok, err := s.enforcer.Enforce(email, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "email", email, "error", err)
		return "", goerror.NewServer(err)
	}

	if !ok {
		return "", goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return email, nil
}
