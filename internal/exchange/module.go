// Package exchange implements the region-swap marketplace: profiles,
// candidate search, chat, match requests, and the admin surface.
package exchange

import (
	"github.com/asnswap/asnswap/internal/exchange/inbound"
	"github.com/asnswap/asnswap/internal/exchange/outbound/db"
	"github.com/asnswap/asnswap/internal/exchange/usecase"
	"github.com/asnswap/asnswap/internal/pkg/clock"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/router"
	"github.com/asnswap/asnswap/internal/pkg/storage"
	"github.com/asnswap/asnswap/internal/pkg/uid"
	"github.com/asnswap/asnswap/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	OID        uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbExchange := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbExchange,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Storage:    dep.Storage,
		UID:        dep.UID,
		OID:        dep.OID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
		Enforcer:   dep.Enforcer,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
