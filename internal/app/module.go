package app

import (
	"log/slog"
	"os"

	"github.com/asnswap/asnswap/internal/auth"
	"github.com/asnswap/asnswap/internal/billing"
	"github.com/asnswap/asnswap/internal/exchange"
	"github.com/asnswap/asnswap/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			CacheConn:  a.cacheConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			Passcode:   a.passcode,
			HMAC:       a.hmac,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.exchange.enabled") {
		if err := exchange.New(exchange.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Storage:    a.storage,
			Enforcer:   a.casbin,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			OID:        a.oid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module exchange", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.billing.enabled") {
		if err := billing.New(billing.Dependency{
			Router:      a.router,
			Config:      a.config,
			Instrument:  a.ins,
			Idempotency: a.idemp,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module billing", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
