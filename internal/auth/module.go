// Package auth implements passwordless login: one-time passcodes issued by
// email and 7-day bearer session tokens.
package auth

import (
	"github.com/asnswap/asnswap/internal/auth/inbound"
	"github.com/asnswap/asnswap/internal/auth/outbound/mq"
	"github.com/asnswap/asnswap/internal/auth/outbound/store"
	"github.com/asnswap/asnswap/internal/auth/usecase"
	"github.com/asnswap/asnswap/internal/pkg/clock"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/hash"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/jwt"
	"github.com/asnswap/asnswap/internal/pkg/messaging"
	"github.com/asnswap/asnswap/internal/pkg/passcode"
	"github.com/asnswap/asnswap/internal/pkg/router"
	"github.com/asnswap/asnswap/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	CacheConn  *redis.Client              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Passcode   passcode.Generator         `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoStore := store.NewRedis(dep.CacheConn, dep.Instrument,
		dep.Config.GetHour("modules.auth.otp_retention_hours"))
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoStore:     repoStore,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Passcode:      dep.Passcode,
		HMAC:          dep.HMAC,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
