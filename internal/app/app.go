package app

import (
	"context"
	"net/http"

	"github.com/asnswap/asnswap/internal/pkg/clock"
	"github.com/asnswap/asnswap/internal/pkg/config"
	"github.com/asnswap/asnswap/internal/pkg/goroutine"
	"github.com/asnswap/asnswap/internal/pkg/hash"
	"github.com/asnswap/asnswap/internal/pkg/idempotency"
	"github.com/asnswap/asnswap/internal/pkg/instrument"
	"github.com/asnswap/asnswap/internal/pkg/jwt"
	"github.com/asnswap/asnswap/internal/pkg/mail"
	"github.com/asnswap/asnswap/internal/pkg/messaging"
	"github.com/asnswap/asnswap/internal/pkg/passcode"
	"github.com/asnswap/asnswap/internal/pkg/router"
	"github.com/asnswap/asnswap/internal/pkg/storage"
	"github.com/asnswap/asnswap/internal/pkg/uid"
	"github.com/asnswap/asnswap/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	passcode  passcode.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage
	casbin    *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server
	stopped    *atomic.Bool

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:     ctx,
		cancel:  cancel,
		stopped: atomic.NewBool(false),
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
