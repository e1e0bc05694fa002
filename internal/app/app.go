// Package app wires the application: configuration, instrumentation, shared
// libraries, resources, the HTTP server, and the business modules.
package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khairicode/storebite/internal/pkg/clock"
	"github.com/khairicode/storebite/internal/pkg/config"
	"github.com/khairicode/storebite/internal/pkg/eventbus"
	"github.com/khairicode/storebite/internal/pkg/hash"
	"github.com/khairicode/storebite/internal/pkg/idempotency"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/pkg/jwt"
	"github.com/khairicode/storebite/internal/pkg/router"
	"github.com/khairicode/storebite/internal/pkg/uid"
	"github.com/khairicode/storebite/internal/pkg/validator"
	userdb "github.com/khairicode/storebite/internal/user/outbound/db"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	eventBus  eventbus.Bus

	// userStore is built before the router so it can double as the
	// router's token checker.
	userStore *userdb.DB

	// server
	router     *router.Router
	httpServer *http.Server

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New(configPath string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig(configPath)
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initEventBus()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

var _ router.TokenChecker = (*userdb.DB)(nil)
