package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/khairicode/storebite/internal/pkg/clock"
	"github.com/khairicode/storebite/internal/pkg/config"
	"github.com/khairicode/storebite/internal/pkg/eventbus"
	"github.com/khairicode/storebite/internal/pkg/hash"
	"github.com/khairicode/storebite/internal/pkg/idempotency"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/pkg/jwt"
	"github.com/khairicode/storebite/internal/pkg/pgdb"
	"github.com/khairicode/storebite/internal/pkg/router"
	"github.com/khairicode/storebite/internal/pkg/uid"
	"github.com/khairicode/storebite/internal/pkg/validator"
	"github.com/khairicode/storebite/internal/product"
	"github.com/khairicode/storebite/internal/user"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func (a *App) initConfig(path string) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.bcrypt = hash.NewBcrypt(a.config.GetInt("hash.bcrypt.cost"), a.config.GetString("hash.bcrypt.pepper"))

	v, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = v

	snow, err := uid.NewSnowflake(a.config.GetInt64("app.snowflake_node"))
	if err != nil {
		slog.Error("failed to init uid number snowflake", "error", err)
		os.Exit(1)
	}
	a.uid = snow
}

func (a *App) initJWT() {
	defaultJWT, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte(a.config.GetString("jwt.secret")),
		Issuer:    a.config.GetString("jwt.issuer"),
		Audiences: a.config.GetArray("jwt.audiences"),
		TTL:       a.config.GetMinute("jwt.ttl_minutes"),
		Clock:     a.clock,
		UUID:      a.uuid,
	})
	if err != nil {
		slog.Error("failed to init jwt token", "error", err)
		os.Exit(1)
	}
	a.jwt = defaultJWT
}

func (a *App) initDatabase() {
	pool, err := pgdb.Open(a.ctx,
		a.config.GetString("database.url"),
		uint64(a.config.GetInt("database.ping_attempts")),
	)
	if err != nil {
		slog.Error("failed to init database", "error", err)
		os.Exit(1)
	}

	a.dbConn = pool
	a.userStore = user.NewStore(pool, a.ins)
}

func (a *App) initCache() {
	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(a.ctx).Err(); err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
	a.idemp = idempotency.NewRedis(a.cacheConn)
}

func (a *App) initEventBus() {
	url := a.config.GetString("eventbus.nats.url")
	if url == "" {
		a.eventBus = eventbus.NewNoop()
		return
	}

	bus, err := eventbus.NewNATS(url,
		nats.Name(a.config.GetString("instrument.service_name")),
		nats.MaxReconnects(a.config.GetInt("eventbus.nats.max_reconnects")),
		nats.Timeout(a.config.GetSecond("eventbus.nats.timeout_seconds")),
		nats.ReconnectWait(a.config.GetSecond("eventbus.nats.reconnect_wait_seconds")),
		nats.RetryOnFailedConnect(a.config.GetBool("eventbus.nats.retry_on_failed_connect")),
	)
	if err != nil {
		slog.Error("failed to init event bus", "error", err)
		os.Exit(1)
	}

	a.eventBus = bus
}

func (a *App) initHTTPServer() {
	public := map[string]map[string]struct{}{}
	if a.config.GetBool("modules.product.enabled") {
		mergePublicEndpoints(public, product.PublicEndpoints())
	}
	if a.config.GetBool("modules.user.enabled") {
		mergePublicEndpoints(public, user.PublicEndpoints())
	}

	a.router = router.NewRouter(router.Config{
		Config:          a.config,
		UUID:            a.uuid,
		JWT:             a.jwt,
		Tokens:          a.userStore,
		Instrument:      a.ins,
		PublicEndpoints: public,
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func mergePublicEndpoints(dst, src map[string]map[string]struct{}) {
	for method, routes := range src {
		if dst[method] == nil {
			dst[method] = map[string]struct{}{}
		}
		for route := range routes {
			dst[method][route] = struct{}{}
		}
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "EventBus",
			fn: func(context.Context) error {
				return a.eventBus.Close()
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				return a.cacheConn.Close()
			},
		},
		{
			name: "Database",
			fn: func(context.Context) error {
				a.dbConn.Close()

				return nil
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
