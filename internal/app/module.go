package app

import (
	"log/slog"
	"os"

	"github.com/khairicode/storebite/internal/product"
	"github.com/khairicode/storebite/internal/user"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.product.enabled") {
		if err := product.New(product.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			EventBus:   a.eventBus,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module product", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.user.enabled") {
		if err := user.New(user.Dependency{
			Store:       a.userStore,
			Router:      a.router,
			EventBus:    a.eventBus,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Clock:       a.clock,
			Validator:   a.validator,
			Bcrypt:      a.bcrypt,
			JWT:         a.jwt,
			Idempotency: a.idemp,
		}); err != nil {
			slog.Error("failed to init module user", "error", err)
			os.Exit(1)
		}
	}
}
