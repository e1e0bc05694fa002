// Package product wires the product catalog module: HTTP endpoints, use
// cases, PostgreSQL persistence, and event publishing.
package product

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khairicode/storebite/internal/pkg/clock"
	"github.com/khairicode/storebite/internal/pkg/config"
	"github.com/khairicode/storebite/internal/pkg/eventbus"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/pkg/router"
	"github.com/khairicode/storebite/internal/pkg/uid"
	"github.com/khairicode/storebite/internal/pkg/validator"
	"github.com/khairicode/storebite/internal/product/inbound"
	"github.com/khairicode/storebite/internal/product/outbound/db"
	"github.com/khairicode/storebite/internal/product/outbound/mq"
	"github.com/khairicode/storebite/internal/product/usecase"
)

// Dependency lists what the product module needs from the application.
type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	EventBus   eventbus.Bus               `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

// New wires the module and mounts its routes.
func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		RepoEvent:  mq.NewMessaging(dep.EventBus, dep.Instrument),
		Validator:  dep.Validator,
		Config:     dep.Config,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

// PublicEndpoints exposes the module's unauthenticated routes for the router
// configuration.
func PublicEndpoints() map[string]map[string]struct{} {
	return inbound.PublicEndpoints()
}
