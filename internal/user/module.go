// Package user wires the user module: authentication endpoints, the user
// directory, PostgreSQL persistence with the token allow-list, and event
// publishing.
package user

import (
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
	"github.com/khairicode/storebite/internal/user/inbound"
	"github.com/khairicode/storebite/internal/user/outbound/db"
	"github.com/khairicode/storebite/internal/user/outbound/mq"
	"github.com/khairicode/storebite/internal/user/usecase"
)

// NewStore constructs the module's PostgreSQL store. The application builds
// it before the router so the same store can serve as the router's token
// checker.
var NewStore = db.NewDB

// Dependency lists what the user module needs from the application. Store is
// the value returned by NewStore.
type Dependency struct {
	Store       *db.DB                     `validate:"required"`
	Router      *router.Router             `validate:"required"`
	EventBus    eventbus.Bus               `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
}

// New wires the module and mounts its routes.
func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:      dep.Store,
		RepoEvent:   mq.NewMessaging(dep.EventBus, dep.Instrument),
		Validator:   dep.Validator,
		Config:      dep.Config,
		UID:         dep.UID,
		Clock:       dep.Clock,
		Bcrypt:      dep.Bcrypt,
		JWT:         dep.JWT,
		Idempotency: dep.Idempotency,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

// PublicEndpoints exposes the module's unauthenticated routes for the router
// configuration.
func PublicEndpoints() map[string]map[string]struct{} {
	return inbound.PublicEndpoints()
}
