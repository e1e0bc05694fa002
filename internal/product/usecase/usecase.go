// Package usecase implements the product module's business operations.
package usecase

import (
	"context"
	"time"

	"github.com/khairicode/storebite/internal/pkg/clock"
	"github.com/khairicode/storebite/internal/pkg/config"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/pkg/uid"
	"github.com/khairicode/storebite/internal/pkg/validator"
	"github.com/khairicode/storebite/internal/product/entity"
	"go.opentelemetry.io/otel/trace"
)

// repoDB is the persistence port used by product use cases.
type repoDB interface {
	ListProducts(ctx context.Context, f entity.ListFilter) ([]entity.Product, int64, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	ExistsProductByName(ctx context.Context, name string, excludeID int64) (bool, error)
	CreateProduct(ctx context.Context, p entity.Product) error
	UpdateProduct(ctx context.Context, p entity.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// repoEvent publishes product domain events, best-effort.
type repoEvent interface {
	ProductCreated(ctx context.Context, p entity.Product)
	ProductUpdated(ctx context.Context, p entity.Product)
	ProductDeleted(ctx context.Context, id int64, at time.Time)
}

// Dependency lists what the product use cases need.
type Dependency struct {
	RepoDB     repoDB
	RepoEvent  repoEvent
	Validator  validator.Validator
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

// Usecase bundles the product operations behind one receiver.
type Usecase struct {
	repoDB    repoDB
	repoEvent repoEvent
	validator validator.Validator
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

// New constructs the product Usecase.
func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoEvent: dep.RepoEvent,
		validator: dep.Validator,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("product.usecase").Start(ctx, name)
}
