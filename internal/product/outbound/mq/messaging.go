// Package mq publishes product domain events to the event bus.
package mq

import (
	"context"
	"time"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/eventbus"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/product/entity"
)

const (
	subjectCreated = "product.created"
	subjectUpdated = "product.updated"
	subjectDeleted = "product.deleted"
)

// Messaging publishes product events. Failures are logged, never propagated:
// the write already committed and the response must not depend on the broker.
type Messaging struct {
	bus eventbus.Bus
	ins instrument.Instrumentation
}

// NewMessaging constructs the product event publisher.
func NewMessaging(bus eventbus.Bus, ins instrument.Instrumentation) *Messaging {
	return &Messaging{bus: bus, ins: ins}
}

type productPayload struct {
	ID    int64   `json:"id,string"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int32   `json:"stock"`
}

func (m *Messaging) publish(ctx context.Context, subject string, at time.Time, payload any) {
	ctx, span := m.ins.Tracer("product.outbound.mq").Start(ctx, subject)
	defer span.End()

	err := m.bus.Publish(ctx, subject, eventbus.Event{
		Name:       subject,
		OccurredAt: at,
		Payload:    payload,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish product event", "subject", subject, "error", err)
	}
}

// ProductCreated announces a newly created product.
func (m *Messaging) ProductCreated(ctx context.Context, p entity.Product) {
	m.publish(ctx, subjectCreated, p.CreatedAt, productPayload{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	})
}

// ProductUpdated announces an updated product.
func (m *Messaging) ProductUpdated(ctx context.Context, p entity.Product) {
	m.publish(ctx, subjectUpdated, p.UpdatedAt, productPayload{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	})
}

// ProductDeleted announces a deleted product.
func (m *Messaging) ProductDeleted(ctx context.Context, id int64, at time.Time) {
	m.publish(ctx, subjectDeleted, at, map[string]any{"id": id})
}
