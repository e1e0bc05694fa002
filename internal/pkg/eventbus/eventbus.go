// Package eventbus publishes domain events to a message broker.
//
// Modules emit an event after each successful mutation (created, updated,
// deleted, registered, logged in) so downstream consumers can react without
// coupling to the HTTP layer. Publishing is best-effort: a failed publish is
// logged but never fails the request.
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/khairicode/storebite/internal/pkg/instrument"
)

// HeaderCorrelationID is the event header carrying the originating request's
// correlation ID.
const HeaderCorrelationID = "X-Correlation-ID"

// ErrSubjectRequired is returned when Publish is called with an empty subject.
var ErrSubjectRequired = errors.New("eventbus: subject is required")

// Event is a domain event envelope.
type Event struct {
	// Name identifies the event, e.g. "product.created".
	Name string `json:"name"`
	// OccurredAt is when the event happened.
	OccurredAt time.Time `json:"occurred_at"`
	// Payload is the event body.
	Payload any `json:"payload"`
}

// Bus publishes domain events.
type Bus interface {
	// Publish sends the event to the given subject. The correlation ID from
	// ctx, when present, is attached as a header.
	Publish(ctx context.Context, subject string, ev Event) error
	// Close releases broker resources.
	Close() error
}

// encode marshals the event envelope and collects headers from the context.
func encode(ctx context.Context, ev Event) ([]byte, map[string]string, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, nil, err
	}

	headers := map[string]string{}
	if cid := instrument.GetCorrelationID(ctx); cid != "" {
		headers[HeaderCorrelationID] = cid
	}

	return body, headers, nil
}

// Noop is a Bus that discards events, for tests and disabled configurations.
type Noop struct{}

// NewNoop returns a discarding Bus.
func NewNoop() Noop { return Noop{} }

// Publish discards the event.
func (Noop) Publish(context.Context, string, Event) error { return nil }

// Close is a no-op.
func (Noop) Close() error { return nil }
