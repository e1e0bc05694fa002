// Package mq publishes user domain events to the event bus.
package mq

import (
	"context"
	"time"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/eventbus"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/user/entity"
)

const (
	subjectRegistered = "user.registered"
	subjectLoggedIn   = "user.logged_in"
	subjectCreated    = "user.created"
	subjectUpdated    = "user.updated"
	subjectDeleted    = "user.deleted"
)

// Messaging publishes user events. Failures are logged, never propagated:
// the write already committed and the response must not depend on the broker.
// Payloads carry no credential material.
type Messaging struct {
	bus   eventbus.Bus
	ins   instrument.Instrumentation
	clock func() time.Time
}

// NewMessaging constructs the user event publisher.
func NewMessaging(bus eventbus.Bus, ins instrument.Instrumentation) *Messaging {
	return &Messaging{bus: bus, ins: ins, clock: time.Now}
}

type userPayload struct {
	ID    int64  `json:"id,string"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (m *Messaging) publish(ctx context.Context, subject string, at time.Time, payload any) {
	ctx, span := m.ins.Tracer("user.outbound.mq").Start(ctx, subject)
	defer span.End()

	err := m.bus.Publish(ctx, subject, eventbus.Event{
		Name:       subject,
		OccurredAt: at,
		Payload:    payload,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish user event", "subject", subject, "error", err)
	}
}

// UserRegistered announces a self-registered account.
func (m *Messaging) UserRegistered(ctx context.Context, u entity.User) {
	m.publish(ctx, subjectRegistered, u.CreatedAt, userPayload{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	})
}

// UserLoggedIn announces a successful login.
func (m *Messaging) UserLoggedIn(ctx context.Context, userID int64) {
	m.publish(ctx, subjectLoggedIn, m.clock(), map[string]any{"id": userID})
}

// UserCreated announces an admin-created user.
func (m *Messaging) UserCreated(ctx context.Context, u entity.User) {
	m.publish(ctx, subjectCreated, u.CreatedAt, userPayload{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	})
}

// UserUpdated announces an updated user.
func (m *Messaging) UserUpdated(ctx context.Context, u entity.User) {
	m.publish(ctx, subjectUpdated, u.UpdatedAt, userPayload{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	})
}

// UserDeleted announces a deleted user.
func (m *Messaging) UserDeleted(ctx context.Context, id int64) {
	m.publish(ctx, subjectDeleted, m.clock(), map[string]any{"id": id})
}
