package eventbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// ErrURLRequired is returned when the NATS server URL is missing.
var ErrURLRequired = errors.New("eventbus: nats url is required")

// NATS is a Bus implementation backed by core NATS publish.
type NATS struct {
	conn *nats.Conn
}

// NewNATS connects to the NATS server at url.
func NewNATS(url string, opts ...nats.Option) (*NATS, error) {
	if url == "" {
		return nil, ErrURLRequired
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("eventbus: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Publish sends the event to a NATS subject.
func (n *NATS) Publish(ctx context.Context, subject string, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if subject == "" {
		return ErrSubjectRequired
	}

	body, headers, err := encode(ctx, ev)
	if err != nil {
		return fmt.Errorf("eventbus: encode event: %w", err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = body
	for k, v := range headers {
		msg.Header.Set(k, v)
	}

	if err := n.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("eventbus: nats publish: %w", err)
	}

	return nil
}

// Close drains and closes the NATS connection.
func (n *NATS) Close() error {
	err := n.conn.Drain()
	n.conn.Close()
	return err
}
