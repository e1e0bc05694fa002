package eventbus

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/khairicode/storebite/internal/pkg/instrument"
)

func TestEncodeIncludesCorrelationHeader(t *testing.T) {
	ctx := instrument.SetCorrelationID(context.Background(), "cid-42")

	ev := Event{
		Name:       "product.created",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:    map[string]any{"id": "1"},
	}

	body, headers, err := encode(ctx, ev)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if got := headers[HeaderCorrelationID]; got != "cid-42" {
		t.Fatalf("correlation header = %q, want cid-42", got)
	}

	var decoded Event
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Name != "product.created" {
		t.Fatalf("name = %q", decoded.Name)
	}
	if !decoded.OccurredAt.Equal(ev.OccurredAt) {
		t.Fatalf("occurred_at = %v", decoded.OccurredAt)
	}
}

func TestEncodeWithoutCorrelationID(t *testing.T) {
	_, headers, err := encode(context.Background(), Event{Name: "user.registered"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, ok := headers[HeaderCorrelationID]; ok {
		t.Fatal("expected no correlation header")
	}
}

func TestNoopBus(t *testing.T) {
	bus := NewNoop()
	if err := bus.Publish(context.Background(), "any", Event{Name: "x"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
