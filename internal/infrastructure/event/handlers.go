package event

import (
	"context"

	"github.com/borrowtrack/backend/internal/domain/shared"
)

// HandlerFunc adapts a function to shared.EventHandler
type HandlerFunc struct {
	fn    func(ctx context.Context, event shared.DomainEvent) error
	types []string
}

// NewHandlerFunc wraps fn as a handler for eventTypes (all events when empty)
func NewHandlerFunc(fn func(ctx context.Context, event shared.DomainEvent) error, eventTypes ...string) *HandlerFunc {
	return &HandlerFunc{fn: fn, types: eventTypes}
}

func (h *HandlerFunc) Handle(ctx context.Context, event shared.DomainEvent) error {
	return h.fn(ctx, event)
}

func (h *HandlerFunc) EventTypes() []string {
	return h.types
}

// Recorder counts delivered events, e.g. telemetry.Metrics
type Recorder interface {
	RecordDomainEvent(eventType string)
}

// NewMetricsHandler counts every event by type
func NewMetricsHandler(recorder Recorder) *HandlerFunc {
	return NewHandlerFunc(func(_ context.Context, event shared.DomainEvent) error {
		recorder.RecordDomainEvent(event.EventType())
		return nil
	})
}
