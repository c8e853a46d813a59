// Package events provides the fire-and-forget analytics side channel. Sinks
// are injected wherever lifecycle events are captured so production code can
// ship events to a real backend while tests run against Nop or in-memory
// sinks.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is one captured analytics event. Properties are free-form; callers
// own the vocabulary.
type Event struct {
	ID         string         `json:"id" bson:"_id"`
	Name       string         `json:"name" bson:"name"`
	Timestamp  time.Time      `json:"timestamp" bson:"timestamp"`
	Properties map[string]any `json:"properties,omitempty" bson:"properties,omitempty"`
}

// New builds an event with an ID and timestamp filled in.
func New(name string, properties map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Name:       name,
		Timestamp:  time.Now().UTC(),
		Properties: properties,
	}
}

// Sink receives captured events. Implementations must never block the caller
// beyond their own internal timeout and must never return control-flow
// errors: capture is strictly fire-and-forget.
type Sink interface {
	Capture(ctx context.Context, e Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Capture(context.Context, Event) {}

// LogSink writes events to the structured log. Useful in development and as
// a fallback when no analytics backend is configured.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a log-backed sink.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger.With(zap.String("component", "event_sink"))}
}

func (s *LogSink) Capture(_ context.Context, e Event) {
	s.logger.Info("event captured",
		zap.String("event", e.Name),
		zap.Any("properties", e.Properties))
}
