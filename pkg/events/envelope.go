// Package events provides the audit event infrastructure used by the
// activity layer. Activities wrap user lifecycle facts (created, updated)
// in an Envelope and hand them to an EventSink. Emission is best-effort:
// a sink failure never fails the data-access operation that produced it.
package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Envelope wraps an audit event with the metadata needed for correlation
// and deduplication. Payload schema varies by Type.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type routes the event, e.g. "user.created" or "user.updated".
	Type string `json:"type"`

	// Source names the activity that emitted the event.
	Source string `json:"source"`

	// Timestamp records wall-clock emission time. Only activities emit,
	// so wall-clock time is safe here.
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey deduplicates re-emissions caused by activity
	// retries. Derived from workflow id and event content, never random.
	IdempotencyKey string `json:"idempotency_key"`

	// WorkflowID and RunID correlate the event with the workflow
	// execution that caused it.
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`

	// Payload is the domain-specific event body.
	Payload json.RawMessage `json:"payload"`
}

// EventSink receives audit events. Implementations must tolerate
// duplicate envelopes (same IdempotencyKey) and return quickly.
type EventSink interface {
	// Append adds an event with best-effort delivery. Callers must not
	// fail their primary operation when Append errors.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink discards all events. Used in tests and when auditing is
// disabled.
type NoOpEventSink struct{}

// Append implements EventSink.
func (NoOpEventSink) Append(context.Context, Envelope) error { return nil }

// NewNoOpEventSink creates a sink that discards everything.
func NewNoOpEventSink() EventSink { return NoOpEventSink{} }

// LogEventSink writes audit events to the structured log. It is the
// default production sink; a broker-backed sink would implement the same
// interface.
type LogEventSink struct {
	log *zap.SugaredLogger
}

// NewLogEventSink creates a sink over the given logger.
func NewLogEventSink(log *zap.SugaredLogger) *LogEventSink {
	return &LogEventSink{log: log}
}

// Append implements EventSink by logging the envelope fields.
func (s *LogEventSink) Append(_ context.Context, e Envelope) error {
	s.log.Infow("audit event",
		"event_id", e.ID,
		"event_type", e.Type,
		"source", e.Source,
		"idempotency_key", e.IdempotencyKey,
		"workflow_id", e.WorkflowID,
		"run_id", e.RunID,
		"payload", json.RawMessage(e.Payload),
	)
	return nil
}
