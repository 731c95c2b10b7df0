// Package activity provides common infrastructure for Temporal activity
// implementations: workflow-context extraction, context-safe logging, and
// best-effort audit event emission. Domain activity packages embed
// BaseActivities rather than reimplementing these concerns.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/ahrav/go-userflow/pkg/events"
)

// WorkflowContext holds metadata extracted from the Temporal activity
// context, with fallback values for plain-context test invocations.
type WorkflowContext struct {
	WorkflowID string
	RunID      string
	ActivityID string
	Attempt    int32
}

// BaseActivities bundles the cross-cutting dependencies every activity
// shares. The event sink may be nil in tests.
type BaseActivities struct {
	eventSink events.EventSink
}

// NewBaseActivities creates the shared activity infrastructure.
func NewBaseActivities(sink events.EventSink) BaseActivities {
	return BaseActivities{eventSink: sink}
}

// GetWorkflowContext extracts execution metadata from the activity
// context. Outside a real activity (unit tests call activities as plain
// functions) activity.GetInfo panics; the recover path substitutes
// stable test identifiers so idempotency keys stay deterministic.
func (b *BaseActivities) GetWorkflowContext(ctx context.Context) WorkflowContext {
	var wfCtx WorkflowContext

	func() {
		defer func() {
			if r := recover(); r != nil {
				wfCtx.WorkflowID = "test-workflow-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte("userflow")).String()[:8]
				wfCtx.RunID = "test-run"
				wfCtx.ActivityID = "test-activity"
				wfCtx.Attempt = 1
			}
		}()

		info := activity.GetInfo(ctx)
		wfCtx.WorkflowID = info.WorkflowExecution.ID
		wfCtx.RunID = info.WorkflowExecution.RunID
		wfCtx.ActivityID = info.ActivityID
		wfCtx.Attempt = info.Attempt
	}()

	return wfCtx
}

// EmitEventSafe appends an audit event with a short retry. Event loss is
// logged, never propagated: audit events matter for observability, not
// correctness.
func (b *BaseActivities) EmitEventSafe(ctx context.Context, envelope events.Envelope, description string) {
	if b.eventSink == nil {
		return
	}

	const maxAttempts = 2
	const retryDelay = 200 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				SafeLogError(ctx, fmt.Sprintf("Event emission cancelled: %s", description),
					"event_type", envelope.Type)
				return
			}
		}

		if err := b.eventSink.Append(ctx, envelope); err != nil {
			lastErr = err
			continue
		}

		SafeLog(ctx, fmt.Sprintf("Event emitted: %s", description),
			"event_type", envelope.Type,
			"idempotency_key", envelope.IdempotencyKey)
		return
	}

	SafeLogError(ctx, fmt.Sprintf("Failed to emit %s after %d attempts", description, maxAttempts),
		"event_type", envelope.Type,
		"error", lastErr)
}

// SafeLog logs at INFO through the activity logger, ignoring the call
// when invoked outside an activity context.
func SafeLog(ctx context.Context, msg string, keyvals ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.GetLogger(ctx).Info(msg, keyvals...)
}

// SafeLogError logs at ERROR through the activity logger, ignoring the
// call when invoked outside an activity context.
func SafeLogError(ctx context.Context, msg string, keyvals ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.GetLogger(ctx).Error(msg, keyvals...)
}
