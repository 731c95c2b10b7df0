package users

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ahrav/go-userflow/internal/domain"
	"github.com/ahrav/go-userflow/pkg/activity"
	"github.com/ahrav/go-userflow/pkg/events"
)

// Audit event types emitted by the user activities.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
)

// EventEmitter builds and emits user lifecycle audit events. Emission is
// best-effort; failures are logged and never fail the data operation.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates an emitter over the shared activity
// infrastructure.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

type userCreatedPayload struct {
	UserID int64  `json:"user_id"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

type userUpdatedPayload struct {
	UserID int64 `json:"user_id"`
}

// EmitUserCreated emits a user.created event for the stored record.
func (e *EventEmitter) EmitUserCreated(ctx context.Context, user *domain.User, wfCtx activity.WorkflowContext) {
	payload, err := json.Marshal(userCreatedPayload{
		UserID: user.ID,
		Mobile: user.Mobile,
		Email:  user.Email,
	})
	if err != nil {
		activity.SafeLogError(ctx, "Failed to encode user.created payload",
			"user_id", user.ID,
			"error", err)
		return
	}

	e.base.EmitEventSafe(ctx, envelope(EventUserCreated, "create-user-activity", payload, wfCtx, user.ID),
		fmt.Sprintf("UserCreated[%d]", user.ID))
}

// EmitUserUpdated emits a user.updated event for the touched row.
func (e *EventEmitter) EmitUserUpdated(ctx context.Context, userID int64, wfCtx activity.WorkflowContext) {
	payload, err := json.Marshal(userUpdatedPayload{UserID: userID})
	if err != nil {
		activity.SafeLogError(ctx, "Failed to encode user.updated payload",
			"user_id", userID,
			"error", err)
		return
	}

	e.base.EmitEventSafe(ctx, envelope(EventUserUpdated, "update-user-activity", payload, wfCtx, userID),
		fmt.Sprintf("UserUpdated[%d]", userID))
}

// envelope assembles the common envelope fields. The idempotency key is
// derived from the workflow execution and the subject user, so an
// activity retry re-emitting the same fact deduplicates downstream.
func envelope(eventType, source string, payload json.RawMessage, wfCtx activity.WorkflowContext, userID int64) events.Envelope {
	return events.Envelope{
		ID:             uuid.New().String(),
		Type:           eventType,
		Source:         source,
		Timestamp:      time.Now().UTC(),
		IdempotencyKey: fmt.Sprintf("%s:%s:%d", wfCtx.WorkflowID, eventType, userID),
		WorkflowID:     wfCtx.WorkflowID,
		RunID:          wfCtx.RunID,
		Payload:        payload,
	}
}
