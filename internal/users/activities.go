// Package users implements the Temporal activities for user data access.
// Each activity performs exactly one store operation and is safe to
// re-invoke: the engine may redeliver work after a worker crash, so reads
// are naturally idempotent, partial updates re-apply to the same state,
// and creates rely on the store's uniqueness constraint to reject the
// second delivery.
package users

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-userflow/internal/domain"
	"github.com/ahrav/go-userflow/internal/store"
	"github.com/ahrav/go-userflow/pkg/activity"
)

// Activities handles user-domain Temporal activities. It owns the only
// path to the store; workflows never reach the database directly.
type Activities struct {
	activity.BaseActivities
	store  *store.UserStore
	events *EventEmitter
}

// NewActivities creates user activities over the given store. The base
// activities provide logging and audit event infrastructure.
func NewActivities(base activity.BaseActivities, st *store.UserStore) *Activities {
	return &Activities{
		BaseActivities: base,
		store:          st,
		events:         NewEventEmitter(base),
	}
}

// CheckDuplicateByMobile looks up the live user holding the given mobile
// number. Absence is a normal result, never an error; only store
// failures propagate, and those are retryable by policy.
func (a *Activities) CheckDuplicateByMobile(ctx context.Context, mobile string) (*domain.DuplicateCheck, error) {
	start := time.Now()
	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting CheckDuplicateByMobile",
		"workflow_id", wfCtx.WorkflowID,
		"mobile", mobile,
		"attempt", wfCtx.Attempt)

	id, err := a.store.FindIDByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			activity.SafeLog(ctx, "CheckDuplicateByMobile found no match",
				"mobile", mobile,
				"duration_ms", time.Since(start).Milliseconds())
			return &domain.DuplicateCheck{Found: false}, nil
		}
		activity.SafeLogError(ctx, "CheckDuplicateByMobile failed",
			"mobile", mobile,
			"error", err)
		return nil, err
	}

	activity.SafeLog(ctx, "CheckDuplicateByMobile found existing user",
		"mobile", mobile,
		"user_id", id,
		"duration_ms", time.Since(start).Milliseconds())
	return &domain.DuplicateCheck{Found: true, UserID: id, Mobile: mobile}, nil
}

// CreateUser inserts a new user record. A uniqueness violation, the race
// against a concurrent create that slipped past the duplicate check,
// comes back as a non-retryable application error tagged
// domain.ErrTypeDuplicateUser so the workflow can reclassify it as a 409
// business outcome. All other failures are retryable infrastructure
// errors.
func (a *Activities) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, nonRetryable(domain.ErrTypeValidation, err, "invalid create input")
	}

	start := time.Now()
	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting CreateUser",
		"workflow_id", wfCtx.WorkflowID,
		"mobile", in.Mobile,
		"attempt", wfCtx.Attempt)

	user, err := a.store.Create(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			activity.SafeLog(ctx, "CreateUser hit uniqueness constraint",
				"mobile", in.Mobile)
			return nil, nonRetryable(domain.ErrTypeDuplicateUser, err, "user already exists")
		}
		activity.SafeLogError(ctx, "CreateUser failed",
			"mobile", in.Mobile,
			"error", err)
		return nil, err
	}

	a.events.EmitUserCreated(ctx, user, wfCtx)

	activity.SafeLog(ctx, "CreateUser completed",
		"user_id", user.ID,
		"mobile", user.Mobile,
		"duration_ms", time.Since(start).Milliseconds())
	return user, nil
}

// UpdateUser applies a partial update. An id matching no live row is
// reported through Updated=false, the store's zero-rows contract; a
// uniqueness violation on a changed mobile or email is tagged
// domain.ErrTypeDuplicateUser like the create path.
func (a *Activities) UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.UpdateOutcome, error) {
	if err := in.Validate(); err != nil {
		return nil, nonRetryable(domain.ErrTypeValidation, err, "invalid update input")
	}

	start := time.Now()
	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting UpdateUser",
		"workflow_id", wfCtx.WorkflowID,
		"user_id", id,
		"attempt", wfCtx.Attempt)

	outcome, err := a.store.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, nonRetryable(domain.ErrTypeDuplicateUser, err, "update collides with existing user")
		}
		activity.SafeLogError(ctx, "UpdateUser failed",
			"user_id", id,
			"error", err)
		return nil, err
	}

	if outcome.Updated {
		a.events.EmitUserUpdated(ctx, outcome.UserID, wfCtx)
	}

	activity.SafeLog(ctx, "UpdateUser completed",
		"user_id", id,
		"updated", outcome.Updated,
		"duration_ms", time.Since(start).Milliseconds())
	return outcome, nil
}

// GetUser fetches a user by id. Absence is a value, not an error.
func (a *Activities) GetUser(ctx context.Context, id int64) (*domain.GetOutcome, error) {
	start := time.Now()
	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting GetUser",
		"workflow_id", wfCtx.WorkflowID,
		"user_id", id,
		"attempt", wfCtx.Attempt)

	user, err := a.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			activity.SafeLog(ctx, "GetUser found no match",
				"user_id", id,
				"duration_ms", time.Since(start).Milliseconds())
			return &domain.GetOutcome{Found: false}, nil
		}
		activity.SafeLogError(ctx, "GetUser failed",
			"user_id", id,
			"error", err)
		return nil, err
	}

	activity.SafeLog(ctx, "GetUser completed",
		"user_id", id,
		"duration_ms", time.Since(start).Milliseconds())
	return &domain.GetOutcome{Found: true, User: user}, nil
}

// ListUsers returns a page of live users ordered by id ascending.
func (a *Activities) ListUsers(ctx context.Context, in domain.ListUsersInput) ([]domain.User, error) {
	in = in.Normalize()

	start := time.Now()
	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting ListUsers",
		"workflow_id", wfCtx.WorkflowID,
		"limit", in.Limit,
		"offset", in.Offset)

	users, err := a.store.List(ctx, in.Limit, in.Offset)
	if err != nil {
		activity.SafeLogError(ctx, "ListUsers failed",
			"limit", in.Limit,
			"offset", in.Offset,
			"error", err)
		return nil, err
	}

	activity.SafeLog(ctx, "ListUsers completed",
		"returned", len(users),
		"duration_ms", time.Since(start).Milliseconds())
	return users, nil
}

func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
