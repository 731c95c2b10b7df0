// Package dispatch translates inbound operation requests into workflow
// submissions and synchronously awaits their results. It is the public
// contract of the orchestration core: four functions, each returning a
// structured outcome with a status code, or an EngineError when the
// execution engine itself could not complete the workflow.
package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/ahrav/go-userflow/internal/domain"
	"github.com/ahrav/go-userflow/internal/workflow"
)

// Workflow-id operation prefixes. The full id is
// "{operation}-{naturalKeyOrId}-{unixMillis}": unique enough across
// distinct logical requests, human-traceable in the engine's execution
// list, and stable enough that the engine rejects a duplicate submission
// of an id still in flight instead of running it twice.
const (
	opCreateUser = "create-user"
	opUpdateUser = "update-user"
	opGetUser    = "get-user"
	opListUsers  = "list-users"
)

// WorkflowRunner is the narrow slice of the Temporal client the
// dispatcher needs. client.Client satisfies it.
type WorkflowRunner interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow any, args ...any) (client.WorkflowRun, error)
}

// EngineError marks a failure of the execution engine itself: engine
// unreachable, or a workflow that fatally failed after exhausting
// retries. It is a distinct class from the business-outcome codes carried
// inside successful workflow results, and the dispatcher never retries
// it; retry is solely the engine's responsibility.
type EngineError struct {
	Op         string
	WorkflowID string
	Err        error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("engine failure during %s (workflow %s): %v", e.Op, e.WorkflowID, e.Err)
}

// Unwrap returns the underlying engine error.
func (e *EngineError) Unwrap() error { return e.Err }

// Dispatcher submits user workflows to one task queue and awaits their
// terminal outcomes.
type Dispatcher struct {
	tc        WorkflowRunner
	taskQueue string
	cfg       domain.ActivityConfig
	log       *zap.SugaredLogger

	// now is swappable for workflow-id tests.
	now func() time.Time
}

// NewDispatcher creates a dispatcher over a Temporal client. All user
// operations share the one task queue; the activity config is resolved
// here once and travels inside every request so workflows stay
// deterministic.
func NewDispatcher(tc WorkflowRunner, taskQueue string, cfg domain.ActivityConfig, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		tc:        tc,
		taskQueue: taskQueue,
		cfg:       cfg.Normalize(),
		log:       log,
		now:       time.Now,
	}
}

// CreateUser submits the create workflow and awaits its outcome.
// Validation failures short-circuit with a 400 result before anything is
// submitted.
func (d *Dispatcher) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.CreateUserResult, error) {
	if err := in.Validate(); err != nil {
		return &domain.CreateUserResult{Code: http.StatusBadRequest, Message: err.Error()}, nil
	}

	wfID := d.workflowID(opCreateUser, in.Mobile)
	req := domain.CreateUserRequest{Input: in, Config: d.cfg}

	var result domain.CreateUserResult
	if err := d.run(ctx, opCreateUser, wfID, workflow.CreateUserWorkflow, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateUser submits the update workflow and awaits its outcome.
func (d *Dispatcher) UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.UpdateUserResult, error) {
	if err := in.Validate(); err != nil {
		return &domain.UpdateUserResult{Code: http.StatusBadRequest, UserID: id, Message: err.Error()}, nil
	}

	wfID := d.workflowID(opUpdateUser, strconv.FormatInt(id, 10))
	req := domain.UpdateUserRequest{UserID: id, Input: in, Config: d.cfg}

	var result domain.UpdateUserResult
	if err := d.run(ctx, opUpdateUser, wfID, workflow.UpdateUserWorkflow, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUser submits the get workflow and awaits its outcome.
func (d *Dispatcher) GetUser(ctx context.Context, id int64) (*domain.GetUserResult, error) {
	wfID := d.workflowID(opGetUser, strconv.FormatInt(id, 10))
	req := domain.GetUserRequest{UserID: id, Config: d.cfg}

	var result domain.GetUserResult
	if err := d.run(ctx, opGetUser, wfID, workflow.GetUserWorkflow, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListUsers submits the list workflow and awaits its page.
func (d *Dispatcher) ListUsers(ctx context.Context, in domain.ListUsersInput) (*domain.ListUsersResult, error) {
	in = in.Normalize()
	wfID := d.workflowID(opListUsers, fmt.Sprintf("%d-%d", in.Limit, in.Offset))
	req := domain.ListUsersRequest{Input: in, Config: d.cfg}

	var result domain.ListUsersResult
	if err := d.run(ctx, opListUsers, wfID, workflow.ListUsersWorkflow, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// run submits one workflow and blocks until its terminal outcome is
// decoded into resultPtr. Engine-level failures on either side of the
// await are wrapped as EngineError.
func (d *Dispatcher) run(ctx context.Context, op, wfID string, wf any, req, resultPtr any) error {
	opts := client.StartWorkflowOptions{
		ID:        wfID,
		TaskQueue: d.taskQueue,
	}

	handle, err := d.tc.ExecuteWorkflow(ctx, opts, wf, req)
	if err != nil {
		d.log.Errorw("workflow submission failed",
			"operation", op,
			"workflow_id", wfID,
			"error", err)
		return &EngineError{Op: op, WorkflowID: wfID, Err: err}
	}

	d.log.Debugw("workflow submitted",
		"operation", op,
		"workflow_id", wfID,
		"run_id", handle.GetRunID(),
		"task_queue", d.taskQueue)

	if err := handle.Get(ctx, resultPtr); err != nil {
		d.log.Errorw("workflow execution failed",
			"operation", op,
			"workflow_id", wfID,
			"error", err)
		return &EngineError{Op: op, WorkflowID: wfID, Err: err}
	}
	return nil
}

// workflowID builds "{operation}-{key}-{unixMillis}".
func (d *Dispatcher) workflowID(op, key string) string {
	return fmt.Sprintf("%s-%s-%d", op, key, d.now().UnixMilli())
}
