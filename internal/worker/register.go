// Package worker exposes helpers to register workflows/activities with a
// Temporal worker and to construct the external-connection handles the
// worker process needs. Connection handles are built here and injected;
// nothing holds ambient global state.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-userflow/internal/store"
	"github.com/ahrav/go-userflow/internal/users"
	"github.com/ahrav/go-userflow/internal/workflow"
	"github.com/ahrav/go-userflow/pkg/activity"
	"github.com/ahrav/go-userflow/pkg/events"
)

// RegisterAll registers the full set of user workflows and activities
// with the Temporal worker. Must be called once during worker startup,
// before the worker runs; a worker missing a registration silently drops
// every task of that type on its queue.
func RegisterAll(w sdkworker.Worker, st *store.UserStore, sink events.EventSink) {
	base := activity.NewBaseActivities(sink)
	userActivities := users.NewActivities(base, st)

	w.RegisterWorkflow(workflow.CreateUserWorkflow)
	w.RegisterWorkflow(workflow.UpdateUserWorkflow)
	w.RegisterWorkflow(workflow.GetUserWorkflow)
	w.RegisterWorkflow(workflow.ListUsersWorkflow)

	w.RegisterActivity(userActivities.CheckDuplicateByMobile)
	w.RegisterActivity(userActivities.CreateUser)
	w.RegisterActivity(userActivities.UpdateUser)
	w.RegisterActivity(userActivities.GetUser)
	w.RegisterActivity(userActivities.ListUsers)
}
