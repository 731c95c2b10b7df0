package worker

import (
	"fmt"

	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/ahrav/go-userflow/internal/config"
	"github.com/ahrav/go-userflow/internal/logging"
	"github.com/ahrav/go-userflow/internal/store"
)

// NewTemporalClient dials the execution engine with the zap-backed
// logging adapter installed, so workflow and activity log intents land in
// the process log.
func NewTemporalClient(cfg *config.Config, log *zap.SugaredLogger) (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		Logger:    logging.NewTemporalAdapter(log),
	})
	if err != nil {
		return nil, fmt.Errorf("dial temporal at %s: %w", cfg.TemporalHostPort, err)
	}
	return c, nil
}

// InitializeStore opens the database and prepares the user store,
// including schema migration.
func InitializeStore(cfg *config.Config) (*store.UserStore, error) {
	db, err := store.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	st := store.NewUserStore(db)
	if err := st.Migrate(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	return st, nil
}

// NewWorker constructs a Temporal worker for the configured task queue
// with the configured concurrency limits.
func NewWorker(c client.Client, cfg *config.Config) sdkworker.Worker {
	return sdkworker.New(c, cfg.TaskQueue, sdkworker.Options{
		MaxConcurrentActivityExecutionSize:     cfg.MaxConcurrentActivities,
		MaxConcurrentWorkflowTaskExecutionSize: cfg.MaxConcurrentWorkflowTasks,
	})
}
