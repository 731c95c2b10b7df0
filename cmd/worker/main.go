// The worker process registers the user workflows and activities with
// the execution engine and executes assigned work until it receives a
// termination signal. Startup is fail-fast: a worker that cannot connect
// or register would silently drop every task on its queue, so any
// initialization error exits non-zero.
package main

import (
	"log"

	"github.com/joho/godotenv"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-userflow/internal/config"
	"github.com/ahrav/go-userflow/internal/logging"
	"github.com/ahrav/go-userflow/internal/worker"
	"github.com/ahrav/go-userflow/pkg/events"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on system env vars")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.Init("userflow-worker", cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := worker.InitializeStore(cfg)
	if err != nil {
		logger.Fatalw("store initialization failed", "error", err)
	}

	c, err := worker.NewTemporalClient(cfg, logger)
	if err != nil {
		logger.Fatalw("temporal connection failed",
			"host_port", cfg.TemporalHostPort,
			"error", err)
	}
	defer c.Close()

	w := worker.NewWorker(c, cfg)
	worker.RegisterAll(w, st, events.NewLogEventSink(logger))

	logger.Infow("worker starting",
		"task_queue", cfg.TaskQueue,
		"namespace", cfg.TemporalNamespace,
		"max_concurrent_activities", cfg.MaxConcurrentActivities,
		"max_concurrent_workflow_tasks", cfg.MaxConcurrentWorkflowTasks)

	if err := w.Run(sdkworker.InterruptCh()); err != nil {
		logger.Fatalw("worker exited with error", "error", err)
	}
	logger.Infow("worker stopped")
}
