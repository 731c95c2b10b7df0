// Package config loads process configuration from the environment.
// Nothing here reaches workflow code directly: the dispatch layer folds
// the activity timeout and retry fields into each workflow request, which
// is the only configuration channel that survives replay.
package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"

	"github.com/ahrav/go-userflow/internal/domain"
)

// Config holds all tunables for the API and worker processes.
type Config struct {
	TemporalHostPort  string `env:"TEMPORAL_HOST_PORT" envDefault:"localhost:7233"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE" envDefault:"default"`
	TaskQueue         string `env:"TASK_QUEUE" envDefault:"user-operations"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	// Worker concurrency limits, passed to the engine's worker options
	// rather than enforced in-process. Zero means the SDK default.
	MaxConcurrentActivities    int `env:"MAX_CONCURRENT_ACTIVITIES" envDefault:"0"`
	MaxConcurrentWorkflowTasks int `env:"MAX_CONCURRENT_WORKFLOW_TASKS" envDefault:"0"`

	// Activity timeout and retry policy for infrastructure failures.
	ActivityTimeoutSeconds  int     `env:"ACTIVITY_TIMEOUT_S" envDefault:"30"`
	RetryInitialIntervalMS  int     `env:"RETRY_INITIAL_INTERVAL_MS" envDefault:"1000"`
	RetryBackoffCoefficient float64 `env:"RETRY_BACKOFF_COEFFICIENT" envDefault:"2.0"`
	RetryMaxIntervalSeconds int     `env:"RETRY_MAX_INTERVAL_S" envDefault:"60"`
	RetryMaxAttempts        int     `env:"RETRY_MAX_ATTEMPTS" envDefault:"5"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// ActivityConfig resolves the request-carried activity policy from the
// process configuration.
func (c *Config) ActivityConfig() domain.ActivityConfig {
	return domain.ActivityConfig{
		TimeoutSeconds:          c.ActivityTimeoutSeconds,
		RetryInitialIntervalMS:  c.RetryInitialIntervalMS,
		RetryBackoffCoefficient: c.RetryBackoffCoefficient,
		RetryMaxIntervalSeconds: c.RetryMaxIntervalSeconds,
		RetryMaxAttempts:        int32(c.RetryMaxAttempts),
	}.Normalize()
}
