// Package logging owns both halves of the two-tier logging discipline.
// Worker bootstrap, the dispatch layer, and the HTTP surface log directly
// through zap. Workflow code never does: it emits log intents through
// workflow.GetLogger, and the TemporalAdapter installed on the Temporal
// client is where those intents (and activity logs) become real zap
// output, with the engine suppressing workflow log lines during replay.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	temporallog "go.temporal.io/sdk/log"
)

// Init builds the process logger. Development gets console encoding,
// everything else structured JSON.
func Init(service, level, appEnv string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if appEnv == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar().With("service", service), nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// TemporalAdapter bridges the Temporal SDK's leveled logging surface onto
// zap. Installed on the client it serves both workflow loggers (replay
// safe, deduplicated by the engine) and activity loggers (full fidelity).
type TemporalAdapter struct {
	s *zap.SugaredLogger
}

// NewTemporalAdapter wraps a zap logger for the Temporal client options.
func NewTemporalAdapter(s *zap.SugaredLogger) *TemporalAdapter {
	return &TemporalAdapter{s: s}
}

// Debug implements log.Logger.
func (a *TemporalAdapter) Debug(msg string, keyvals ...any) { a.s.Debugw(msg, keyvals...) }

// Info implements log.Logger.
func (a *TemporalAdapter) Info(msg string, keyvals ...any) { a.s.Infow(msg, keyvals...) }

// Warn implements log.Logger.
func (a *TemporalAdapter) Warn(msg string, keyvals ...any) { a.s.Warnw(msg, keyvals...) }

// Error implements log.Logger.
func (a *TemporalAdapter) Error(msg string, keyvals ...any) { a.s.Errorw(msg, keyvals...) }

// With implements log.WithLogger, returning a child logger with extra
// bound fields. The SDK uses it to attach workflow/activity metadata.
func (a *TemporalAdapter) With(keyvals ...any) temporallog.Logger {
	return &TemporalAdapter{s: a.s.With(keyvals...)}
}
