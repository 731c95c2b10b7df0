package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	t.Run("builds a logger tagged with the service name", func(t *testing.T) {
		log, err := Init("userflow-test", "info", "development")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("rejects nothing on unknown levels, defaulting to info", func(t *testing.T) {
		log, err := Init("userflow-test", "nonsense", "production")
		require.NoError(t, err)
		require.NotNil(t, log)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"trace", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func newObservedAdapter(t *testing.T) (*TemporalAdapter, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewTemporalAdapter(zap.New(core).Sugar()), logs
}

func TestTemporalAdapterLevels(t *testing.T) {
	adapter, logs := newObservedAdapter(t)

	adapter.Debug("debug line", "k", "v")
	adapter.Info("info line")
	adapter.Warn("warn line")
	adapter.Error("error line", "err", "boom")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "debug line", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "boom", entries[3].ContextMap()["err"])
}

func TestTemporalAdapterWith(t *testing.T) {
	adapter, logs := newObservedAdapter(t)

	child := adapter.With("WorkflowID", "create-user-1234567890-1700000000000")
	child.Info("workflow started")
	adapter.Info("no binding here")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "create-user-1234567890-1700000000000", entries[0].ContextMap()["WorkflowID"])
	assert.NotContains(t, entries[1].ContextMap(), "WorkflowID",
		"With returns a child; the parent stays unbound")
}
