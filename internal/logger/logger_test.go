package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestJSONLogging(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLogger(Config{
		Level:       LogLevelInfo,
		Format:      LogFormatJSON,
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: EnvironmentTest,
	}, &buf)

	slog.Info("test message", "key", "value", "number", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-service", entry[AttrKeyService])
	assert.Equal(t, "1.0.0", entry[AttrKeyVersion])
	assert.Equal(t, EnvironmentTest, entry[AttrKeyEnvironment])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestLevelFiltering(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLogger(Config{Level: LogLevelWarn, Format: LogFormatText}, &buf)

	slog.Info("hidden")
	slog.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for level, want := range tests {
		assert.Equal(t, want, Config{Level: level}.LogLevel(), level)
	}
}

func TestSessionContext(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	InitLogger(Config{Level: LogLevelInfo, Format: LogFormatJSON}, &buf)

	id := GenerateSessionID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ctx := WithSessionID(context.Background(), id)
	got, ok := SessionIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	FromContext(ctx).Info("tick")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, id, entry[AttrKeySessionID])

	_, ok = SessionIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestRequestContext(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	InitLogger(Config{Level: LogLevelInfo, Format: LogFormatJSON}, &buf)

	ctx := WithRequestID(WithSessionID(context.Background(), "s1"), "r1")
	FromContext(ctx).Info("served")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "s1", entry[AttrKeySessionID])
	assert.Equal(t, "r1", entry[AttrKeyRequestID])
	assert.NotEqual(t, GenerateRequestID(), GenerateRequestID())
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("debug", "json", "1.2.3", EnvironmentProduction)

	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.True(t, cfg.AddSource)
	assert.True(t, cfg.IsJSON())
	assert.Len(t, cfg.BaseAttributes(), 3)
}
