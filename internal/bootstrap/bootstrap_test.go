package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RelicWatch_Go/internal/config"
	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/sink"
	"github.com/osse101/RelicWatch_Go/internal/sse"
)

func restoreDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestCleanupLogsKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2024-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, LogFilePermission))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, LogFilePermission))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, 10)
	assert.Contains(t, names, "notes.txt")
	assert.NotContains(t, names, fmt.Sprintf(LogFileNamePattern, "2024-01-03_00-00-00"))
	assert.Contains(t, names, fmt.Sprintf(LogFileNamePattern, "2024-01-04_00-00-00"))
}

func TestSetupLogger(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := config.Default()
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.LogFormat = "json"

	var stdout bytes.Buffer
	f, err := SetupLogger(cfg, "1.2.3", &stdout)
	require.NoError(t, err)
	defer f.Close()

	slog.Info("hello")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"version":"1.2.3"`)
	assert.Contains(t, stdout.String(), LogMsgStarting)
}

func TestSetupLoggerBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, LogFilePermission))

	cfg := config.Default()
	cfg.LogDir = filepath.Join(file, "logs")

	_, err := SetupLogger(cfg, "dev", &bytes.Buffer{})
	assert.ErrorContains(t, err, ErrMsgCreateLogDir)
}

func TestEngineConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CaptureBackend = "replay"
	cfg.ReplayDir = "/frames"
	cfg.DisplayIndex = 1
	cfg.MaxAttempts = 3

	ec := EngineConfig(cfg)

	assert.Equal(t, "replay", ec.Capture.Backend)
	assert.Equal(t, "/frames", ec.Capture.ReplayDir)
	assert.Equal(t, 1, ec.Capture.DisplayIndex)
	assert.Equal(t, 3, ec.MaxAttempts)
	assert.Equal(t, cfg.MarketBaseURL, ec.MarketBaseURL)
	assert.Equal(t, cfg.CaptureInterval, ec.CaptureInterval)
}

func TestBuildSink(t *testing.T) {
	ctx := context.Background()
	hub := sse.NewHub()

	t.Run("stdout", func(t *testing.T) {
		cfg := config.Default()
		s, closeFn, err := BuildSink(ctx, cfg, hub, &bytes.Buffer{})
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, sink.NameStdout, s.Name())
	})

	t.Run("overlay", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sink = sink.NameOverlay
		s, closeFn, err := BuildSink(ctx, cfg, hub, &bytes.Buffer{})
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, sink.NameOverlay, s.Name())
	})

	t.Run("discord", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sink = sink.NameDiscord
		cfg.DiscordWebhookURL = "https://discord.com/api/webhooks/1/token"
		s, closeFn, err := BuildSink(ctx, cfg, hub, &bytes.Buffer{})
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, sink.NameDiscord, s.Name())

		cfg.DiscordWebhookURL = "https://example.com"
		_, closeFn, err = BuildSink(ctx, cfg, hub, &bytes.Buffer{})
		assert.ErrorIs(t, err, sink.ErrInvalidWebhookURL)
		assert.NotNil(t, closeFn)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sink = sink.NameRedis
		cfg.RedisAddr = "127.0.0.1:1"
		tctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		_, _, err := BuildSink(tctx, cfg, hub, &bytes.Buffer{})
		assert.ErrorContains(t, err, ErrMsgConnectSink)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sink = "carrier-pigeon"
		_, closeFn, err := BuildSink(ctx, cfg, hub, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrUnknownSink)
		assert.NotNil(t, closeFn)
	})
}

func TestGracefulShutdown(t *testing.T) {
	hub := sse.NewHub()
	client := hub.Subscribe(nil)

	var order []string
	GracefulShutdown(context.Background(), ShutdownComponents{
		Hub: hub,
		Wait: func() {
			// the pipeline flushes into a hub that is still running
			hub.Publish(domain.RewardSnapshot{SessionID: "s1", Final: true})
			select {
			case ev, ok := <-client.Events():
				if assert.True(t, ok) {
					assert.Equal(t, sse.EventTypeFinal, ev.Type)
				}
			case <-time.After(time.Second):
				t.Error("final event not delivered before the hub stopped")
			}
			order = append(order, "wait")
		},
		Closers: []func(){
			func() { order = append(order, "first") },
			func() { order = append(order, "second") },
		},
	})

	assert.Equal(t, []string{"wait", "first", "second"}, order)
	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-client.Events()
	assert.False(t, open)
}

func TestGracefulShutdownTimesOutOnWait(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	release := make(chan struct{})
	defer close(release)

	closed := false
	GracefulShutdown(ctx, ShutdownComponents{
		Wait:    func() { <-release },
		Closers: []func(){func() { closed = true }},
	})

	assert.True(t, closed)
}
