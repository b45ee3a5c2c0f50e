package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/RelicWatch_Go/internal/server"
	"github.com/osse101/RelicWatch_Go/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server *server.Server
	Hub    *sse.Hub
	// Wait blocks until the capture pipeline and the dispatcher have exited
	Wait func()
	// Closers release external connections, in order
	Closers []func()
}

// GracefulShutdown stops components in dependency order:
//  1. capture pipeline and dispatcher (flushes queued snapshots, including
//     those bound for the overlay hub)
//  2. overlay hub (ends streaming responses so the server can drain)
//  3. status server
//  4. external connections
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Wait != nil {
		done := make(chan struct{})
		go func() {
			c.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			slog.Warn(LogMsgShuttingDown, "error", ctx.Err())
		}
	}

	if c.Hub != nil {
		c.Hub.Close()
	}

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedStop, "error", err)
		}
	}

	for _, closeFn := range c.Closers {
		closeFn()
	}

	slog.Info(LogMsgStopped)
}
