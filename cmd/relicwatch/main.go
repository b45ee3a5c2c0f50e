package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/osse101/RelicWatch_Go/internal/bootstrap"
	"github.com/osse101/RelicWatch_Go/internal/config"
	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/engine"
	"github.com/osse101/RelicWatch_Go/internal/server"
	"github.com/osse101/RelicWatch_Go/internal/sink"
	"github.com/osse101/RelicWatch_Go/internal/sse"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

const (
	// snapshotBuffer is the capacity of the engine output channel
	snapshotBuffer = 32
	// dispatchWorkers is kept at one so snapshots reach the sink in order
	dispatchWorkers = 1
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg, version, os.Stdout)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("RelicWatch failed", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	hub := sse.NewHub()

	out, closeSink, err := bootstrap.BuildSink(ctx, cfg, hub, os.Stdout)
	if err != nil {
		hub.Close()
		closeSink()
		return err
	}
	recorder := sink.NewRecorder(out)

	var catalog atomic.Pointer[domain.Catalog]
	var srv *server.Server
	if cfg.HTTPPort > 0 {
		srv = server.NewServer(cfg.HTTPPort, catalog.Load, recorder, hub)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Status server failed", "error", err)
			}
		}()
	}

	shutdown := func(wait func()) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bootstrap.ShutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(sctx, bootstrap.ShutdownComponents{
			Server:  srv,
			Hub:     hub,
			Wait:    wait,
			Closers: []func(){closeSink},
		})
	}

	eng, err := engine.New(ctx, bootstrap.EngineConfig(cfg))
	if err != nil {
		shutdown(nil)
		return err
	}
	catalog.Store(eng.Catalog())

	snapshots := make(chan domain.RewardSnapshot, snapshotBuffer)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// runs until snapshots is closed so late final snapshots are still delivered
		_ = sink.NewDispatcher(recorder, dispatchWorkers).Run(context.WithoutCancel(ctx), snapshots)
	}()

	runErr := eng.Run(ctx, snapshots)
	// the engine has joined its lifecycle, nothing else sends on snapshots
	close(snapshots)

	shutdown(wg.Wait)
	return runErr
}
