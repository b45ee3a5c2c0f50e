// Package engine wires the catalog, capture, recognition and pricing together
// and drives reward capture from game log events.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/osse101/RelicWatch_Go/internal/capture"
	"github.com/osse101/RelicWatch_Go/internal/catalog"
	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/lifecycle"
	"github.com/osse101/RelicWatch_Go/internal/logwatch"
	"github.com/osse101/RelicWatch_Go/internal/market"
	"github.com/osse101/RelicWatch_Go/internal/matcher"
	"github.com/osse101/RelicWatch_Go/internal/ocr"
	"github.com/osse101/RelicWatch_Go/internal/pricing"
	"github.com/osse101/RelicWatch_Go/internal/screen"
)

// Config holds everything the engine needs to start
type Config struct {
	TesseractPath     string
	CachePath         string
	OCRBackend        string
	OCRConcurrency    int
	GameLogPath       string
	WindowTitle       string
	Capture           capture.Options
	DebugImageDir     string
	MarketBaseURL     string
	MarketConcurrency int64
	CaptureInterval   time.Duration
	MaxAttempts       int
	DefaultSquadSize  int
}

// LogSource streams parsed game log entries
type LogSource interface {
	Entries(ctx context.Context) (<-chan logwatch.Entry, error)
}

// Option overrides a collaborator, mostly for tests and offline runs
type Option func(*Engine)

// WithOCR uses engine instead of the configured backend. The backend is not validated.
func WithOCR(e ocr.Engine) Option {
	return func(en *Engine) { en.ocr = e }
}

// WithCaptureBackend uses b instead of the configured capture backend
func WithCaptureBackend(b capture.Backend) Option {
	return func(en *Engine) { en.capture = b }
}

// WithLogSource reads game log entries from src instead of tailing GameLogPath
func WithLogSource(src LogSource) Option {
	return func(en *Engine) { en.logs = src }
}

// WithMarketOptions passes options to the market client
func WithMarketOptions(opts ...market.Option) Option {
	return func(en *Engine) { en.marketOpts = append(en.marketOpts, opts...) }
}

// Engine owns the catalog and the market client for the life of the process
type Engine struct {
	cfg        Config
	ocr        ocr.Engine
	capture    capture.Backend
	logs       LogSource
	marketOpts []market.Option

	api     *market.API
	catalog *domain.Catalog
	matcher *matcher.Matcher
}

// New prepares the cache directory, checks the OCR backend and loads the catalog
func New(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg.DefaultSquadSize == 0 {
		e.cfg.DefaultSquadSize = DefaultSquadSize
	}
	if e.cfg.WindowTitle == "" {
		e.cfg.WindowTitle = capture.DefaultWindowTitle
	}

	if err := os.MkdirAll(cfg.CachePath, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateCachePath, err)
	}

	if e.ocr == nil {
		if err := ocr.Validate(ctx, cfg.OCRBackend, cfg.TesseractPath); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOCRUnavailable, err)
		}
		backend, err := ocr.New(cfg.OCRBackend, cfg.TesseractPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOCRUnavailable, err)
		}
		e.ocr = backend
	}

	e.api = market.NewAPI(market.NewClient(cfg.MarketConcurrency, e.marketOpts...), cfg.MarketBaseURL)

	c, err := catalog.Build(ctx, cfg.CachePath, e.api)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogFetch, err)
	}
	e.catalog = c
	e.matcher = matcher.New(c)

	slog.Info(LogMsgEngineReady, "items", e.matcher.Len(), "cache_path", cfg.CachePath)
	return e, nil
}

// Catalog returns the loaded catalog
func (e *Engine) Catalog() *domain.Catalog {
	return e.catalog
}

// Run watches the game log and runs a capture session for every reward screen.
// It returns nil when ctx ends or the log source closes.
func (e *Engine) Run(ctx context.Context, out chan<- domain.RewardSnapshot) error {
	window, err := e.findWindow()
	if err != nil {
		return err
	}

	logs, err := e.logSource()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLogUnavailable, err)
	}
	entries, err := logs.Entries(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLogUnavailable, err)
	}

	recognizer := screen.NewRecognizer(ocr.NewLimited(e.ocr, e.cfg.OCRConcurrency), e.matcher, e.debugDir("crops"))
	lc := lifecycle.New(window, recognizer, e.matcher, pricing.NewAggregator(e.api), out, lifecycle.Config{
		Interval:    e.cfg.CaptureInterval,
		MaxAttempts: e.cfg.MaxAttempts,
	})

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = lc.Run(runCtx)
	}()
	defer func() {
		cancel()
		wg.Wait()
		slog.Info(LogMsgEngineStopped)
	}()

	slog.Info(LogMsgEngineRunning, "window", e.cfg.WindowTitle, "squad_size", e.cfg.DefaultSquadSize)
	squad := e.cfg.DefaultSquadSize
	for {
		select {
		case <-ctx.Done():
			return nil
		case entry, ok := <-entries:
			if !ok {
				slog.Info(LogMsgLogClosed)
				return nil
			}
			squad = e.handle(lc, entry, squad)
		}
	}
}

// handle reacts to one log entry and returns the squad size to use next
func (e *Engine) handle(lc *lifecycle.Lifecycle, entry logwatch.Entry, squad int) int {
	switch {
	case entry.Kind == logwatch.KindNetInfo:
		if n, ok := logwatch.ParseSquadSize(entry.Text); ok {
			slog.Debug(LogMsgSquadSize, "squad_size", n)
			return n
		}
	case entry.IsRewardsReady():
		slog.Info(LogMsgRewardsReady, "squad_size", squad)
		if err := lc.Start(squad); err != nil {
			slog.Warn(LogMsgControlRejected, "error", err)
		}
	case entry.IsRewardsReceived():
		slog.Info(LogMsgRewardsReceived)
		if err := lc.Cancel(); err != nil {
			slog.Warn(LogMsgControlRejected, "error", err)
		}
	}
	return squad
}

func (e *Engine) findWindow() (capture.Window, error) {
	backend := e.capture
	if backend == nil {
		b, err := capture.New(e.cfg.Capture)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCaptureBackend, err)
		}
		backend = b
	}

	window, err := backend.FindWindow(e.cfg.WindowTitle)
	switch {
	case errors.Is(err, capture.ErrWindowNotFound):
		return nil, fmt.Errorf("%w: %w", ErrWindowNotFound, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrCaptureBackend, err)
	}
	return capture.WithDebug(window, e.debugDir("frames")), nil
}

func (e *Engine) logSource() (LogSource, error) {
	if e.logs != nil {
		return e.logs, nil
	}
	path := e.cfg.GameLogPath
	if path == "" {
		p, err := logwatch.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return logwatch.NewTailer(path), nil
}

func (e *Engine) debugDir(sub string) string {
	if e.cfg.DebugImageDir == "" {
		return ""
	}
	return filepath.Join(e.cfg.DebugImageDir, sub)
}
