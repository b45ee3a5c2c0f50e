package bootstrap

import (
	"github.com/osse101/RelicWatch_Go/internal/capture"
	"github.com/osse101/RelicWatch_Go/internal/config"
	"github.com/osse101/RelicWatch_Go/internal/engine"
)

// EngineConfig maps the application configuration onto the engine's
func EngineConfig(cfg *config.Config) engine.Config {
	return engine.Config{
		TesseractPath:  cfg.TesseractPath,
		CachePath:      cfg.CachePath,
		OCRBackend:     cfg.OCRBackend,
		OCRConcurrency: cfg.OCRConcurrency,
		GameLogPath:    cfg.GameLogPath,
		WindowTitle:    cfg.WindowTitle,
		Capture: capture.Options{
			Backend:      cfg.CaptureBackend,
			DisplayIndex: cfg.DisplayIndex,
			ReplayDir:    cfg.ReplayDir,
		},
		DebugImageDir:     cfg.DebugImageDir,
		MarketBaseURL:     cfg.MarketBaseURL,
		MarketConcurrency: cfg.MarketConcurrency,
		CaptureInterval:   cfg.CaptureInterval,
		MaxAttempts:       cfg.MaxAttempts,
		DefaultSquadSize:  cfg.DefaultSquadSize,
	}
}
