// Command ocrdebug runs reward recognition on a saved reward screen image.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"

	"github.com/osse101/RelicWatch_Go/internal/catalog"
	"github.com/osse101/RelicWatch_Go/internal/config"
	"github.com/osse101/RelicWatch_Go/internal/logger"
	"github.com/osse101/RelicWatch_Go/internal/market"
	"github.com/osse101/RelicWatch_Go/internal/matcher"
	"github.com/osse101/RelicWatch_Go/internal/ocr"
	"github.com/osse101/RelicWatch_Go/internal/screen"
)

func main() {
	imagePath := flag.String("image", "", "reward screen image (png or jpeg)")
	squad := flag.Int("squad", 4, "number of reward frames on the screen (1-4)")
	flag.Parse()

	if *imagePath == "" || *squad < 1 || *squad > 4 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "dev", cfg.Environment), os.Stderr)
	ctx := context.Background()

	frame, err := imaging.Open(*imagePath)
	if err != nil {
		slog.Error("Failed to open image", "path", *imagePath, "error", err)
		os.Exit(1)
	}

	if err := ocr.Validate(ctx, cfg.OCRBackend, cfg.TesseractPath); err != nil {
		slog.Error("OCR backend unavailable", "backend", cfg.OCRBackend, "error", err)
		os.Exit(1)
	}
	engine, err := ocr.New(cfg.OCRBackend, cfg.TesseractPath)
	if err != nil {
		slog.Error("OCR backend unavailable", "backend", cfg.OCRBackend, "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.CachePath, 0o755); err != nil {
		slog.Error("Failed to create cache path", "error", err)
		os.Exit(1)
	}
	api := market.NewAPI(market.NewClient(cfg.MarketConcurrency), cfg.MarketBaseURL)
	c, err := catalog.Build(ctx, cfg.CachePath, api)
	if err != nil {
		slog.Error("Failed to build catalog", "error", err)
		os.Exit(1)
	}

	m := matcher.New(c)
	recognizer := screen.NewRecognizer(engine, m, cfg.DebugImageDir)
	g := screen.NewGeometry(frame.Bounds())

	for slot, x := range g.Offsets(*squad) {
		text, err := recognizer.Recognize(ctx, frame, g, x)
		if err != nil {
			fmt.Printf("slot %d (x=%d): error: %v\n", slot, x, err)
			continue
		}
		if item, ok := m.Match(text); ok {
			fmt.Printf("slot %d (x=%d): %q -> %s\n", slot, x, text, item.Name)
		} else {
			fmt.Printf("slot %d (x=%d): %q -> no match\n", slot, x, text)
		}
	}
}
