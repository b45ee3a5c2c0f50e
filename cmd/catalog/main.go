// Command catalog builds the item catalog cache and looks up live prices.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/osse101/RelicWatch_Go/internal/catalog"
	"github.com/osse101/RelicWatch_Go/internal/config"
	"github.com/osse101/RelicWatch_Go/internal/logger"
	"github.com/osse101/RelicWatch_Go/internal/market"
	"github.com/osse101/RelicWatch_Go/internal/matcher"
	"github.com/osse101/RelicWatch_Go/internal/pricing"
	"github.com/osse101/RelicWatch_Go/internal/screen"
)

func main() {
	refresh := flag.Bool("refresh", false, "delete the cached catalog before building it")
	price := flag.String("price", "", "print the live price of the named item")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "dev", cfg.Environment), os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *refresh {
		if err := catalog.Refresh(cfg.CachePath); err != nil {
			slog.Error("Failed to clear catalog cache", "error", err)
			os.Exit(1)
		}
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

	if *price == "" {
		fmt.Printf("items: %d\nsets: %d\nrelics: %d\n", len(c.Items), len(c.Sets), len(c.Relics))
		return
	}

	item, ok := matcher.New(c).Match(screen.Cleanup(*price))
	if !ok {
		slog.Error("No single catalog item matches", "name", *price)
		os.Exit(1)
	}
	p, err := pricing.NewAggregator(api).Price(ctx, item)
	if err != nil {
		slog.Error("Price lookup failed", "item", item.Name, "error", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %dp (%d ducats)\n", item.Name, p, item.Ducats)
}
