package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/osse101/RelicWatch_Go/internal/config"
	"github.com/osse101/RelicWatch_Go/internal/database"
	"github.com/osse101/RelicWatch_Go/internal/database/postgres"
	"github.com/osse101/RelicWatch_Go/internal/sink"
	"github.com/osse101/RelicWatch_Go/internal/sse"
)

// ErrUnknownSink is returned for a sink name with no implementation
var ErrUnknownSink = errors.New(ErrMsgUnknownSink)

// BuildSink creates the configured sink. The returned close func releases
// connections held by the sink and is never nil.
func BuildSink(ctx context.Context, cfg *config.Config, hub *sse.Hub, stdout io.Writer) (sink.Sink, func(), error) {
	noop := func() {}

	var (
		s       sink.Sink
		closeFn = noop
	)
	switch cfg.Sink {
	case sink.NameStdout:
		s = sink.NewStdout(stdout)

	case sink.NameOverlay:
		s = sink.NewOverlay(hub)

	case sink.NamePostgres:
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.DefaultMaxConnections,
			database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
		if err != nil {
			return nil, noop, fmt.Errorf("%s %s: %w", ErrMsgConnectSink, cfg.Sink, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("%s: %w", ErrMsgMigrateSchema, err)
		}
		s = sink.NewPostgres(postgres.NewSnapshotRepository(pool))
		closeFn = pool.Close

	case sink.NameDiscord:
		d, err := sink.NewDiscord(cfg.DiscordWebhookURL)
		if err != nil {
			return nil, noop, fmt.Errorf("%s %s: %w", ErrMsgConnectSink, cfg.Sink, err)
		}
		s = d

	case sink.NameTelegram:
		tg, err := sink.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, noop, fmt.Errorf("%s %s: %w", ErrMsgConnectSink, cfg.Sink, err)
		}
		s = tg

	case sink.NameRedis:
		r, client, err := sink.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisChannel)
		if err != nil {
			return nil, noop, fmt.Errorf("%s %s: %w", ErrMsgConnectSink, cfg.Sink, err)
		}
		s = r
		closeFn = func() {
			if err := client.Close(); err != nil {
				slog.Warn(ErrMsgCloseComponent, "component", sink.NameRedis, "error", err)
			}
		}

	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownSink, cfg.Sink)
	}

	slog.Info(LogMsgSinkReady, "sink", s.Name())
	return s, closeFn, nil
}
