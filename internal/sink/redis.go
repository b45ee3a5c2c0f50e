package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

// RedisClient is the part of *redis.Client the sink needs
type RedisClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis publishes every snapshot as JSON and keeps the latest one under a key
type Redis struct {
	client  RedisClient
	channel string
}

// NewRedis connects to addr and checks the connection. The returned client
// must be closed by the caller.
func NewRedis(ctx context.Context, addr, password, channel string) (*Redis, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgRedisConnect, err)
	}

	return NewRedisWithClient(client, channel), client, nil
}

// NewRedisWithClient creates a sink on an existing client
func NewRedisWithClient(client RedisClient, channel string) *Redis {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &Redis{client: client, channel: channel}
}

func (r *Redis) Name() string { return NameRedis }

func (r *Redis) Accept(ctx context.Context, snap domain.RewardSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeSnapshot, err)
	}

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRedisPublish, err)
	}
	if snap.Final {
		if err := r.client.Set(ctx, RedisLatestKey, data, RedisLatestTTL).Err(); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgRedisPublish, err)
		}
	}
	return nil
}
