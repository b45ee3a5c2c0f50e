package sink

import "time"

// Sink names, also used as the SINK setting and as metric labels
const (
	NameStdout   = "stdout"
	NameOverlay  = "overlay"
	NamePostgres = "postgres"
	NameDiscord  = "discord"
	NameTelegram = "telegram"
	NameRedis    = "redis"
)

// Names lists every sink that can be configured
var Names = []string{NameStdout, NameOverlay, NamePostgres, NameDiscord, NameTelegram, NameRedis}

// Delivery settings
const (
	// DefaultQueueSize is the dispatcher backlog before the engine output is no longer drained
	DefaultQueueSize = 64

	// DeliveryTimeout bounds a single sink delivery
	DeliveryTimeout = 15 * time.Second

	// TelegramMinInterval is the minimum gap between two messages to the same chat
	TelegramMinInterval = 2 * time.Second

	DefaultRedisChannel = "relicwatch:snapshots"
	RedisLatestKey      = "relicwatch:latest"
	RedisLatestTTL      = time.Hour
	RedisPingTimeout    = 5 * time.Second

	// DiscordColorFinal is the embed accent color
	DiscordColorFinal = 0x7D56F4
)

// Rendering
const (
	UnresolvedLabel = "-"
	PriceFormat     = "%dp"
	WebhookPathPart = "webhooks"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgSkipped            = "snapshot not delivered by this sink"
	ErrMsgInvalidWebhookURL  = "invalid discord webhook url"
	ErrMsgDiscordSendFailed  = "discord webhook execution failed"
	ErrMsgTelegramInit       = "failed to create telegram bot"
	ErrMsgTelegramSendFailed = "telegram send failed"
	ErrMsgRedisConnect       = "failed to connect to redis"
	ErrMsgRedisPublish       = "redis publish failed"
	ErrMsgEncodeSnapshot     = "failed to encode snapshot"
	ErrMsgPersistFailed      = "failed to persist snapshot"
	ErrMsgDeliveryFailed     = "snapshot delivery failed on"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgDelivered         = "Snapshot delivered"
	LogMsgDispatcherStarted = "Snapshot dispatcher started"
	LogMsgDispatcherStopped = "Snapshot dispatcher stopped"
	LogMsgTelegramWaiting   = "Telegram send waiting for interval"
	LogMsgSnapshotStored    = "Snapshot stored"
)
