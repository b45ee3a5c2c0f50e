package config

import "time"

// Environment variable names
const (
	EnvConfigFile        = "CONFIG_FILE"
	EnvTesseractPath     = "TESSERACT_PATH"
	EnvCachePath         = "CACHE_PATH"
	EnvOCRBackend        = "OCR_BACKEND"
	EnvOCRConcurrency    = "OCR_CONCURRENCY"
	EnvGameLogPath       = "GAME_LOG_PATH"
	EnvWindowTitle       = "WINDOW_TITLE"
	EnvCaptureBackend    = "CAPTURE_BACKEND"
	EnvReplayDir         = "REPLAY_DIR"
	EnvDisplayIndex      = "DISPLAY_INDEX"
	EnvDebugImageDir     = "DEBUG_IMAGE_DIR"
	EnvMarketBaseURL     = "MARKET_BASE_URL"
	EnvMarketConcurrency = "MARKET_CONCURRENCY"
	EnvCaptureInterval   = "CAPTURE_INTERVAL"
	EnvMaxAttempts       = "MAX_ATTEMPTS"
	EnvDefaultSquadSize  = "DEFAULT_SQUAD_SIZE"
	EnvSink              = "SINK"
	EnvHTTPPort          = "HTTP_PORT"
	EnvDatabaseURL       = "DATABASE_URL"
	EnvDiscordWebhookURL = "DISCORD_WEBHOOK_URL"
	EnvTelegramToken     = "TELEGRAM_TOKEN"
	EnvTelegramChatID    = "TELEGRAM_CHAT_ID"
	EnvRedisAddr         = "REDIS_ADDR"
	EnvRedisPassword     = "REDIS_PASSWORD"
	EnvRedisChannel      = "REDIS_CHANNEL"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvLogDir            = "LOG_DIR"
	EnvEnvironment       = "ENVIRONMENT"
)

// Defaults
const (
	DefaultTesseractPath     = "tesseract"
	DefaultCachePath         = "cache"
	DefaultOCRBackend        = "cli"
	DefaultWindowTitle       = "Warframe"
	DefaultCaptureBackend    = "screen"
	DefaultMarketBaseURL     = "https://api.warframe.market"
	DefaultMarketConcurrency = 10
	DefaultCaptureInterval   = time.Second
	DefaultMaxAttempts       = 10
	DefaultSquadSize         = 4
	DefaultSink              = "stdout"
	DefaultHTTPPort          = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogDir            = "logs"
	DefaultEnvironment       = "dev"
)

// Custom validation tags
const (
	TagSinkName = "sinkname"
)

// Error messages
const (
	ErrMsgReadConfigFile  = "failed to read config file"
	ErrMsgParseConfigFile = "failed to parse config file"
	ErrMsgInvalidEnv      = "invalid environment value"
	ErrMsgInvalidConfig   = "invalid configuration"
)
