package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidEnv    = errors.New(ErrMsgInvalidEnv)
	ErrInvalidConfig = errors.New(ErrMsgInvalidConfig)
)

// Config holds the application configuration
type Config struct {
	TesseractPath  string `yaml:"tesseract_path" validate:"required_if=OCRBackend cli"`
	CachePath      string `yaml:"cache_path" validate:"required"`
	OCRBackend     string `yaml:"ocr_backend" validate:"oneof=cli gosseract"`
	OCRConcurrency int    `yaml:"ocr_concurrency" validate:"gte=0"`
	GameLogPath    string `yaml:"game_log_path"`
	WindowTitle    string `yaml:"window_title" validate:"required"`
	CaptureBackend string `yaml:"capture_backend" validate:"oneof=screen display replay"`
	ReplayDir      string `yaml:"replay_dir" validate:"required_if=CaptureBackend replay"`
	DisplayIndex   int    `yaml:"display_index" validate:"gte=0"`
	DebugImageDir  string `yaml:"debug_image_dir"`

	MarketBaseURL     string        `yaml:"market_base_url" validate:"required,url"`
	MarketConcurrency int64         `yaml:"market_concurrency" validate:"gte=1"`
	CaptureInterval   time.Duration `yaml:"capture_interval" validate:"gt=0"`
	MaxAttempts       int           `yaml:"max_attempts" validate:"gte=1"`
	DefaultSquadSize  int           `yaml:"default_squad_size" validate:"gte=1,lte=4"`

	Sink              string `yaml:"sink" validate:"sinkname"`
	HTTPPort          int    `yaml:"http_port" validate:"gte=0,lte=65535"` // 0 disables the status server
	DatabaseURL       string `yaml:"database_url" validate:"required_if=Sink postgres"`
	DiscordWebhookURL string `yaml:"discord_webhook_url" validate:"required_if=Sink discord"`
	TelegramToken     string `yaml:"telegram_token" validate:"required_if=Sink telegram"`
	TelegramChatID    int64  `yaml:"telegram_chat_id" validate:"required_if=Sink telegram"`
	RedisAddr         string `yaml:"redis_addr" validate:"required_if=Sink redis"`
	RedisPassword     string `yaml:"redis_password"`
	RedisChannel      string `yaml:"redis_channel"`

	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat   string `yaml:"log_format" validate:"oneof=json text"`
	LogDir      string `yaml:"log_dir"`
	Environment string `yaml:"environment"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		TesseractPath:     DefaultTesseractPath,
		CachePath:         DefaultCachePath,
		OCRBackend:        DefaultOCRBackend,
		WindowTitle:       DefaultWindowTitle,
		CaptureBackend:    DefaultCaptureBackend,
		MarketBaseURL:     DefaultMarketBaseURL,
		MarketConcurrency: DefaultMarketConcurrency,
		CaptureInterval:   DefaultCaptureInterval,
		MaxAttempts:       DefaultMaxAttempts,
		DefaultSquadSize:  DefaultSquadSize,
		Sink:              DefaultSink,
		HTTPPort:          DefaultHTTPPort,
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
		LogDir:            DefaultLogDir,
		Environment:       DefaultEnvironment,
	}
}

// Load builds the configuration from, in increasing priority: defaults, the
// YAML file named by CONFIG_FILE and environment variables (a .env file in
// the working directory is loaded first when present).
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgReadConfigFile, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s %s: %w", ErrMsgParseConfigFile, path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	env := &envReader{}

	env.asString(EnvTesseractPath, &c.TesseractPath)
	env.asString(EnvCachePath, &c.CachePath)
	env.asString(EnvOCRBackend, &c.OCRBackend)
	env.asInt(EnvOCRConcurrency, &c.OCRConcurrency)
	env.asString(EnvGameLogPath, &c.GameLogPath)
	env.asString(EnvWindowTitle, &c.WindowTitle)
	env.asString(EnvCaptureBackend, &c.CaptureBackend)
	env.asString(EnvReplayDir, &c.ReplayDir)
	env.asInt(EnvDisplayIndex, &c.DisplayIndex)
	env.asString(EnvDebugImageDir, &c.DebugImageDir)
	env.asString(EnvMarketBaseURL, &c.MarketBaseURL)
	env.asInt64(EnvMarketConcurrency, &c.MarketConcurrency)
	env.asDuration(EnvCaptureInterval, &c.CaptureInterval)
	env.asInt(EnvMaxAttempts, &c.MaxAttempts)
	env.asInt(EnvDefaultSquadSize, &c.DefaultSquadSize)
	env.asString(EnvSink, &c.Sink)
	env.asInt(EnvHTTPPort, &c.HTTPPort)
	env.asString(EnvDatabaseURL, &c.DatabaseURL)
	env.asString(EnvDiscordWebhookURL, &c.DiscordWebhookURL)
	env.asString(EnvTelegramToken, &c.TelegramToken)
	env.asInt64(EnvTelegramChatID, &c.TelegramChatID)
	env.asString(EnvRedisAddr, &c.RedisAddr)
	env.asString(EnvRedisPassword, &c.RedisPassword)
	env.asString(EnvRedisChannel, &c.RedisChannel)
	env.asString(EnvLogLevel, &c.LogLevel)
	env.asString(EnvLogFormat, &c.LogFormat)
	env.asString(EnvLogDir, &c.LogDir)
	env.asString(EnvEnvironment, &c.Environment)

	return errors.Join(env.errs...)
}

func (c *Config) normalize() {
	c.OCRBackend = strings.ToLower(c.OCRBackend)
	c.CaptureBackend = strings.ToLower(c.CaptureBackend)
	c.Sink = strings.ToLower(c.Sink)
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
}

// envReader overwrites fields with set environment variables and collects
// parse failures so every bad value is reported at once
type envReader struct {
	errs []error
}

func (e *envReader) asString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func (e *envReader) asInt(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%w: %s=%q", ErrInvalidEnv, key, v))
		return
	}
	*dst = n
}

func (e *envReader) asInt64(key string, dst *int64) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%w: %s=%q", ErrInvalidEnv, key, v))
		return
	}
	*dst = n
}

func (e *envReader) asDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%w: %s=%q", ErrInvalidEnv, key, v))
		return
	}
	*dst = d
}
