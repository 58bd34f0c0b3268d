package config

import (
	"errors"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	NWSBaseURL   string
	NWSUserAgent string
	PollInterval time.Duration

	DiscordToken string

	// Storage backend selection: "file", "redis", or "gcs".
	StorageBackend string
	StorageDir     string
	RedisAddr      string
	GCSBucket      string

	// Kafka bulletin mirror configuration.
	KafkaBrokers     []string
	KafkaMirrorTopic string
	KafkaEnabled     bool

	// Text bulletin feeds (SPC and WPC chat channels).
	TextFeedsEnabled bool
	SPCFeedURL       string
	WPCFeedURL       string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	pollIntervalStr := sharedcfg.EnvOrDefault("POLL_INTERVAL", "1m")
	pollInterval, err2 := time.ParseDuration(pollIntervalStr)
	if err2 != nil || pollInterval <= 0 {
		return nil, errors.New("invalid POLL_INTERVAL")
	}

	var kafkaBrokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		kafkaBrokers = sharedcfg.ParseBrokers(raw)
	}
	kafkaEnabled := len(kafkaBrokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	textFeedsEnabled := true
	if v := os.Getenv("TEXT_FEEDS_ENABLED"); v != "" {
		textFeedsEnabled = v == "true"
	}

	cfg := &Config{
		NWSBaseURL:   sharedcfg.EnvOrDefault("NWS_BASE_URL", "https://api.weather.gov"),
		NWSUserAgent: sharedcfg.EnvOrDefault("NWS_USER_AGENT", "nws-alert-relay (weather@couchcryptid.dev)"),
		PollInterval: pollInterval,

		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		StorageBackend: sharedcfg.EnvOrDefault("STORAGE_BACKEND", "file"),
		StorageDir:     sharedcfg.EnvOrDefault("STORAGE_DIR", "./data"),
		RedisAddr:      sharedcfg.EnvOrDefault("REDIS_ADDR", "localhost:6379"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),

		KafkaBrokers:     kafkaBrokers,
		KafkaMirrorTopic: sharedcfg.EnvOrDefault("KAFKA_MIRROR_TOPIC", "nws-alert-bulletins"),
		KafkaEnabled:     kafkaEnabled,

		TextFeedsEnabled: textFeedsEnabled,
		SPCFeedURL:       sharedcfg.EnvOrDefault("SPC_FEED_URL", "https://weather.im/iembot-rss/room/spcchat.xml"),
		WPCFeedURL:       sharedcfg.EnvOrDefault("WPC_FEED_URL", "https://weather.im/iembot-rss/room/wpcchat.xml"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	switch cfg.StorageBackend {
	case "file":
		if cfg.StorageDir == "" {
			return nil, errors.New("STORAGE_DIR is required for the file backend")
		}
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, errors.New("REDIS_ADDR is required for the redis backend")
		}
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, errors.New("GCS_BUCKET is required for the gcs backend")
		}
	default:
		return nil, errors.New("STORAGE_BACKEND must be file, redis, or gcs")
	}

	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}
