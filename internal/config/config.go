// Package config defines the configuration structures for ScholarAI.  Only
// plain data types and validation live here; loading is in loader.go and
// defaults in defaults.go.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Mode               string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodySize        int64         `mapstructure:"max_body_size"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// Logging converts the section into the logging package's constructor input.
func (l LogConfig) Logging() logging.LogConfig {
	return logging.LogConfig{
		Level:       l.Level,
		Format:      l.Format,
		OutputPaths: l.OutputPaths,
	}
}

// AuthConfig holds token issuing parameters.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	Issuer        string        `mapstructure:"issuer"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	SeedDemoUsers bool          `mapstructure:"seed_demo_users"`
}

// NotifierConfig controls the deadline scan.
type NotifierConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Schedule          string `mapstructure:"schedule"` // cron spec or descriptor, e.g. "@hourly"
	DefaultOwnerID    string `mapstructure:"default_owner_id"`
	SeedNotifications bool   `mapstructure:"seed_notifications"`
}

// AssistantConfig selects and tunes the completion backend.
type AssistantConfig struct {
	Provider     string        `mapstructure:"provider"` // "openai" | "gemini" | "none"
	Endpoint     string        `mapstructure:"endpoint"`
	APIKey       string        `mapstructure:"api_key"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// RedisConfig holds Redis connection parameters for the conversation history store.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	HistoryTTL   time.Duration `mapstructure:"history_ttl"`
	HistoryLimit int           `mapstructure:"history_limit"`
}

// KafkaConfig holds event publishing parameters.
type KafkaConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Brokers           []string      `mapstructure:"brokers"`
	SchemeTopic       string        `mapstructure:"scheme_topic"`
	NotificationTopic string        `mapstructure:"notification_topic"`
	Acks              string        `mapstructure:"acks"` // "none" | "one" | "all"
	Compression       string        `mapstructure:"compression"`
	BatchTimeout      time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// RateLimitConfig controls the per-client request limiter.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

// CatalogConfig controls how the scheme catalog is seeded.
type CatalogConfig struct {
	SeedSamples bool   `mapstructure:"seed_samples"`
	SeedFile    string `mapstructure:"seed_file"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of a fully-populated Config and
// returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}

	if c.Notifier.Enabled {
		if _, err := cron.ParseStandard(c.Notifier.Schedule); err != nil {
			return fmt.Errorf("config: notifier.schedule %q is invalid: %w", c.Notifier.Schedule, err)
		}
	}
	if c.Notifier.DefaultOwnerID == "" {
		return fmt.Errorf("config: notifier.default_owner_id is required")
	}

	switch c.Assistant.Provider {
	case "none":
	case "openai":
		if _, err := url.ParseRequestURI(c.Assistant.Endpoint); err != nil {
			return fmt.Errorf("config: assistant.endpoint %q is not a valid URL", c.Assistant.Endpoint)
		}
	case "gemini":
		if c.Assistant.APIKey == "" {
			return fmt.Errorf("config: assistant.api_key is required for the gemini provider")
		}
	default:
		return fmt.Errorf("config: assistant.provider %q is invalid; expected openai|gemini|none", c.Assistant.Provider)
	}
	if c.Assistant.Timeout <= 0 {
		return fmt.Errorf("config: assistant.timeout must be positive, got %s", c.Assistant.Timeout)
	}
	if c.Assistant.MaxRetries < 0 {
		return fmt.Errorf("config: assistant.max_retries must be ≥ 0, got %d", c.Assistant.MaxRetries)
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when redis is enabled")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.SchemeTopic == "" || c.Kafka.NotificationTopic == "" {
			return fmt.Errorf("config: kafka.scheme_topic and kafka.notification_topic are required")
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute < 1 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("config: ratelimit.requests_per_minute and ratelimit.burst must be ≥ 1")
	}

	return nil
}

//Personal.AI order the ending
