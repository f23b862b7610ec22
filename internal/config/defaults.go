package config

import (
	"time"

	"github.com/spf13/viper"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 60 * time.Second
	DefaultServerIdleTimeout     = 120 * time.Second
	DefaultServerShutdownTimeout = 15 * time.Second
	DefaultServerMaxBodySize     = 1 << 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultJWTSecret = "scholarai-dev-secret"
	DefaultIssuer    = "scholarai"
	DefaultTokenTTL  = 24 * time.Hour

	DefaultNotifierSchedule = "@hourly"
	DefaultOwnerID          = "1"

	DefaultAssistantProvider     = "none"
	DefaultAssistantModel        = "gpt-4o"
	DefaultAssistantTimeout      = 20 * time.Second
	DefaultAssistantMaxRetries   = 1
	DefaultAssistantRetryBackoff = 500 * time.Millisecond

	DefaultRedisAddr         = "localhost:6379"
	DefaultRedisPoolSize     = 10
	DefaultRedisDialTimeout  = 5 * time.Second
	DefaultRedisReadTimeout  = 3 * time.Second
	DefaultRedisWriteTimeout = 3 * time.Second
	DefaultRedisKeyPrefix    = "scholarai:"
	DefaultHistoryTTL        = 24 * time.Hour
	DefaultHistoryLimit      = 50

	DefaultKafkaBroker            = "localhost:9092"
	DefaultKafkaSchemeTopic       = "scholarai.schemes.events"
	DefaultKafkaNotificationTopic = "scholarai.notifications.created"
	DefaultKafkaAcks              = "one"
	DefaultKafkaBatchTimeout      = 100 * time.Millisecond
	DefaultKafkaWriteTimeout      = 10 * time.Second
	DefaultKafkaMaxRetries        = 3

	DefaultMetricsNamespace = "scholarai"
	DefaultMetricsPath      = "/metrics"

	DefaultRequestsPerMinute = 120
	DefaultRateLimitBurst    = 20
)

// Default returns a Config populated with every default, including the
// boolean switches that ApplyDefaults cannot infer from zero values.
func Default() *Config {
	cfg := &Config{
		Auth:      AuthConfig{SeedDemoUsers: true},
		Notifier:  NotifierConfig{Enabled: true, SeedNotifications: true},
		Assistant: AssistantConfig{MaxRetries: DefaultAssistantMaxRetries},
		Metrics:   MetricsConfig{Enabled: true},
		RateLimit: RateLimitConfig{Enabled: true},
		Catalog:   CatalogConfig{SeedSamples: true},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with its default.
// Explicitly set values are left unchanged.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultServerIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultServerMaxBodySize
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Auth ──────────────────────────────────────────────────────────────────
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = DefaultJWTSecret
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = DefaultIssuer
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = DefaultTokenTTL
	}

	// ── Notifier ──────────────────────────────────────────────────────────────
	if cfg.Notifier.Schedule == "" {
		cfg.Notifier.Schedule = DefaultNotifierSchedule
	}
	if cfg.Notifier.DefaultOwnerID == "" {
		cfg.Notifier.DefaultOwnerID = DefaultOwnerID
	}

	// ── Assistant ─────────────────────────────────────────────────────────────
	if cfg.Assistant.Provider == "" {
		cfg.Assistant.Provider = DefaultAssistantProvider
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = DefaultAssistantModel
	}
	if cfg.Assistant.Timeout == 0 {
		cfg.Assistant.Timeout = DefaultAssistantTimeout
	}
	if cfg.Assistant.RetryBackoff == 0 {
		cfg.Assistant.RetryBackoff = DefaultAssistantRetryBackoff
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisDialTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisReadTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisWriteTimeout
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.HistoryTTL == 0 {
		cfg.Redis.HistoryTTL = DefaultHistoryTTL
	}
	if cfg.Redis.HistoryLimit == 0 {
		cfg.Redis.HistoryLimit = DefaultHistoryLimit
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.SchemeTopic == "" {
		cfg.Kafka.SchemeTopic = DefaultKafkaSchemeTopic
	}
	if cfg.Kafka.NotificationTopic == "" {
		cfg.Kafka.NotificationTopic = DefaultKafkaNotificationTopic
	}
	if cfg.Kafka.Acks == "" {
		cfg.Kafka.Acks = DefaultKafkaAcks
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = DefaultKafkaBatchTimeout
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = DefaultKafkaWriteTimeout
	}
	if cfg.Kafka.MaxRetries == 0 {
		cfg.Kafka.MaxRetries = DefaultKafkaMaxRetries
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Rate limit ────────────────────────────────────────────────────────────
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = DefaultRateLimitBurst
	}
}

// registerDefaults seeds v with every key so that AutomaticEnv can resolve
// SCHOLARAI_* overrides during Unmarshal even when no file mentions the key.
func registerDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_body_size", d.Server.MaxBodySize)
	v.SetDefault("server.cors_allowed_origins", []string{})

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output_paths", []string{})

	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.issuer", d.Auth.Issuer)
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL)
	v.SetDefault("auth.seed_demo_users", d.Auth.SeedDemoUsers)

	v.SetDefault("notifier.enabled", d.Notifier.Enabled)
	v.SetDefault("notifier.schedule", d.Notifier.Schedule)
	v.SetDefault("notifier.default_owner_id", d.Notifier.DefaultOwnerID)
	v.SetDefault("notifier.seed_notifications", d.Notifier.SeedNotifications)

	v.SetDefault("assistant.provider", d.Assistant.Provider)
	v.SetDefault("assistant.endpoint", "")
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.model", d.Assistant.Model)
	v.SetDefault("assistant.timeout", d.Assistant.Timeout)
	v.SetDefault("assistant.max_retries", d.Assistant.MaxRetries)
	v.SetDefault("assistant.retry_backoff", d.Assistant.RetryBackoff)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", d.Redis.PoolSize)
	v.SetDefault("redis.dial_timeout", d.Redis.DialTimeout)
	v.SetDefault("redis.read_timeout", d.Redis.ReadTimeout)
	v.SetDefault("redis.write_timeout", d.Redis.WriteTimeout)
	v.SetDefault("redis.key_prefix", d.Redis.KeyPrefix)
	v.SetDefault("redis.history_ttl", d.Redis.HistoryTTL)
	v.SetDefault("redis.history_limit", d.Redis.HistoryLimit)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", d.Kafka.Brokers)
	v.SetDefault("kafka.scheme_topic", d.Kafka.SchemeTopic)
	v.SetDefault("kafka.notification_topic", d.Kafka.NotificationTopic)
	v.SetDefault("kafka.acks", d.Kafka.Acks)
	v.SetDefault("kafka.compression", "")
	v.SetDefault("kafka.batch_timeout", d.Kafka.BatchTimeout)
	v.SetDefault("kafka.write_timeout", d.Kafka.WriteTimeout)
	v.SetDefault("kafka.max_retries", d.Kafka.MaxRetries)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.path", d.Metrics.Path)

	v.SetDefault("ratelimit.enabled", d.RateLimit.Enabled)
	v.SetDefault("ratelimit.requests_per_minute", d.RateLimit.RequestsPerMinute)
	v.SetDefault("ratelimit.burst", d.RateLimit.Burst)

	v.SetDefault("catalog.seed_samples", d.Catalog.SeedSamples)
	v.SetDefault("catalog.seed_file", "")
}

//Personal.AI order the ending
