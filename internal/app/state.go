// Package app assembles ScholarAI's application state: the in-memory
// collections, the infrastructure adapters selected by configuration, and
// the services built over them.  One State is constructed at startup and
// passed explicitly to the HTTP router and the CLI.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/ScholarAI/internal/application/account"
	"github.com/turtacn/ScholarAI/internal/application/assistant"
	"github.com/turtacn/ScholarAI/internal/application/catalog"
	"github.com/turtacn/ScholarAI/internal/application/events"
	"github.com/turtacn/ScholarAI/internal/application/notifier"
	"github.com/turtacn/ScholarAI/internal/config"
	"github.com/turtacn/ScholarAI/internal/domain/conversation"
	"github.com/turtacn/ScholarAI/internal/domain/notification"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/domain/user"
	"github.com/turtacn/ScholarAI/internal/infrastructure/auth/token"
	"github.com/turtacn/ScholarAI/internal/infrastructure/database/redis"
	"github.com/turtacn/ScholarAI/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ScholarAI/internal/intelligence/llm"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Deps overrides adapters that New would otherwise build from config.
// Zero fields are built from configuration.
type Deps struct {
	Logger    logging.Logger
	Backend   llm.Backend
	Publisher events.Publisher
	History   conversation.HistoryStore
	Clock     func() time.Time
}

// State owns every collection and service of a running instance.
type State struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics
	Tokens    *token.Issuer

	Schemes       scheme.Repository
	Notifications *notification.Store
	Users         user.Directory
	History       conversation.HistoryStore

	Catalog   catalog.Service
	Notifier  notifier.Service
	Assistant assistant.Service
	Accounts  account.Service

	scheduler *notifier.Scheduler
	redis     *redis.Client
	backend   llm.Backend
	publisher events.Publisher
	closeOnce sync.Once
}

// New builds the State described by cfg.
func New(ctx context.Context, cfg *config.Config, deps Deps) (*State, error) {
	log := deps.Logger
	if log == nil {
		log = logging.Default()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	s := &State{Config: cfg, Logger: log}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, log.Named("metrics"))
		if err != nil {
			return nil, err
		}
		s.Collector = collector
		s.Metrics = prometheus.NewAppMetrics(collector)
	}

	issuer, err := token.NewIssuer(token.Config{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL,
	}, token.WithClock(clock))
	if err != nil {
		return nil, err
	}
	s.Tokens = issuer

	seed, err := catalogSeed(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	s.Schemes = scheme.NewMemoryRepository(seed)
	s.Notifications = notification.NewStore()

	users := user.NewMemoryDirectory()
	if cfg.Auth.SeedDemoUsers {
		if err := user.SeedDemoUsers(ctx, users, clock()); err != nil {
			return nil, err
		}
	}
	s.Users = users

	if err := s.buildHistory(cfg, deps, log); err != nil {
		return nil, err
	}
	if err := s.buildPublisher(cfg, deps, log); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.buildBackend(ctx, cfg, deps, log); err != nil {
		s.Close()
		return nil, err
	}

	s.Notifier = notifier.NewService(s.Schemes, s.Notifications,
		notifier.Config{DefaultOwnerID: cfg.Notifier.DefaultOwnerID},
		log.Named("notifier"),
		notifier.WithClock(clock), notifier.WithPublisher(s.publisher), notifier.WithMetrics(s.Metrics))
	s.Catalog = catalog.NewService(s.Schemes, s.Notifier, log.Named("catalog"),
		catalog.WithClock(clock), catalog.WithPublisher(s.publisher), catalog.WithMetrics(s.Metrics))
	s.Assistant = assistant.NewService(s.backend, s.Catalog, s.History, assistant.Config{
		Model:        cfg.Assistant.Model,
		Timeout:      cfg.Assistant.Timeout,
		MaxRetries:   cfg.Assistant.MaxRetries,
		RetryBackoff: cfg.Assistant.RetryBackoff,
	}, log.Named("assistant"), assistant.WithClock(clock), assistant.WithMetrics(s.Metrics))
	s.Accounts = account.NewService(s.Users, s.Tokens, log.Named("account"), s.Metrics)

	if cfg.Notifier.SeedNotifications {
		if err := s.Notifier.SeedReminders(ctx, clock()); err != nil {
			s.Close()
			return nil, err
		}
	}
	if cfg.Notifier.Enabled {
		sched, err := notifier.NewScheduler(s.Notifier, cfg.Notifier.Schedule, log.Named("scheduler"))
		if err != nil {
			s.Close()
			return nil, err
		}
		s.scheduler = sched
	}

	log.Info("application state ready",
		logging.Int("schemes", s.Schemes.Count()),
		logging.String("assistant_provider", string(s.backend.Provider())),
		logging.Bool("redis", s.redis != nil),
		logging.Bool("kafka", cfg.Kafka.Enabled))
	return s, nil
}

func catalogSeed(cfg config.CatalogConfig) ([]scheme.Scheme, error) {
	if cfg.SeedFile != "" {
		return scheme.LoadSeedFile(cfg.SeedFile)
	}
	if cfg.SeedSamples {
		return scheme.SampleSchemes(), nil
	}
	return nil, nil
}

func (s *State) buildHistory(cfg *config.Config, deps Deps, log logging.Logger) error {
	if deps.History != nil {
		s.History = deps.History
		return nil
	}
	if !cfg.Redis.Enabled {
		s.History = conversation.NewMemoryStore(cfg.Redis.HistoryLimit)
		return nil
	}
	client, err := redis.NewClient(&redis.RedisConfig{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}, log.Named("redis"))
	if err != nil {
		return err
	}
	s.redis = client
	s.History = redis.NewHistoryStore(client, log.Named("history"),
		redis.WithKeyPrefix(cfg.Redis.KeyPrefix),
		redis.WithHistoryTTL(cfg.Redis.HistoryTTL),
		redis.WithHistoryLimit(cfg.Redis.HistoryLimit))
	return nil
}

func (s *State) buildPublisher(cfg *config.Config, deps Deps, log logging.Logger) error {
	if deps.Publisher != nil {
		s.publisher = deps.Publisher
		return nil
	}
	if !cfg.Kafka.Enabled {
		s.publisher = events.Nop{}
		return nil
	}
	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:          cfg.Kafka.Brokers,
		Acks:             cfg.Kafka.Acks,
		MaxRetries:       cfg.Kafka.MaxRetries,
		BatchTimeout:     cfg.Kafka.BatchTimeout,
		WriteTimeout:     cfg.Kafka.WriteTimeout,
		CompressionCodec: cfg.Kafka.Compression,
	}, log.Named("kafka"))
	if err != nil {
		return err
	}
	s.publisher = kafka.NewEventPublisher(producer, cfg.Kafka.SchemeTopic, cfg.Kafka.NotificationTopic, log.Named("events"), s.Metrics)
	return nil
}

func (s *State) buildBackend(ctx context.Context, cfg *config.Config, deps Deps, log logging.Logger) error {
	if deps.Backend != nil {
		s.backend = deps.Backend
		return nil
	}
	b, err := llm.New(ctx, llm.Config{
		Provider: llm.Provider(cfg.Assistant.Provider),
		Endpoint: cfg.Assistant.Endpoint,
		APIKey:   cfg.Assistant.APIKey,
		Model:    cfg.Assistant.Model,
	}, log.Named("llm"))
	if err != nil {
		return err
	}
	s.backend = b
	return nil
}

// Start launches background work: the deadline scheduler, which scans once
// immediately.  Without a scheduler a single startup scan runs.
func (s *State) Start(ctx context.Context) error {
	if s.scheduler != nil {
		return s.scheduler.Start(ctx)
	}
	s.Notifier.Trigger(ctx, notifier.TriggerStartup)
	return nil
}

// Ready reports whether external dependencies are reachable.
func (s *State) Ready(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Ping(ctx); err != nil {
			return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "redis unavailable")
		}
	}
	return nil
}

// Close stops the scheduler and releases backends.  It is safe to call more
// than once.
func (s *State) Close() error {
	var firstErr error
	s.closeOnce.Do(func() {
		if s.scheduler != nil {
			s.scheduler.Stop()
		}
		record := func(err error) {
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if s.backend != nil {
			record(s.backend.Close())
		}
		if s.publisher != nil {
			record(s.publisher.Close())
		}
		if s.redis != nil {
			record(s.redis.Close())
		}
		if firstErr != nil {
			s.Logger.Warn("error while closing application state", logging.Err(firstErr))
		}
	})
	return firstErr
}

//Personal.AI order the ending
