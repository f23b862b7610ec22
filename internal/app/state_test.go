package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/ScholarAI/internal/application/assistant"
	"github.com/turtacn/ScholarAI/internal/config"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/domain/user"
	"github.com/turtacn/ScholarAI/internal/infrastructure/database/redis"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/intelligence/llm"
)

var testNow = time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Notifier.Enabled = false
	return cfg
}

func newTestState(t *testing.T, cfg *config.Config) *State {
	t.Helper()
	user.HashCost = bcrypt.MinCost
	s, err := New(context.Background(), cfg, Deps{
		Logger:  logging.NewNopLogger(),
		Backend: llm.Disabled{},
		Clock:   func() time.Time { return testNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_SeedsCollections(t *testing.T) {
	s := newTestState(t, testConfig())
	ctx := context.Background()

	list, err := s.Catalog.List(ctx, scheme.Criteria{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, 2, s.Notifications.Len())
	assert.Equal(t, 2, s.Notifier.UnreadCount(ctx))

	u, err := s.Users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
	assert.NotNil(t, s.Metrics)
	assert.NotNil(t, s.Collector)
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	s := newTestState(t, cfg)
	assert.Nil(t, s.Metrics)
	assert.Nil(t, s.Collector)
}

func TestStart_StartupScanKeepsSeedReminders(t *testing.T) {
	s := newTestState(t, testConfig())
	require.NoError(t, s.Start(context.Background()))
	// Scheme 2 is due in 26 days but already has a seeded reminder.
	assert.Equal(t, 2, s.Notifications.Len())
}

func TestStart_WithScheduler(t *testing.T) {
	cfg := testConfig()
	cfg.Notifier.Enabled = true
	cfg.Notifier.SeedNotifications = false
	s := newTestState(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))
	assert.Equal(t, 1, s.Notifications.Len())
	require.NoError(t, s.Close())
}

func TestNew_InvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Notifier.Enabled = true
	cfg.Notifier.Schedule = "not a schedule"
	_, err := New(context.Background(), cfg, Deps{Logger: logging.NewNopLogger(), Backend: llm.Disabled{}})
	require.Error(t, err)
}

func TestNew_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`schemes:
  - id: "s1"
    title: "State Merit Grant"
    description: "Support for high-scoring state board students."
    eligibility: ["Scored above 90 percent in class XII"]
    deadline: "2025-04-01"
    link: "https://example.org/merit"
    documents: ["Marksheet"]
    type: grant
    level: state
    category: ["General"]
`), 0o600))

	cfg := testConfig()
	cfg.Catalog.SeedFile = path
	cfg.Notifier.SeedNotifications = false
	s := newTestState(t, cfg)

	got, err := s.Catalog.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "State Merit Grant", got.Title)
	assert.Equal(t, 1, s.Schemes.Count())
}

func TestNew_MissingSeedFile(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog.SeedFile = filepath.Join(t.TempDir(), "absent.yaml")
	_, err := New(context.Background(), cfg, Deps{Logger: logging.NewNopLogger(), Backend: llm.Disabled{}})
	require.Error(t, err)
}

func TestNew_RedisHistory(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = mr.Addr()
	s := newTestState(t, cfg)

	_, ok := s.History.(*redis.HistoryStore)
	require.True(t, ok)
	require.NoError(t, s.Ready(context.Background()))

	reply, err := s.Assistant.Ask(context.Background(), "student1", "What documents do I need?")
	require.NoError(t, err)
	assert.Equal(t, assistant.SourceFallback, reply.Source)

	history, err := s.Assistant.History(context.Background(), "student1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(history), 2)

	mr.Close()
	assert.Error(t, s.Ready(context.Background()))
}

func TestClose_Idempotent(t *testing.T) {
	s := newTestState(t, testConfig())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

//Personal.AI order the ending
