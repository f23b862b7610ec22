package redis

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/ScholarAI/internal/domain/conversation"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

func newMiniStore(t *testing.T, opts ...HistoryOption) (*HistoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(&RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewHistoryStore(client, logging.NewNopLogger(), opts...), mr
}

func TestHistoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniStore(t, WithKeyPrefix("scholarai:"), WithHistoryTTL(time.Hour))
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, "u1",
		conversation.NewMessage(conversation.RoleUser, "When is the PMRF deadline?", at),
		conversation.NewMessage(conversation.RoleAssistant, "April 15, 2025", at),
	))

	got, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "When is the PMRF deadline?", got[0].Content)
	assert.Equal(t, conversation.RoleAssistant, got[1].Role)
	assert.True(t, got[0].Timestamp.Equal(at))

	assert.True(t, mr.Exists("scholarai:chat:history:u1"))
	assert.Equal(t, time.Hour, mr.TTL("scholarai:chat:history:u1"))
}

func TestHistoryStore_TrimsToLimit(t *testing.T) {
	ctx := context.Background()
	store, _ := newMiniStore(t, WithHistoryLimit(3))

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, "u",
			conversation.NewMessage(conversation.RoleUser, fmt.Sprint("q", i), time.Now()),
			conversation.NewMessage(conversation.RoleAssistant, fmt.Sprint("a", i), time.Now())))
	}
	got, err := store.Load(ctx, "u")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, conversation.RoleUser, got[0].Role)
	assert.Equal(t, "q2", got[0].Content)
	assert.Equal(t, "a2", got[1].Content)
}

func TestHistoryStore_ClearAndUnknownUser(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniStore(t)

	got, err := store.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Append(ctx, "u", conversation.NewMessage(conversation.RoleUser, "hi", time.Now())))
	require.NoError(t, store.Clear(ctx, "u"))
	assert.False(t, mr.Exists("chat:history:u"))
}

func TestHistoryStore_SkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniStore(t)

	_, err := mr.RPush("chat:history:u", "not-json", `{"id":"1","role":"user","content":"ok"}`)
	require.NoError(t, err)

	got, err := store.Load(ctx, "u")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Content)
}

// ─────────────────────────────────────────────────────────────────────────────
// Failure paths against redismock
// ─────────────────────────────────────────────────────────────────────────────

type HistoryStoreMockSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	store *HistoryStore
}

func (s *HistoryStoreMockSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	client := &Client{rdb: db, config: &RedisConfig{}, logger: logging.NewNopLogger()}
	s.store = NewHistoryStore(client, logging.NewNopLogger())
}

func (s *HistoryStoreMockSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *HistoryStoreMockSuite) TestLoad_RedisError() {
	s.mock.ExpectLRange("chat:history:u1", 0, -1).SetErr(stderrors.New("connection reset"))

	_, err := s.store.Load(context.Background(), "u1")
	assert.True(s.T(), errors.IsCode(err, errors.ErrCodeHistoryUnavailable))
}

func (s *HistoryStoreMockSuite) TestClear_RedisError() {
	s.mock.ExpectDel("chat:history:u1").SetErr(stderrors.New("READONLY"))

	err := s.store.Clear(context.Background(), "u1")
	assert.True(s.T(), errors.IsCode(err, errors.ErrCodeHistoryUnavailable))
}

func (s *HistoryStoreMockSuite) TestClear_Success() {
	s.mock.ExpectDel("chat:history:u1").SetVal(1)
	assert.NoError(s.T(), s.store.Clear(context.Background(), "u1"))
}

func (s *HistoryStoreMockSuite) TestAppend_NothingToWrite() {
	assert.NoError(s.T(), s.store.Append(context.Background(), "u1"))
}

func TestHistoryStoreMockSuite(t *testing.T) {
	suite.Run(t, new(HistoryStoreMockSuite))
}

//Personal.AI order the ending
