package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScholarAI/internal/domain/conversation"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/intelligence/llm"
	"github.com/turtacn/ScholarAI/internal/testutil"
	apperrors "github.com/turtacn/ScholarAI/pkg/errors"
)

type fakeBackend struct {
	mu       sync.Mutex
	calls    int
	requests []llm.CompletionRequest
	respond  func(ctx context.Context, call int) (string, error)
}

func (f *fakeBackend) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.respond(ctx, call)
}

func (f *fakeBackend) Provider() llm.Provider { return "fake" }
func (f *fakeBackend) Close() error           { return nil }

type staticCatalog struct{ schemes []scheme.Scheme }

func (c staticCatalog) List(context.Context, scheme.Criteria) ([]scheme.Scheme, error) {
	return c.schemes, nil
}

func newTestAssistant(b llm.Backend, retries int) (Service, *conversation.MemoryStore) {
	store := conversation.NewMemoryStore(50)
	svc := NewService(b, staticCatalog{scheme.SampleSchemes()}, store, Config{
		Model:        "gpt-4o",
		Timeout:      50 * time.Millisecond,
		MaxRetries:   retries,
		RetryBackoff: time.Millisecond,
	}, testutil.NewMockLogger())
	return svc, store
}

func TestAsk_BackendReply(t *testing.T) {
	b := &fakeBackend{respond: func(context.Context, int) (string, error) { return "Here are your options.", nil }}
	svc, store := newTestAssistant(b, 1)
	ctx := context.Background()

	reply, err := svc.Ask(ctx, "u1", "  Which scholarships suit me?  ")
	require.NoError(t, err)
	assert.Equal(t, SourceBackend, reply.Source)
	assert.Equal(t, conversation.RoleAssistant, reply.Message.Role)
	assert.Equal(t, "Here are your options.", reply.Message.Content)

	require.Len(t, b.requests, 1)
	turns := b.requests[0].Messages
	assert.Equal(t, "gpt-4o", b.requests[0].Model)
	require.Len(t, turns, 3)
	assert.Equal(t, llm.RoleSystem, turns[0].Role)
	assert.Contains(t, turns[0].Content, "Prime Minister's Research Fellowship (PMRF) - Deadline: April 15, 2025")
	assert.Equal(t, llm.RoleAssistant, turns[1].Role)
	assert.Equal(t, conversation.WelcomeText, turns[1].Content)
	assert.Equal(t, llm.Turn{Role: llm.RoleUser, Content: "Which scholarships suit me?"}, turns[2])

	stored, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, conversation.RoleUser, stored[0].Role)
	assert.Equal(t, reply.Message.ID, stored[1].ID)
}

func TestAsk_ReplaysHistory(t *testing.T) {
	b := &fakeBackend{respond: func(_ context.Context, call int) (string, error) {
		if call == 1 {
			return "first answer", nil
		}
		return "second answer", nil
	}}
	svc, _ := newTestAssistant(b, 0)
	ctx := context.Background()

	_, err := svc.Ask(ctx, "u1", "first")
	require.NoError(t, err)
	_, err = svc.Ask(ctx, "u1", "second")
	require.NoError(t, err)

	turns := b.requests[1].Messages
	require.Len(t, turns, 5)
	assert.Equal(t, "first", turns[2].Content)
	assert.Equal(t, "first answer", turns[3].Content)
	assert.Equal(t, "second", turns[4].Content)
}

func TestAsk_RetriesThenSucceeds(t *testing.T) {
	b := &fakeBackend{respond: func(_ context.Context, call int) (string, error) {
		if call == 1 {
			return "", errors.New("connection reset")
		}
		return "recovered", nil
	}}
	svc, _ := newTestAssistant(b, 1)

	reply, err := svc.Ask(context.Background(), "u1", "hello there")
	require.NoError(t, err)
	assert.Equal(t, SourceBackend, reply.Source)
	assert.Equal(t, "recovered", reply.Message.Content)
	assert.Equal(t, 2, b.calls)
}

func TestAsk_FallbackAfterRetries(t *testing.T) {
	b := &fakeBackend{respond: func(context.Context, int) (string, error) { return "", errors.New("502") }}
	svc, _ := newTestAssistant(b, 2)

	reply, err := svc.Ask(context.Background(), "u1", "Any deadline soon?")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, reply.Source)
	assert.Contains(t, reply.Message.Content, "I'm tracking several important deadlines")
	assert.Equal(t, 3, b.calls)
}

func TestAsk_FallbackOnTimeout(t *testing.T) {
	b := &fakeBackend{respond: func(ctx context.Context, _ int) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	svc, _ := newTestAssistant(b, 0)

	start := time.Now()
	reply, err := svc.Ask(context.Background(), "u1", "thanks!")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, SourceFallback, reply.Source)
	assert.Contains(t, reply.Message.Content, "You're welcome!")
}

func TestAsk_FallbackOnEmptyContent(t *testing.T) {
	b := &fakeBackend{respond: func(context.Context, int) (string, error) { return "   ", nil }}
	svc, _ := newTestAssistant(b, 0)

	reply, err := svc.Ask(context.Background(), "u1", "tell me about quantum physics")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, reply.Source)
	assert.Contains(t, reply.Message.Content, "tell me about quantum physics")
}

func TestAsk_DisabledBackendIsNotRetried(t *testing.T) {
	svc, _ := newTestAssistant(llm.Disabled{}, 3)
	reply, err := svc.Ask(context.Background(), "u1", "hi")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, reply.Source)
}

func TestAsk_InvalidInput(t *testing.T) {
	svc, _ := newTestAssistant(llm.Disabled{}, 0)
	_, err := svc.Ask(context.Background(), "u1", "   ")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAssistantInputInvalid))

	long := make([]rune, MaxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Ask(context.Background(), "u1", string(long))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAssistantInputInvalid))
}

func TestHistoryAndClear(t *testing.T) {
	svc, _ := newTestAssistant(llm.Disabled{}, 0)
	ctx := context.Background()

	h, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, "welcome", h[0].ID)

	_, err = svc.Ask(ctx, "u1", "hello")
	require.NoError(t, err)
	h, err = svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, h, 3)

	require.NoError(t, svc.ClearHistory(ctx, "u1"))
	h, err = svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, h, 1)
}

//Personal.AI order the ending
