package conversation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AppendLoadClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	now := time.Now()

	require.NoError(t, s.Append(ctx, "u1", NewMessage(RoleUser, "hi", now), NewMessage(RoleAssistant, "hello", now)))
	got, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, RoleUser, got[0].Role)

	other, _ := s.Load(ctx, "u2")
	assert.Empty(t, other)

	require.NoError(t, s.Clear(ctx, "u1"))
	got, _ = s.Load(ctx, "u1")
	assert.Empty(t, got)
}

func TestMemoryStore_LimitKeepsNewest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(4)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Append(ctx, "u",
			NewMessage(RoleUser, fmt.Sprint("q", i), time.Now()),
			NewMessage(RoleAssistant, fmt.Sprint("a", i), time.Now())))
	}
	got, _ := s.Load(ctx, "u")
	require.Len(t, got, 4)
	assert.Equal(t, "q1", got[0].Content)
	assert.Equal(t, "a2", got[3].Content)
}

func TestMemoryStore_OddLimitKeepsWholeTurns(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Append(ctx, "u",
			NewMessage(RoleUser, fmt.Sprint("q", i), time.Now()),
			NewMessage(RoleAssistant, fmt.Sprint("a", i), time.Now())))
	}
	got, _ := s.Load(ctx, "u")
	require.Len(t, got, 2)
	assert.Equal(t, RoleUser, got[0].Role)
	assert.Equal(t, "q2", got[0].Content)
}

func TestPairLimit(t *testing.T) {
	tests := map[int]int{-1: -1, 0: 0, 1: 2, 2: 2, 3: 2, 7: 6, 50: 50}
	for in, want := range tests {
		assert.Equal(t, want, PairLimit(in), "limit %d", in)
	}
}

func TestWelcome(t *testing.T) {
	w := Welcome(time.Now())
	assert.Equal(t, RoleAssistant, w.Role)
	assert.Equal(t, WelcomeText, w.Content)
}

//Personal.AI order the ending
