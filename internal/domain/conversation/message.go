// Package conversation models assistant chat turns and the per-user
// history that the assistant replays to the completion backend.
package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role names the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// WelcomeText opens every conversation.
const WelcomeText = "Hello! I'm your Scholarship Assistant. I can help you find and apply for scholarships, grants, and financial aid programs."

// Message is one chat turn.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage stamps content with a fresh id.
func NewMessage(role Role, content string, at time.Time) Message {
	return Message{ID: uuid.NewString(), Role: role, Content: content, Timestamp: at}
}

// Welcome returns the greeting that starts a history.
func Welcome(at time.Time) Message {
	return Message{ID: "welcome", Role: RoleAssistant, Content: WelcomeText, Timestamp: at}
}

// HistoryStore persists per-user conversation history.
type HistoryStore interface {
	// Load returns the user's messages oldest first; an unknown user has none.
	Load(ctx context.Context, userID string) ([]Message, error)
	// Append adds msgs to the end of the user's history.
	Append(ctx context.Context, userID string, msgs ...Message) error
	// Clear drops the user's history.
	Clear(ctx context.Context, userID string) error
}

// PairLimit rounds a history limit to whole user/assistant turns so a trimmed
// history never opens with an orphan reply.  Odd limits round down, except
// 1 which becomes 2; non-positive limits mean unbounded and pass through.
func PairLimit(limit int) int {
	switch {
	case limit <= 0:
		return limit
	case limit == 1:
		return 2
	default:
		return limit - limit%2
	}
}

// MemoryStore is a HistoryStore kept in process memory.  When limit is
// positive only the newest PairLimit(limit) messages are retained.
type MemoryStore struct {
	mu      sync.RWMutex
	limit   int
	history map[string][]Message
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{limit: PairLimit(limit), history: make(map[string][]Message)}
}

func (s *MemoryStore) Load(_ context.Context, userID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.history[userID]...), nil
}

func (s *MemoryStore) Append(_ context.Context, userID string, msgs ...Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(append([]Message(nil), s.history[userID]...), msgs...)
	if s.limit > 0 && len(next) > s.limit {
		next = next[len(next)-s.limit:]
	}
	s.history[userID] = next
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.history, userID)
	return nil
}

//Personal.AI order the ending
