// Package notification models user-facing notifications and the ordered,
// de-duplicated store that holds them.
package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ScholarAI/internal/domain/scheme"
)

// Kind classifies a notification.
type Kind string

const (
	KindDeadlineReminder Kind = "deadline_reminder"
	KindSchemeAdded      Kind = "scheme_added"
)

// DedupKey identifies a notification slot: at most one notification exists
// per key.
type DedupKey struct {
	SchemeID string
	Kind     Kind
}

func (k DedupKey) String() string {
	return k.SchemeID + "/" + string(k.Kind)
}

// Notification is a message shown in a user's notification list.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SchemeID  string    `json:"scheme_id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the notification's de-duplication key.
func (n Notification) Key() DedupKey {
	return DedupKey{SchemeID: n.SchemeID, Kind: n.Kind}
}

// NewDeadlineReminder builds the reminder for s owned by userID.
func NewDeadlineReminder(userID string, s scheme.Scheme, now time.Time) Notification {
	return Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		SchemeID:  s.ID,
		Kind:      KindDeadlineReminder,
		Message:   fmt.Sprintf("%s deadline is approaching (%s)!", s.Title, s.DeadlineLabel()),
		CreatedAt: now,
	}
}

// NewSchemeAdded builds the announcement for a newly added scheme.
func NewSchemeAdded(userID string, s scheme.Scheme, now time.Time) Notification {
	return Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		SchemeID:  s.ID,
		Kind:      KindSchemeAdded,
		Message:   "New scheme added: " + s.Title,
		CreatedAt: now,
	}
}

//Personal.AI order the ending
