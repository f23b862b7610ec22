package scheme

import "time"

// EventType names a catalog mutation.
type EventType string

const (
	EventAdded   EventType = "scheme.added"
	EventUpdated EventType = "scheme.updated"
	EventDeleted EventType = "scheme.deleted"
)

// Event is published after a successful catalog mutation.
type Event struct {
	Type       EventType `json:"type"`
	SchemeID   string    `json:"scheme_id"`
	Title      string    `json:"title,omitempty"`
	Deadline   time.Time `json:"deadline,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent builds an Event for s.
func NewEvent(t EventType, s Scheme, at time.Time) Event {
	return Event{
		Type:       t,
		SchemeID:   s.ID,
		Title:      s.Title,
		Deadline:   s.Deadline,
		OccurredAt: at,
	}
}

//Personal.AI order the ending
