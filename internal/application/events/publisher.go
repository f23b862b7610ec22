// Package events declares the outbound event port used by the catalog and
// notifier services.
package events

import (
	"context"

	"github.com/turtacn/ScholarAI/internal/domain/notification"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
)

// Publisher delivers domain events to downstream consumers.  Services log
// and drop its errors; a failed publish never fails the mutation.
type Publisher interface {
	PublishSchemeEvent(ctx context.Context, evt scheme.Event) error
	PublishNotification(ctx context.Context, n notification.Notification) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishSchemeEvent(context.Context, scheme.Event) error { return nil }

func (Nop) PublishNotification(context.Context, notification.Notification) error { return nil }

func (Nop) Close() error { return nil }

//Personal.AI order the ending
