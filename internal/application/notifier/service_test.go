package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScholarAI/internal/domain/notification"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/testutil"
)

var testNow = time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu    sync.Mutex
	notes []notification.Notification
	err   error
}

func (p *recordingPublisher) PublishSchemeEvent(context.Context, scheme.Event) error { return nil }

func (p *recordingPublisher) PublishNotification(_ context.Context, n notification.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = append(p.notes, n)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func schemeDue(id string, days int) scheme.Scheme {
	return scheme.Scheme{
		ID:       id,
		Title:    "Scheme " + id,
		Deadline: testNow.AddDate(0, 0, days),
		Type:     scheme.TypeScholarship,
		Level:    scheme.LevelNational,
	}
}

func newTestService(schemes []scheme.Scheme, opts ...Option) (Service, *notification.Store) {
	store := notification.NewStore()
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	svc := NewService(scheme.NewMemoryRepository(schemes), store, Config{DefaultOwnerID: "1"}, testutil.NewMockLogger(), opts...)
	return svc, store
}

func TestScan_WindowBoundaries(t *testing.T) {
	svc, _ := newTestService([]scheme.Scheme{
		schemeDue("today", 0),
		schemeDue("edge", 30),
		schemeDue("far", 31),
		schemeDue("past", -1),
	})

	res, err := svc.Scan(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Scanned)
	require.Len(t, res.Created, 2)
	assert.Equal(t, "today", res.Created[0].SchemeID)
	assert.Equal(t, "edge", res.Created[1].SchemeID)
	assert.Equal(t, 2, res.Unread)

	n := res.Created[0]
	assert.Equal(t, "1", n.UserID)
	assert.Equal(t, notification.KindDeadlineReminder, n.Kind)
	assert.False(t, n.Read)
	assert.Equal(t, testNow, n.CreatedAt)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "Scheme today deadline is approaching (March 20, 2025)!", n.Message)
}

func TestScan_Idempotent(t *testing.T) {
	svc, store := newTestService([]scheme.Scheme{schemeDue("a", 5), schemeDue("b", 10)})
	ctx := context.Background()

	first, err := svc.Scan(ctx, testNow)
	require.NoError(t, err)
	assert.Len(t, first.Created, 2)

	second, err := svc.Scan(ctx, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Equal(t, 2, store.Len())
}

func TestScan_PreservesExistingEntries(t *testing.T) {
	svc, store := newTestService([]scheme.Scheme{schemeDue("a", 5)})
	existing := notification.NewSchemeAdded("1", schemeDue("z", 90), testNow)
	require.True(t, store.AppendUnique(existing))

	_, err := svc.Scan(context.Background(), testNow)
	require.NoError(t, err)

	list := svc.List(context.Background())
	require.Len(t, list, 2)
	assert.Equal(t, existing.ID, list[0].ID)
	assert.Equal(t, "a", list[1].SchemeID)
}

func TestScan_ReadReminderIsNotRecreated(t *testing.T) {
	svc, _ := newTestService([]scheme.Scheme{schemeDue("a", 5)})
	ctx := context.Background()

	res, err := svc.Scan(ctx, testNow)
	require.NoError(t, err)
	require.True(t, svc.MarkAsRead(ctx, res.Created[0].ID))

	res, err = svc.Scan(ctx, testNow)
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Zero(t, svc.UnreadCount(ctx))
}

func TestMarkAsRead(t *testing.T) {
	svc, _ := newTestService([]scheme.Scheme{schemeDue("a", 1), schemeDue("b", 2)})
	ctx := context.Background()
	res, err := svc.Scan(ctx, testNow)
	require.NoError(t, err)
	require.Equal(t, 2, svc.UnreadCount(ctx))

	assert.True(t, svc.MarkAsRead(ctx, res.Created[0].ID))
	assert.Equal(t, 1, svc.UnreadCount(ctx))

	assert.False(t, svc.MarkAsRead(ctx, res.Created[0].ID))
	assert.Equal(t, 1, svc.UnreadCount(ctx))

	assert.False(t, svc.MarkAsRead(ctx, "missing"))
	assert.Equal(t, 1, svc.UnreadCount(ctx))
}

func TestAnnounce_PublishesAndDedups(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _ := newTestService(nil, WithPublisher(pub))
	ctx := context.Background()

	s := schemeDue("9", 60)
	assert.True(t, svc.Announce(ctx, s))
	assert.False(t, svc.Announce(ctx, s))

	list := svc.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "New scheme added: Scheme 9", list[0].Message)
	assert.Len(t, pub.notes, 1)
}

func TestTrigger_PublishFailureIsAbsorbed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("kafka down")}
	log := testutil.NewMockLogger()
	store := notification.NewStore()
	svc := NewService(scheme.NewMemoryRepository([]scheme.Scheme{schemeDue("a", 3)}), store, Config{}, log,
		WithClock(func() time.Time { return testNow }), WithPublisher(pub))

	svc.Trigger(context.Background(), TriggerChange)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "1", store.List()[0].UserID)
	assert.True(t, log.HasMessage("warn", "notification event dropped"))
}

func TestSeedReminders(t *testing.T) {
	svc, store := newTestService(scheme.SampleSchemes())
	require.NoError(t, svc.SeedReminders(context.Background(), testNow))

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].SchemeID)
	assert.Equal(t, "2", list[1].SchemeID)

	res, err := svc.Scan(context.Background(), testNow)
	require.NoError(t, err)
	for _, n := range res.Created {
		assert.NotEqual(t, "2", n.SchemeID)
	}
}

//Personal.AI order the ending
