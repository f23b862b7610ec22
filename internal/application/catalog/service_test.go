package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScholarAI/internal/application/notifier"
	"github.com/turtacn/ScholarAI/internal/domain/notification"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/testutil"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

var testNow = time.Date(2025, time.March, 20, 10, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []scheme.Event
}

func (p *recordingPublisher) PublishSchemeEvent(_ context.Context, evt scheme.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) PublishNotification(context.Context, notification.Notification) error {
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []scheme.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]scheme.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	svc   Service
	repo  *scheme.MemoryRepository
	store *notification.Store
	pub   *recordingPublisher
}

func newFixture() fixture {
	clock := func() time.Time { return testNow }
	repo := scheme.NewMemoryRepository(scheme.SampleSchemes())
	store := notification.NewStore()
	log := testutil.NewMockLogger()
	n := notifier.NewService(repo, store, notifier.Config{DefaultOwnerID: "1"}, log, notifier.WithClock(clock))
	pub := &recordingPublisher{}
	return fixture{
		svc:   NewService(repo, n, log, WithClock(clock), WithPublisher(pub)),
		repo:  repo,
		store: store,
		pub:   pub,
	}
}

func researchDraft(deadline string) scheme.Draft {
	return scheme.Draft{
		Title:       "Women in Research Grant",
		Description: "Grant for women pursuing doctoral research.",
		Eligibility: []string{"Enrolled in a PhD programme"},
		Deadline:    deadline,
		Link:        "https://example.org/wir",
		Documents:   []string{"Admission letter"},
		Type:        scheme.TypeGrant,
		Level:       scheme.LevelNational,
		Category:    []string{"General"},
	}
}

func TestList_FiltersAndPreservesOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	all, err := f.svc.List(ctx, scheme.Criteria{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	research, err := f.svc.List(ctx, scheme.Criteria{Text: "research"})
	require.NoError(t, err)
	require.Len(t, research, 1)
	assert.Equal(t, "2", research[0].ID)

	grants, err := f.svc.List(ctx, scheme.Criteria{Type: scheme.TypeGrant})
	require.NoError(t, err)
	assert.Empty(t, grants)
}

func TestGet_NotFound(t *testing.T) {
	_, err := newFixture().svc.Get(context.Background(), "404")
	assert.True(t, errors.IsCode(err, errors.ErrCodeSchemeNotFound))
}

func TestAdd_AnnouncesAndRescans(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Add(ctx, researchDraft("2025-04-05"))
	require.NoError(t, err)
	assert.Equal(t, "1742466600000", created.ID)
	assert.Equal(t, 4, f.repo.Count())
	assert.Equal(t, []scheme.EventType{scheme.EventAdded}, f.pub.types())

	var kinds []notification.Kind
	for _, n := range f.store.List() {
		if n.SchemeID == created.ID {
			kinds = append(kinds, n.Kind)
		}
	}
	assert.ElementsMatch(t, []notification.Kind{notification.KindSchemeAdded, notification.KindDeadlineReminder}, kinds)
}

func TestAdd_SameMillisecondGetsSuffix(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, err := f.svc.Add(ctx, researchDraft("2025-09-01"))
	require.NoError(t, err)
	b, err := f.svc.Add(ctx, researchDraft("2025-09-01"))
	require.NoError(t, err)
	assert.Equal(t, a.ID+"-1", b.ID)
}

func TestAdd_InvalidDraftWritesNothing(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Add(context.Background(), researchDraft("2024-01-01"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDeadlineInvalid))
	assert.Equal(t, 3, f.repo.Count())
	assert.Empty(t, f.pub.types())
	assert.Zero(t, f.store.Len())
}

func TestUpdate_Merges(t *testing.T) {
	f := newFixture()
	title := "NSP Scholarships"
	updated, applied, err := f.svc.Update(context.Background(), "1", scheme.Patch{Title: &title})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, []scheme.EventType{scheme.EventUpdated}, f.pub.types())

	got, err := f.svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
}

func TestUpdate_MissingIDDoesNotInsert(t *testing.T) {
	f := newFixture()
	title := "Ghost"
	_, applied, err := f.svc.Update(context.Background(), "999", scheme.Patch{Title: &title})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 3, f.repo.Count())
	assert.Empty(t, f.pub.types())
}

func TestUpdate_InvalidPatch(t *testing.T) {
	f := newFixture()
	bad := "x"
	_, applied, err := f.svc.Update(context.Background(), "1", scheme.Patch{Title: &bad})
	require.Error(t, err)
	assert.False(t, applied)
}

func TestUpdate_DeadlineIntoWindowCreatesReminder(t *testing.T) {
	f := newFixture()
	soon := "2025-04-01"
	_, applied, err := f.svc.Update(context.Background(), "3", scheme.Patch{Deadline: &soon})
	require.NoError(t, err)
	require.True(t, applied)

	found := false
	for _, n := range f.store.List() {
		if n.SchemeID == "3" && n.Kind == notification.KindDeadlineReminder {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	removed, err := f.svc.Delete(ctx, "2")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 2, f.repo.Count())

	removed, err = f.svc.Delete(ctx, "2")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 2, f.repo.Count())
	assert.Equal(t, []scheme.EventType{scheme.EventDeleted}, f.pub.types())
}

//Personal.AI order the ending
