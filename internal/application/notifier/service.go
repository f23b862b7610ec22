// internal/application/notifier/service.go
//
// Deadline reminder service.  Scans the scheme catalog against the clock and
// appends one reminder per scheme whose deadline falls inside the reminder
// window, then exposes the resulting notification list and unread badge.
//
// Dependencies:
//   Depends on: domain/scheme, domain/notification, application/events
//   Depended by: application/catalog, interfaces/http, interfaces/cli

package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/ScholarAI/internal/application/events"
	"github.com/turtacn/ScholarAI/internal/domain/notification"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Scan triggers, used as a metrics label.
const (
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
	TriggerChange   = "change"
	TriggerManual   = "manual"
)

// ScanResult summarises one pass over the catalog.
type ScanResult struct {
	ScannedAt time.Time                   `json:"scanned_at"`
	Scanned   int                         `json:"scanned"`
	Created   []notification.Notification `json:"created"`
	Unread    int                         `json:"unread"`
}

// Service manages deadline reminders and the notification list.
type Service interface {
	// Scan appends a reminder for every scheme due in 0..30 days that has
	// none yet.  It never removes or rewrites existing entries.
	Scan(ctx context.Context, now time.Time) (ScanResult, error)
	// Trigger rescans with the service clock after a catalog change.
	Trigger(ctx context.Context, reason string)
	// Announce records a scheme_added notification for s.
	Announce(ctx context.Context, s scheme.Scheme) bool
	List(ctx context.Context) []notification.Notification
	UnreadCount(ctx context.Context) int
	// MarkAsRead flips Read on the notification with id.  Unknown ids are
	// ignored.
	MarkAsRead(ctx context.Context, id string) bool
	// SeedReminders adds the demo reminders for the first two catalog
	// schemes regardless of the window.
	SeedReminders(ctx context.Context, now time.Time) error
}

// Config holds notifier parameters.
type Config struct {
	DefaultOwnerID string
}

type serviceImpl struct {
	schemes   scheme.Repository
	store     *notification.Store
	publisher events.Publisher
	owner     string
	clock     func() time.Time
	logger    logging.Logger
	metrics   *prometheus.AppMetrics
	scanMu    sync.Mutex
}

// Option configures the service.
type Option func(*serviceImpl)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) { s.clock = now }
}

// WithPublisher sets the event publisher for created notifications.
func WithPublisher(p events.Publisher) Option {
	return func(s *serviceImpl) { s.publisher = p }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

// NewService builds the notifier over the scheme repository and store.
func NewService(schemes scheme.Repository, store *notification.Store, cfg Config, logger logging.Logger, opts ...Option) Service {
	owner := cfg.DefaultOwnerID
	if owner == "" {
		owner = "1"
	}
	s := &serviceImpl{
		schemes:   schemes,
		store:     store,
		publisher: events.Nop{},
		owner:     owner,
		clock:     time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) Scan(ctx context.Context, now time.Time) (ScanResult, error) {
	return s.scan(ctx, now, TriggerManual)
}

func (s *serviceImpl) scan(ctx context.Context, now time.Time, trigger string) (ScanResult, error) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	start := time.Now()
	list, err := s.schemes.List(ctx)
	if err != nil {
		return ScanResult{}, errors.Wrap(err, errors.ErrCodeScanFailed, "failed to list schemes")
	}

	result := ScanResult{ScannedAt: now, Scanned: len(list), Created: []notification.Notification{}}
	for _, sc := range list {
		if !scheme.InReminderWindow(sc.Deadline, now) {
			continue
		}
		key := notification.DedupKey{SchemeID: sc.ID, Kind: notification.KindDeadlineReminder}
		if s.store.Has(key) {
			continue
		}
		n := notification.NewDeadlineReminder(s.owner, sc, now)
		if s.store.AppendUnique(n) {
			result.Created = append(result.Created, n)
			s.emit(ctx, n)
		}
	}
	result.Unread = s.store.UnreadCount()

	prometheus.RecordScan(s.metrics, trigger, time.Since(start), len(result.Created))
	prometheus.RecordUnread(s.metrics, result.Unread)
	if len(result.Created) > 0 {
		s.logger.Info("deadline reminders created",
			logging.String("trigger", trigger),
			logging.Int("created", len(result.Created)),
			logging.Int("unread", result.Unread))
	} else {
		s.logger.Debug("deadline scan completed", logging.String("trigger", trigger), logging.Int("scanned", result.Scanned))
	}
	return result, nil
}

func (s *serviceImpl) Trigger(ctx context.Context, reason string) {
	if _, err := s.scan(ctx, s.clock(), reason); err != nil {
		s.logger.Error("deadline scan failed", logging.String("trigger", reason), logging.Err(err))
		prometheus.RecordError(s.metrics, "notifier", string(errors.GetCode(err)))
	}
}

func (s *serviceImpl) Announce(ctx context.Context, sc scheme.Scheme) bool {
	n := notification.NewSchemeAdded(s.owner, sc, s.clock())
	if !s.store.AppendUnique(n) {
		return false
	}
	s.emit(ctx, n)
	prometheus.RecordUnread(s.metrics, s.store.UnreadCount())
	return true
}

func (s *serviceImpl) emit(ctx context.Context, n notification.Notification) {
	prometheus.RecordNotificationCreated(s.metrics, string(n.Kind))
	if err := s.publisher.PublishNotification(ctx, n); err != nil {
		s.logger.Warn("notification event dropped", logging.String("notification_id", n.ID), logging.Err(err))
	}
}

func (s *serviceImpl) List(_ context.Context) []notification.Notification {
	return s.store.List()
}

func (s *serviceImpl) UnreadCount(_ context.Context) int {
	return s.store.UnreadCount()
}

func (s *serviceImpl) MarkAsRead(_ context.Context, id string) bool {
	changed := s.store.MarkAsRead(id)
	if changed {
		prometheus.RecordUnread(s.metrics, s.store.UnreadCount())
	}
	return changed
}

func (s *serviceImpl) SeedReminders(ctx context.Context, now time.Time) error {
	list, err := s.schemes.List(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeScanFailed, "failed to list schemes")
	}
	if len(list) > 2 {
		list = list[:2]
	}
	for _, sc := range list {
		s.store.AppendUnique(notification.NewDeadlineReminder(s.owner, sc, now))
	}
	return nil
}

//Personal.AI order the ending
