// internal/application/catalog/service.go
//
// Scheme catalog application service.  Wraps the scheme repository with
// filtering, admin mutations, event publishing and the notifier hooks that
// follow every change to the collection.
//
// Dependencies:
//   Depends on: domain/scheme, application/notifier, application/events
//   Depended by: interfaces/http, interfaces/cli, application/assistant

package catalog

import (
	"context"
	"time"

	"github.com/turtacn/ScholarAI/internal/application/events"
	"github.com/turtacn/ScholarAI/internal/application/notifier"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/prometheus"
)

// Service exposes the scheme catalog.
type Service interface {
	List(ctx context.Context, c scheme.Criteria) ([]scheme.Scheme, error)
	Get(ctx context.Context, id string) (scheme.Scheme, error)
	Add(ctx context.Context, d scheme.Draft) (scheme.Scheme, error)
	// Update merges p into the scheme with id.  applied is false, and
	// nothing is written, when the id does not exist.
	Update(ctx context.Context, id string, p scheme.Patch) (updated scheme.Scheme, applied bool, err error)
	// Delete removes the scheme with id; a missing id is not an error.
	Delete(ctx context.Context, id string) (removed bool, err error)
}

type serviceImpl struct {
	repo      scheme.Repository
	notifier  notifier.Service
	publisher events.Publisher
	clock     func() time.Time
	logger    logging.Logger
	metrics   *prometheus.AppMetrics
}

// Option configures the service.
type Option func(*serviceImpl)

func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) { s.clock = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *serviceImpl) { s.publisher = p }
}

func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

// NewService builds the catalog.  n may be nil, in which case mutations do
// not touch notifications.
func NewService(repo scheme.Repository, n notifier.Service, logger logging.Logger, opts ...Option) Service {
	s := &serviceImpl{
		repo:      repo,
		notifier:  n,
		publisher: events.Nop{},
		clock:     time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) List(ctx context.Context, c scheme.Criteria) ([]scheme.Scheme, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return scheme.Filter(all, c), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (scheme.Scheme, error) {
	return s.repo.Get(ctx, id)
}

func (s *serviceImpl) Add(ctx context.Context, d scheme.Draft) (scheme.Scheme, error) {
	now := s.clock()
	created, err := s.repo.Create(ctx, now, func(id string) (*scheme.Scheme, error) {
		return scheme.NewScheme(id, d, now)
	})
	if err != nil {
		prometheus.RecordSchemeMutation(s.metrics, "add", false, s.repo.Count())
		return scheme.Scheme{}, err
	}

	s.logger.Info("scheme added", logging.String("scheme_id", created.ID), logging.String("title", created.Title))
	prometheus.RecordSchemeMutation(s.metrics, "add", true, s.repo.Count())
	s.publish(ctx, scheme.NewEvent(scheme.EventAdded, created, now))
	if s.notifier != nil {
		s.notifier.Announce(ctx, created)
		s.notifier.Trigger(ctx, notifier.TriggerChange)
	}
	return created, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, p scheme.Patch) (scheme.Scheme, bool, error) {
	now := s.clock()
	updated, applied, err := s.repo.Update(ctx, id, func(cur scheme.Scheme) (scheme.Scheme, error) {
		return cur.Apply(p, now)
	})
	if err != nil {
		return scheme.Scheme{}, false, err
	}
	prometheus.RecordSchemeMutation(s.metrics, "update", applied, s.repo.Count())
	if !applied {
		s.logger.Debug("update of unknown scheme ignored", logging.String("scheme_id", id))
		return scheme.Scheme{}, false, nil
	}

	s.logger.Info("scheme updated", logging.String("scheme_id", id))
	s.publish(ctx, scheme.NewEvent(scheme.EventUpdated, updated, now))
	if s.notifier != nil {
		s.notifier.Trigger(ctx, notifier.TriggerChange)
	}
	return updated, true, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (bool, error) {
	existing, getErr := s.repo.Get(ctx, id)
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	prometheus.RecordSchemeMutation(s.metrics, "delete", removed, s.repo.Count())
	if !removed {
		return false, nil
	}
	if getErr != nil {
		existing = scheme.Scheme{ID: id}
	}

	s.logger.Info("scheme deleted", logging.String("scheme_id", id))
	s.publish(ctx, scheme.NewEvent(scheme.EventDeleted, existing, s.clock()))
	if s.notifier != nil {
		s.notifier.Trigger(ctx, notifier.TriggerChange)
	}
	return true, nil
}

func (s *serviceImpl) publish(ctx context.Context, evt scheme.Event) {
	if err := s.publisher.PublishSchemeEvent(ctx, evt); err != nil {
		s.logger.Warn("scheme event dropped",
			logging.String("scheme_id", evt.SchemeID),
			logging.String("event_type", string(evt.Type)),
			logging.Err(err))
	}
}

//Personal.AI order the ending
