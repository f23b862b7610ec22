package notifier

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// DefaultSchedule rescans once an hour.
const DefaultSchedule = "@hourly"

// Scheduler runs the deadline scan once at start and then on a cron
// schedule until its context is cancelled or Stop is called.
type Scheduler struct {
	svc      Service
	schedule string
	logger   logging.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewScheduler validates schedule and returns a stopped Scheduler.
func NewScheduler(svc Service, schedule string, logger logging.Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeScheduleInvalid, "invalid scan schedule").WithDetail(schedule)
	}
	return &Scheduler{svc: svc, schedule: schedule, logger: logger}, nil
}

// Start performs the startup scan synchronously, then schedules periodic
// scans.  Calling Start on a running Scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New(cron.WithLogger(cronLogger{s.logger}))
	if _, err := c.AddFunc(s.schedule, func() {
		s.svc.Trigger(runCtx, TriggerSchedule)
	}); err != nil {
		cancel()
		return errors.Wrap(err, errors.ErrCodeScheduleInvalid, "failed to add scan job")
	}

	s.svc.Trigger(runCtx, TriggerStartup)
	c.Start()

	s.cron = c
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go func(done chan struct{}) {
		<-runCtx.Done()
		<-c.Stop().Done()
		close(done)
	}(s.done)

	s.logger.Info("deadline scheduler started", logging.String("schedule", s.schedule))
	return nil
}

// Stop cancels the schedule and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.running = false
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("deadline scheduler stopped")
}

// Done is closed once the scheduler has fully stopped after a Start.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.done
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct{ l logging.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, kvFields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(kvFields(keysAndValues), logging.Err(err))...)
}

func kvFields(kv []interface{}) []logging.Field {
	out := make([]logging.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		out = append(out, logging.Any(key, kv[i+1]))
	}
	return out
}

//Personal.AI order the ending
