// internal/application/assistant/service.go
//
// Assistant gateway.  Assembles the system prompt, the user's history and
// the new message, calls the completion backend under a per-attempt timeout
// with bounded retries, and answers from the local fallback responder when
// every attempt fails.
//
// Dependencies:
//   Depends on: domain/conversation, domain/scheme, intelligence/llm
//   Depended by: interfaces/http, interfaces/cli

package assistant

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/turtacn/ScholarAI/internal/domain/conversation"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/intelligence/llm"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Reply sources.
const (
	SourceBackend  = "backend"
	SourceFallback = "fallback"
)

// MaxMessageLength bounds a single user message in characters.
const MaxMessageLength = 4000

// Reply is the assistant's answer to one user message.
type Reply struct {
	Message conversation.Message `json:"message"`
	Source  string               `json:"source"`
}

// Catalog supplies the schemes the assistant talks about.
type Catalog interface {
	List(ctx context.Context, c scheme.Criteria) ([]scheme.Scheme, error)
}

// Service is the assistant gateway.
type Service interface {
	Ask(ctx context.Context, userID, content string) (Reply, error)
	// History returns the welcome message followed by the stored turns.
	History(ctx context.Context, userID string) ([]conversation.Message, error)
	ClearHistory(ctx context.Context, userID string) error
}

// Config tunes backend calls.
type Config struct {
	Model        string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

type serviceImpl struct {
	backend llm.Backend
	catalog Catalog
	history conversation.HistoryStore
	cfg     Config
	clock   func() time.Time
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// Option configures the service.
type Option func(*serviceImpl)

func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) { s.clock = now }
}

func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

// NewService builds the gateway.  A nil backend behaves like llm.Disabled.
func NewService(backend llm.Backend, catalog Catalog, history conversation.HistoryStore, cfg Config, logger logging.Logger, opts ...Option) Service {
	if backend == nil {
		backend = llm.Disabled{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	s := &serviceImpl{
		backend: backend,
		catalog: catalog,
		history: history,
		cfg:     cfg,
		clock:   time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) Ask(ctx context.Context, userID, content string) (Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Reply{}, errors.New(errors.ErrCodeAssistantInputInvalid, "message must not be empty")
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return Reply{}, errors.Newf(errors.ErrCodeAssistantInputInvalid, "message exceeds %d characters", MaxMessageLength)
	}
	log := logging.FromContext(ctx, s.logger).With(logging.String("user_id", userID))

	schemes, err := s.catalog.List(ctx, scheme.Criteria{})
	if err != nil {
		log.Warn("catalog unavailable for assistant prompt", logging.Err(err))
		schemes = nil
	}
	past, err := s.history.Load(ctx, userID)
	if err != nil {
		log.Warn("conversation history unavailable", logging.Err(err))
		past = nil
	}

	userMsg := conversation.NewMessage(conversation.RoleUser, content, s.clock())
	turns := buildTurns(BuildSystemPrompt(schemes), s.withWelcome(past), userMsg)

	text, err := s.complete(ctx, turns)
	source := SourceBackend
	if err != nil {
		log.Warn("assistant backend failed, answering from fallback",
			logging.String("provider", string(s.backend.Provider())),
			logging.Err(err))
		text = Fallback(content, schemes)
		source = SourceFallback
	}
	prometheus.RecordAssistantReply(s.metrics, source)

	reply := conversation.NewMessage(conversation.RoleAssistant, text, s.clock())
	if err := s.history.Append(ctx, userID, userMsg, reply); err != nil {
		log.Warn("failed to persist conversation turn", logging.Err(err))
	}
	return Reply{Message: reply, Source: source}, nil
}

// complete calls the backend up to 1+MaxRetries times with exponential
// backoff between attempts.
func (s *serviceImpl) complete(ctx context.Context, turns []llm.Turn) (string, error) {
	req := llm.CompletionRequest{Model: s.cfg.Model, Messages: turns}
	provider := string(s.backend.Provider())
	backoff := s.cfg.RetryBackoff

	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 && backoff > 0 {
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
			backoff *= 2
		}

		start := time.Now()
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		text, err := s.backend.Complete(attemptCtx, req)
		cancel()
		if err == nil && strings.TrimSpace(text) == "" {
			err = llm.ErrEmptyCompletion
		}
		prometheus.RecordBackendCall(s.metrics, provider, time.Since(start), llm.FailureReason(err))
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil || err == llm.ErrBackendDisabled {
			break
		}
	}
	return "", lastErr
}

func (s *serviceImpl) withWelcome(past []conversation.Message) []conversation.Message {
	out := make([]conversation.Message, 0, len(past)+1)
	at := s.clock()
	if len(past) > 0 {
		at = past[0].Timestamp
	}
	out = append(out, conversation.Welcome(at))
	return append(out, past...)
}

func buildTurns(system string, past []conversation.Message, next conversation.Message) []llm.Turn {
	turns := make([]llm.Turn, 0, len(past)+2)
	turns = append(turns, llm.Turn{Role: llm.RoleSystem, Content: system})
	for _, m := range past {
		turns = append(turns, llm.Turn{Role: llm.Role(m.Role), Content: m.Content})
	}
	return append(turns, llm.Turn{Role: llm.RoleUser, Content: next.Content})
}

func (s *serviceImpl) History(ctx context.Context, userID string) ([]conversation.Message, error) {
	past, err := s.history.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withWelcome(past), nil
}

func (s *serviceImpl) ClearHistory(ctx context.Context, userID string) error {
	return s.history.Clear(ctx, userID)
}

//Personal.AI order the ending
