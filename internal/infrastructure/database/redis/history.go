package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/ScholarAI/internal/domain/conversation"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// HistoryStore keeps each user's conversation in a Redis list at
// <prefix>chat:history:<userID>.  Every append refreshes the key TTL and
// trims the list to the newest limit entries, rounded to whole turns by
// conversation.PairLimit.
type HistoryStore struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
	limit  int64
}

// HistoryOption configures a HistoryStore.
type HistoryOption func(*HistoryStore)

func WithKeyPrefix(prefix string) HistoryOption {
	return func(s *HistoryStore) { s.prefix = prefix }
}

func WithHistoryTTL(ttl time.Duration) HistoryOption {
	return func(s *HistoryStore) { s.ttl = ttl }
}

func WithHistoryLimit(limit int) HistoryOption {
	return func(s *HistoryStore) { s.limit = int64(conversation.PairLimit(limit)) }
}

// NewHistoryStore returns a conversation.HistoryStore over client.
func NewHistoryStore(client *Client, log logging.Logger, opts ...HistoryOption) *HistoryStore {
	s := &HistoryStore{
		client: client,
		logger: log,
		ttl:    24 * time.Hour,
		limit:  50,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ conversation.HistoryStore = (*HistoryStore)(nil)

func (s *HistoryStore) key(userID string) string {
	return s.prefix + "chat:history:" + userID
}

func (s *HistoryStore) Load(ctx context.Context, userID string) ([]conversation.Message, error) {
	raw, err := s.client.LRange(ctx, s.key(userID), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, errors.ErrCodeHistoryUnavailable, "failed to load conversation history")
	}

	out := make([]conversation.Message, 0, len(raw))
	for _, item := range raw {
		var m conversation.Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			s.logger.Warn("skipping undecodable history entry", logging.String("user_id", userID), logging.Err(err))
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *HistoryStore) Append(ctx context.Context, userID string, msgs ...conversation.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		b, err := json.Marshal(m)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode message")
		}
		values = append(values, string(b))
	}

	key := s.key(userID)
	err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		if s.limit > 0 {
			pipe.LTrim(ctx, key, -s.limit, -1)
		}
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeHistoryUnavailable, "failed to append conversation history")
	}
	return nil
}

func (s *HistoryStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeHistoryUnavailable, "failed to clear conversation history")
	}
	return nil
}

//Personal.AI order the ending
