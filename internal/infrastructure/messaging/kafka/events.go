package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ScholarAI/internal/domain/notification"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Default topics.
const (
	TopicSchemeEvents         = "scholarai.schemes.events"
	TopicNotificationsCreated = "scholarai.notifications.created"
)

const (
	eventSource   = "scholarai"
	schemaVersion = "1"
)

// EventEnvelope standardizes event messages.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEventEnvelope wraps payload in an envelope stamped now.
func NewEventEnvelope(eventType string, payload interface{}) (*EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event payload")
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        eventSource,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       raw,
	}, nil
}

// DecodePayload unmarshals the payload into target.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode event payload")
	}
	return nil
}

// ToMessage encodes the envelope as a record keyed by key.
func (e *EventEnvelope) ToMessage(topic, key string) (*ProducerMessage, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event envelope")
	}
	return &ProducerMessage{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Headers: map[string]string{
			"event_type":     e.EventType,
			"schema_version": e.SchemaVersion,
		},
		Timestamp: e.Timestamp,
	}, nil
}

// publisher is the subset of Producer used by EventPublisher.
type publisher interface {
	Publish(ctx context.Context, msg *ProducerMessage) error
	Close() error
}

// EventPublisher publishes catalog and notification events.  Failures are
// logged and counted; they are returned to the caller, which decides whether
// to ignore them.
type EventPublisher struct {
	producer          publisher
	schemeTopic       string
	notificationTopic string
	logger            logging.Logger
	metrics           *prometheus.AppMetrics
}

// NewEventPublisher builds an EventPublisher over producer.  Empty topics
// fall back to the defaults.
func NewEventPublisher(producer publisher, schemeTopic, notificationTopic string, logger logging.Logger, metrics *prometheus.AppMetrics) *EventPublisher {
	if schemeTopic == "" {
		schemeTopic = TopicSchemeEvents
	}
	if notificationTopic == "" {
		notificationTopic = TopicNotificationsCreated
	}
	return &EventPublisher{
		producer:          producer,
		schemeTopic:       schemeTopic,
		notificationTopic: notificationTopic,
		logger:            logger,
		metrics:           metrics,
	}
}

// PublishSchemeEvent publishes a catalog mutation keyed by scheme id.
func (p *EventPublisher) PublishSchemeEvent(ctx context.Context, evt scheme.Event) error {
	return p.publish(ctx, p.schemeTopic, string(evt.Type), evt.SchemeID, evt)
}

// PublishNotification publishes a newly created notification keyed by
// scheme id.
func (p *EventPublisher) PublishNotification(ctx context.Context, n notification.Notification) error {
	return p.publish(ctx, p.notificationTopic, "notification."+string(n.Kind), n.SchemeID, n)
}

func (p *EventPublisher) publish(ctx context.Context, topic, eventType, key string, payload interface{}) error {
	env, err := NewEventEnvelope(eventType, payload)
	if err != nil {
		return err
	}
	msg, err := env.ToMessage(topic, key)
	if err != nil {
		return err
	}
	err = p.producer.Publish(ctx, msg)
	prometheus.RecordEventPublish(p.metrics, topic, err)
	if err != nil {
		p.logger.Warn("event publish failed",
			logging.String("topic", topic),
			logging.String("event_type", eventType),
			logging.Err(err))
	}
	return err
}

// Close closes the underlying producer.
func (p *EventPublisher) Close() error {
	return p.producer.Close()
}

//Personal.AI order the ending
