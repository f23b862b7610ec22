package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScholarAI/internal/testutil"
	apperrors "github.com/turtacn/ScholarAI/pkg/errors"
)

// mockKafkaWriter
type mockKafkaWriter struct {
	writeFunc func(ctx context.Context, msgs ...kafka.Message) error
	closeFunc func() error
	statsFunc func() kafka.WriterStats
}

func (m *mockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.writeFunc != nil {
		return m.writeFunc(ctx, msgs...)
	}
	return nil
}

func (m *mockKafkaWriter) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockKafkaWriter) Stats() kafka.WriterStats {
	if m.statsFunc != nil {
		return m.statsFunc()
	}
	return kafka.WriterStats{}
}

func newTestProducerConfig() ProducerConfig {
	return ProducerConfig{
		Brokers:         []string{"localhost:9092"},
		MaxMessageBytes: 1024,
	}
}

func newTestProducer(w WriterInterface) *Producer {
	return newProducerWithWriter(w, newTestProducerConfig(), testutil.NewMockLogger())
}

func TestValidateProducerConfig(t *testing.T) {
	assert.NoError(t, ValidateProducerConfig(newTestProducerConfig()))

	cfg := newTestProducerConfig()
	cfg.Brokers = nil
	assert.Error(t, ValidateProducerConfig(cfg))

	cfg = newTestProducerConfig()
	cfg.MaxRetries = -1
	assert.Error(t, ValidateProducerConfig(cfg))
}

func TestNewProducer_DoesNotDial(t *testing.T) {
	p, err := NewProducer(ProducerConfig{Brokers: []string{"127.0.0.1:1"}, Acks: "all", CompressionCodec: "snappy"}, testutil.NewMockLogger())
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestPublish_Success(t *testing.T) {
	var captured []kafka.Message
	p := newTestProducer(&mockKafkaWriter{
		writeFunc: func(_ context.Context, msgs ...kafka.Message) error {
			captured = append(captured, msgs...)
			return nil
		},
	})

	err := p.Publish(context.Background(), &ProducerMessage{
		Topic:   "t",
		Key:     []byte("k"),
		Value:   []byte("v"),
		Headers: map[string]string{"h": "1"},
	})
	require.NoError(t, err)
	require.Len(t, captured, 1)
	assert.Equal(t, "t", captured[0].Topic)
	assert.Equal(t, []byte("k"), captured[0].Key)
	assert.False(t, captured[0].Time.IsZero())
	require.Len(t, captured[0].Headers, 1)
	assert.Equal(t, "h", captured[0].Headers[0].Key)
	assert.Equal(t, int64(1), p.Sent())
}

func TestPublish_Validation(t *testing.T) {
	p := newTestProducer(&mockKafkaWriter{})
	ctx := context.Background()

	assert.True(t, apperrors.IsCode(p.Publish(ctx, &ProducerMessage{Value: []byte("v")}), apperrors.ErrCodeValidation))
	assert.True(t, apperrors.IsCode(p.Publish(ctx, &ProducerMessage{Topic: "t"}), apperrors.ErrCodeValidation))
	big := make([]byte, 2048)
	assert.True(t, apperrors.IsCode(p.Publish(ctx, &ProducerMessage{Topic: "t", Value: big}), apperrors.ErrCodeValidation))
	assert.Zero(t, p.Sent())
}

func TestPublish_WriteError(t *testing.T) {
	p := newTestProducer(&mockKafkaWriter{
		writeFunc: func(context.Context, ...kafka.Message) error { return errors.New("broker down") },
	})
	err := p.Publish(context.Background(), &ProducerMessage{Topic: "t", Value: []byte("v")})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePublishFailed))
	assert.Equal(t, int64(1), p.Failed())
}

func TestClose_Idempotent(t *testing.T) {
	calls := 0
	p := newTestProducer(&mockKafkaWriter{closeFunc: func() error { calls++; return nil }})
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, calls)

	err := p.Publish(context.Background(), &ProducerMessage{Topic: "t", Value: []byte("v")})
	assert.ErrorIs(t, err, ErrProducerClosed)
}

//Personal.AI order the ending
