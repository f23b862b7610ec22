package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	assert.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_WithSharesRecord(t *testing.T) {
	logger := testutil.NewMockLogger()
	child := logger.With(logging.Component("notifier"))

	child.Warn("scan skipped", logging.Int("schemes", 3))

	assert.True(t, logger.HasMessage("warn", "scan skipped"))
	v, ok := logger.Field("scan skipped", "component")
	assert.True(t, ok)
	assert.Equal(t, "notifier", v)
}

//Personal.AI order the ending
