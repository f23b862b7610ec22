// Package testutil provides common test utilities for ScholarAI.
package testutil

import (
	"sync"

	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
)

// MockLogger implements logging.Logger and records every entry so tests can
// assert on logging behaviour.  Children created by With and Named share the
// parent's record.
type MockLogger struct {
	mu       *sync.Mutex
	messages *[]LogMessage
	fields   []logging.Field
}

// LogMessage represents a single log entry captured by MockLogger.
type LogMessage struct {
	Level   string
	Message string
	Fields  []logging.Field
}

// NewMockLogger creates a new MockLogger instance.
func NewMockLogger() *MockLogger {
	msgs := make([]LogMessage, 0)
	return &MockLogger{mu: &sync.Mutex{}, messages: &msgs}
}

func (m *MockLogger) log(level, msg string, fields []logging.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := append(append([]logging.Field(nil), m.fields...), fields...)
	*m.messages = append(*m.messages, LogMessage{Level: level, Message: msg, Fields: all})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) { m.log("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logging.Field)  { m.log("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logging.Field)  { m.log("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logging.Field) { m.log("error", msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...logging.Field) { m.log("fatal", msg, fields) }

func (m *MockLogger) With(fields ...logging.Field) logging.Logger {
	return &MockLogger{
		mu:       m.mu,
		messages: m.messages,
		fields:   append(append([]logging.Field(nil), m.fields...), fields...),
	}
}

func (m *MockLogger) Named(_ string) logging.Logger { return m }

func (m *MockLogger) Sync() error { return nil }

// GetMessages returns a copy of all logged messages.
func (m *MockLogger) GetMessages() []LogMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]LogMessage, len(*m.messages))
	copy(result, *m.messages)
	return result
}

// Clear removes all logged messages.
func (m *MockLogger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.messages = (*m.messages)[:0]
}

// HasMessage checks if a message with the given level and content was logged.
func (m *MockLogger) HasMessage(level, msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, logged := range *m.messages {
		if logged.Level == level && logged.Message == msg {
			return true
		}
	}
	return false
}

// Field returns the value of key on the first entry with message msg.
func (m *MockLogger) Field(msg, key string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, logged := range *m.messages {
		if logged.Message != msg {
			continue
		}
		for _, f := range logged.Fields {
			if f.Key == key {
				return f.Value, true
			}
		}
	}
	return nil, false
}

var _ logging.Logger = (*MockLogger)(nil)

//Personal.AI order the ending
