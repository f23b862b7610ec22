// Package llm holds the completion backends the assistant can talk to: an
// OpenAI-compatible HTTP endpoint, Google Gemini, and a disabled backend that
// always fails.
package llm

import (
	"context"
	stdliberrors "errors"

	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Provider names a backend implementation.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderNone   Provider = "none"
)

// Role of a turn in a completion request.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the conversation sent to a backend.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input of Backend.Complete.
type CompletionRequest struct {
	Model    string
	Messages []Turn
}

// Backend produces the next assistant message for a conversation.
type Backend interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Provider() Provider
	Close() error
}

var (
	ErrBackendDisabled = errors.New(errors.ErrCodeAssistantUnavailable, "assistant backend disabled")
	ErrEmptyCompletion = errors.New(errors.ErrCodeAssistantBadResponse, "backend returned empty content")
)

// Config selects and parameterizes a backend.
type Config struct {
	Provider Provider
	Endpoint string
	APIKey   string
	Model    string
}

// New builds the backend named by cfg.Provider.
func New(ctx context.Context, cfg Config, logger logging.Logger) (Backend, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(cfg.Endpoint, cfg.APIKey, logger)
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, logger)
	case ProviderNone, "":
		return Disabled{}, nil
	default:
		return nil, errors.Newf(errors.ErrCodeValidation, "unknown assistant provider %q", cfg.Provider)
	}
}

// FailureReason classifies a backend error for metrics.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case stdliberrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case stdliberrors.Is(err, context.Canceled):
		return "canceled"
	case errors.IsCode(err, errors.ErrCodeAssistantBadResponse):
		return "bad_response"
	default:
		return "unavailable"
	}
}

// Disabled is the "none" backend.
type Disabled struct{}

func (Disabled) Complete(context.Context, CompletionRequest) (string, error) {
	return "", ErrBackendDisabled
}

func (Disabled) Provider() Provider { return ProviderNone }

func (Disabled) Close() error { return nil }

//Personal.AI order the ending
