package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

const maxResponseBytes = 1 << 20

// OpenAIClient talks to an OpenAI-compatible chat-completion endpoint.  It
// also understands the single-message reply shape of edge-function proxies.
type OpenAIClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     logging.Logger
}

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*OpenAIClient)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(o *OpenAIClient) { o.httpClient = c }
}

// NewOpenAIClient builds a client posting to endpoint.  The per-request
// deadline comes from the caller's context.
func NewOpenAIClient(endpoint, apiKey string, logger logging.Logger, opts ...OpenAIOption) (*OpenAIClient, error) {
	if endpoint == "" {
		return nil, errors.New(errors.ErrCodeValidation, "openai endpoint is required")
	}
	c := &OpenAIClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type chatRequest struct {
	Model    string `json:"model"`
	Messages []Turn `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message *chatMessage `json:"message"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (r chatResponse) content() string {
	if r.Message != nil && strings.TrimSpace(r.Message.Content) != "" {
		return r.Message.Content
	}
	for _, c := range r.Choices {
		if strings.TrimSpace(c.Message.Content) != "" {
			return c.Message.Content
		}
	}
	return ""
}

// Complete sends the conversation and returns the reply text.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body, err := json.Marshal(chatRequest{Model: req.Model, Messages: req.Messages})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode completion request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAssistantUnavailable, "failed to build completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAssistantUnavailable, "completion request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAssistantUnavailable, "failed to read completion response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("completion endpoint returned error status",
			logging.Int("status", resp.StatusCode))
		return "", errors.New(errors.ErrCodeAssistantBadResponse, "unexpected status from completion endpoint").
			WithDetail(fmt.Sprintf("status %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeAssistantBadResponse, "failed to decode completion response")
	}
	content := parsed.content()
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

func (c *OpenAIClient) Provider() Provider { return ProviderOpenAI }

func (c *OpenAIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

//Personal.AI order the ending
