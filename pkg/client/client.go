// Package client is the Go SDK for the ScholarAI HTTP API.
//
//	c, _ := client.NewClient("https://scholarai.example.org")
//	if _, err := c.Auth().Login(ctx, "student@example.com", "password"); err != nil { ... }
//	list, _ := c.Schemes().List(ctx, client.SchemeFilter{Type: "scholarship"})
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const Version = "0.1.0"

// ErrInvalidConfig is returned by NewClient for an unusable base URL.
var ErrInvalidConfig = errors.New("scholarai: invalid client configuration")

// Logger defines the logging interface used by the Client
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

// Client is the ScholarAI SDK client.  It is safe for concurrent use; the
// bearer token is replaced by a successful Login or Register.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	logger       Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	tokenMu sync.RWMutex
	token   string

	schemes       *SchemesClient
	schemesOnce   sync.Once
	notifications *NotificationsClient
	notifyOnce    sync.Once
	assistant     *AssistantClient
	assistantOnce sync.Once
	auth          *AuthClient
	authOnce      sync.Once
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	RequestID  string `json:"request_id"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("scholarai: %s (HTTP %d): %s [request_id=%s]", e.Code, e.StatusCode, msg, e.RequestID)
}

func (e *APIError) IsNotFound() bool     { return e.StatusCode == http.StatusNotFound }
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }
func (e *APIError) IsForbidden() bool    { return e.StatusCode == http.StatusForbidden }
func (e *APIError) IsRateLimited() bool  { return e.StatusCode == http.StatusTooManyRequests }
func (e *APIError) IsServerError() bool  { return e.StatusCode >= 500 && e.StatusCode < 600 }

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrInvalidConfig
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid baseURL: %v", ErrInvalidConfig, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: baseURL scheme must be http or https", ErrInvalidConfig)
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		userAgent:    fmt.Sprintf("scholarai-go-sdk/%s", Version),
		logger:       noopLogger{},
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string {
	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token.  An empty token sends anonymous
// requests.
func (c *Client) SetToken(token string) {
	c.tokenMu.Lock()
	c.token = token
	c.tokenMu.Unlock()
}

// Schemes returns the catalog sub-client.
func (c *Client) Schemes() *SchemesClient {
	c.schemesOnce.Do(func() { c.schemes = &SchemesClient{client: c} })
	return c.schemes
}

// Notifications returns the notifications sub-client.
func (c *Client) Notifications() *NotificationsClient {
	c.notifyOnce.Do(func() { c.notifications = &NotificationsClient{client: c} })
	return c.notifications
}

// Assistant returns the chat sub-client.
func (c *Client) Assistant() *AssistantClient {
	c.assistantOnce.Do(func() { c.assistant = &AssistantClient{client: c} })
	return c.assistant
}

// Auth returns the account sub-client.
func (c *Client) Auth() *AuthClient {
	c.authOnce.Do(func() { c.auth = &AuthClient{client: c} })
	return c.auth
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	} `json:"error"`
}

// do performs an HTTP request with retry logic
func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := c.baseURL + path

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = b
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			backoff := c.calculateBackoff(attempt)
			c.logger.Debugf("Retry attempt %d after %v", attempt, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		requestID := uuid.NewString()
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("X-Request-ID", requestID)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Errorf("Request failed: %v", err)
			lastErr = err
			continue
		}
		c.logger.Debugf("%s %s %d (%v)", method, path, resp.StatusCode, time.Since(start))

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 400 {
			apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
			if id := resp.Header.Get("X-Request-ID"); id != "" {
				apiErr.RequestID = id
			}
			var env errorEnvelope
			if len(respBody) > 0 && json.Unmarshal(respBody, &env) == nil && env.Error.Code != "" {
				apiErr.Code = env.Error.Code
				apiErr.Message = env.Error.Message
				apiErr.Detail = env.Error.Detail
			} else {
				apiErr.Message = strings.TrimSpace(string(respBody))
			}
			lastErr = apiErr

			if resp.StatusCode == http.StatusTooManyRequests && attempt < c.retryMax {
				if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
					c.logger.Infof("Rate limited, retrying after %d seconds", seconds)
					select {
					case <-time.After(time.Duration(seconds) * time.Second):
						continue
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
			if apiErr.IsServerError() {
				continue
			}
			return apiErr
		}

		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}
		return nil
	}
	return lastErr
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

func (c *Client) patch(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if backoff > c.retryWaitMax {
		backoff = c.retryWaitMax
	}
	if q := int64(backoff / 4); q > 0 {
		backoff += time.Duration(rand.Int63n(q))
	}
	return backoff
}

//Personal.AI order the ending
