package client

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newBareClient() *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
		userAgent:    "default",
	}
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{}
	c := newBareClient()
	WithHTTPClient(custom)(c)
	assert.Same(t, custom, c.httpClient)

	WithHTTPClient(nil)(c)
	assert.Same(t, custom, c.httpClient)
}

func TestWithTimeout(t *testing.T) {
	c := newBareClient()
	WithTimeout(5 * time.Second)(c)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)

	WithTimeout(0)(c)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
}

func TestWithRetryMax(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"positive", 5, 5},
		{"zero", 0, 0},
		{"negative ignored", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newBareClient()
			WithRetryMax(tt.input)(c)
			assert.Equal(t, tt.expected, c.retryMax)
		})
	}
}

func TestWithRetryWait(t *testing.T) {
	tests := []struct {
		name    string
		min     time.Duration
		max     time.Duration
		wantMin time.Duration
		wantMax time.Duration
	}{
		{"valid", time.Second, 10 * time.Second, time.Second, 10 * time.Second},
		{"max below min keeps max", time.Second, 100 * time.Millisecond, time.Second, 5 * time.Second},
		{"zero min ignored", 0, time.Second, 500 * time.Millisecond, 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newBareClient()
			WithRetryWait(tt.min, tt.max)(c)
			assert.Equal(t, tt.wantMin, c.retryWaitMin)
			assert.Equal(t, tt.wantMax, c.retryWaitMax)
		})
	}
}

func TestWithUserAgentAndToken(t *testing.T) {
	c := newBareClient()
	WithUserAgent("")(c)
	assert.Equal(t, "default", c.userAgent)
	WithUserAgent("custom/1.0")(c)
	assert.Equal(t, "custom/1.0", c.userAgent)

	WithToken("t")(c)
	assert.Equal(t, "t", c.Token())
}

func TestWithLogger(t *testing.T) {
	c := newBareClient()
	l := &testLogger{}
	WithLogger(l)(c)
	assert.Same(t, l, c.logger)
}

//Personal.AI order the ending
