package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("v1.2.3")
	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "v1.2.3", resp.Version)
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := CheckFunc{Label: "memory", Fn: func(context.Context) error { return nil }}
	bad := CheckFunc{Label: "redis", Fn: func(context.Context) error { return fmt.Errorf("connection refused") }}

	w := httptest.NewRecorder()
	NewHealthHandler("v1", ok).Readiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	NewHealthHandler("v1", ok, bad).Readiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["redis"].Status)
	assert.Equal(t, "healthy", resp.Components["memory"].Status)
}

func TestHealthHandler_NoCheckers(t *testing.T) {
	w := httptest.NewRecorder()
	NewHealthHandler("v1").Readiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

//Personal.AI order the ending
