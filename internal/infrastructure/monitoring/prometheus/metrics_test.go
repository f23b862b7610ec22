package prometheus

import (
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	t.Helper()
	c := newTestCollector(t)
	return NewAppMetrics(c), c
}

func TestNewAppMetrics_AllFamiliesUsable(t *testing.T) {
	m, _ := newTestAppMetrics(t)

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.ScanRunsTotal)
	assert.NotNil(t, m.NotificationsCreatedTotal)
	assert.NotNil(t, m.AssistantRequestsTotal)
	assert.NotNil(t, m.BackendFailuresTotal)
	assert.NotNil(t, m.EventPublishFailuresTotal)
}

func TestRecordHTTPRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordHTTPRequest(m, http.MethodGet, "/api/v1/schemes", 200, 30*time.Millisecond)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_http_requests_total{method="GET",route="/api/v1/schemes",status_code="200"} 1`)
	assert.Contains(t, out, `test_unit_http_request_duration_seconds_count{method="GET",route="/api/v1/schemes"} 1`)
}

func TestRecordScan(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordScan(m, "schedule", time.Millisecond, 2)
	RecordScan(m, "catalog", time.Millisecond, 0)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_deadline_scan_runs_total{trigger="schedule"} 1`)
	assert.Contains(t, out, `test_unit_deadline_scan_runs_total{trigger="catalog"} 1`)
	assert.Contains(t, out, `test_unit_notifications_created_total{kind="deadline_reminder"} 2`)
	assert.Contains(t, out, "test_unit_deadline_scan_duration_seconds_count 2")
}

func TestRecordAssistantAndBackend(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordAssistantReply(m, "fallback")
	RecordBackendCall(m, "openai", time.Second, "timeout")
	RecordBackendCall(m, "openai", time.Second, "")

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_assistant_requests_total{source="fallback"} 1`)
	assert.Contains(t, out, `test_unit_assistant_backend_failures_total{provider="openai",reason="timeout"} 1`)
	assert.Contains(t, out, `test_unit_assistant_backend_duration_seconds_count{provider="openai"} 2`)
}

func TestRecordEventPublish(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordEventPublish(m, "scholarai.schemes.events", nil)
	RecordEventPublish(m, "scholarai.schemes.events", errors.New("broker down"))

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_events_published_total{topic="scholarai.schemes.events"} 1`)
	assert.Contains(t, out, `test_unit_event_publish_failures_total{topic="scholarai.schemes.events"} 1`)
}

func TestRecordSchemeMutation_SetsGauge(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordSchemeMutation(m, "update", false, 3)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_scheme_mutations_total{applied="false",operation="update"} 1`)
	assert.Contains(t, out, "test_unit_schemes_total 3")
}

func TestRecordHelpers_NilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest(nil, "GET", "/", 200, 0)
		RecordRateLimited(nil)
		RecordAuthAttempt(nil, "login", false)
		RecordSchemeMutation(nil, "add", true, 1)
		RecordScan(nil, "manual", 0, 1)
		RecordNotificationCreated(nil, "scheme_added")
		RecordUnread(nil, 1)
		RecordAssistantReply(nil, "backend")
		RecordBackendCall(nil, "gemini", 0, "error")
		RecordEventPublish(nil, "t", nil)
		RecordError(nil, "http", "COMMON_001")
	})
}

func TestConcurrentMetricRecording(t *testing.T) {
	m, c := newTestAppMetrics(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordAuthAttempt(m, "login", true)
		}()
	}
	wg.Wait()

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_auth_attempts_total{operation="login",result="success"} 50`)
}

//Personal.AI order the ending
