package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP Layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec
	RateLimitedTotal    CounterVec

	// Auth Layer
	AuthAttemptsTotal CounterVec

	// Catalog
	SchemeMutationsTotal CounterVec
	SchemesTotal         GaugeVec

	// Notifier
	ScanRunsTotal             CounterVec
	ScanDuration              HistogramVec
	NotificationsCreatedTotal CounterVec
	NotificationsUnread       GaugeVec

	// Assistant
	AssistantRequestsTotal CounterVec
	BackendRequestDuration HistogramVec
	BackendFailuresTotal   CounterVec

	// Events
	EventsPublishedTotal      CounterVec
	EventPublishFailuresTotal CounterVec

	// System Health
	ServiceUptime CounterVec
	ErrorsTotal   CounterVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultScanDurationBuckets = []float64{.0005, .001, .005, .01, .05, .1, .5, 1}
	DefaultLLMDurationBuckets  = []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60}
)

// NewAppMetrics registers all metrics and returns AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests")
	m.RateLimitedTotal = collector.RegisterCounter("http_rate_limited_total", "Requests rejected by the rate limiter")

	// Auth
	m.AuthAttemptsTotal = collector.RegisterCounter("auth_attempts_total", "Authentication attempts", "operation", "result")

	// Catalog
	m.SchemeMutationsTotal = collector.RegisterCounter("scheme_mutations_total", "Scheme catalog mutations", "operation", "applied")
	m.SchemesTotal = collector.RegisterGauge("schemes_total", "Schemes currently in the catalog")

	// Notifier
	m.ScanRunsTotal = collector.RegisterCounter("deadline_scan_runs_total", "Deadline scan runs", "trigger")
	m.ScanDuration = collector.RegisterHistogram("deadline_scan_duration_seconds", "Deadline scan duration", DefaultScanDurationBuckets)
	m.NotificationsCreatedTotal = collector.RegisterCounter("notifications_created_total", "Notifications created", "kind")
	m.NotificationsUnread = collector.RegisterGauge("notifications_unread", "Unread notifications at the last read")

	// Assistant
	m.AssistantRequestsTotal = collector.RegisterCounter("assistant_requests_total", "Assistant replies by source", "source")
	m.BackendRequestDuration = collector.RegisterHistogram("assistant_backend_duration_seconds", "Completion backend call duration", DefaultLLMDurationBuckets, "provider")
	m.BackendFailuresTotal = collector.RegisterCounter("assistant_backend_failures_total", "Completion backend failures", "provider", "reason")

	// Events
	m.EventsPublishedTotal = collector.RegisterCounter("events_published_total", "Events published", "topic")
	m.EventPublishFailuresTotal = collector.RegisterCounter("event_publish_failures_total", "Event publish failures", "topic")

	// System Health
	m.ServiceUptime = collector.RegisterCounter("service_uptime_seconds_total", "Service uptime")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "code")

	return m
}

// Helpers. Every helper tolerates a nil *AppMetrics so components can run
// with metrics disabled.

func RecordHTTPRequest(metrics *AppMetrics, method, route string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	status := strconv.Itoa(statusCode)
	metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordRateLimited(metrics *AppMetrics) {
	if metrics == nil {
		return
	}
	metrics.RateLimitedTotal.WithLabelValues().Inc()
}

func RecordAuthAttempt(metrics *AppMetrics, operation string, success bool) {
	if metrics == nil {
		return
	}
	metrics.AuthAttemptsTotal.WithLabelValues(operation, resultLabel(success)).Inc()
}

func RecordSchemeMutation(metrics *AppMetrics, operation string, applied bool, total int) {
	if metrics == nil {
		return
	}
	metrics.SchemeMutationsTotal.WithLabelValues(operation, strconv.FormatBool(applied)).Inc()
	metrics.SchemesTotal.WithLabelValues().Set(float64(total))
}

func RecordScan(metrics *AppMetrics, trigger string, duration time.Duration, created int) {
	if metrics == nil {
		return
	}
	metrics.ScanRunsTotal.WithLabelValues(trigger).Inc()
	metrics.ScanDuration.WithLabelValues().Observe(duration.Seconds())
	metrics.NotificationsCreatedTotal.WithLabelValues("deadline_reminder").Add(float64(created))
}

func RecordNotificationCreated(metrics *AppMetrics, kind string) {
	if metrics == nil {
		return
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(kind).Inc()
}

func RecordUnread(metrics *AppMetrics, unread int) {
	if metrics == nil {
		return
	}
	metrics.NotificationsUnread.WithLabelValues().Set(float64(unread))
}

func RecordAssistantReply(metrics *AppMetrics, source string) {
	if metrics == nil {
		return
	}
	metrics.AssistantRequestsTotal.WithLabelValues(source).Inc()
}

func RecordBackendCall(metrics *AppMetrics, provider string, duration time.Duration, failureReason string) {
	if metrics == nil {
		return
	}
	metrics.BackendRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if failureReason != "" {
		metrics.BackendFailuresTotal.WithLabelValues(provider, failureReason).Inc()
	}
}

func RecordEventPublish(metrics *AppMetrics, topic string, err error) {
	if metrics == nil {
		return
	}
	if err != nil {
		metrics.EventPublishFailuresTotal.WithLabelValues(topic).Inc()
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(topic).Inc()
}

func RecordError(metrics *AppMetrics, component, code string) {
	if metrics == nil {
		return
	}
	metrics.ErrorsTotal.WithLabelValues(component, code).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

//Personal.AI order the ending
