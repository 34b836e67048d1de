package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes Prometheus collectors for the HTTP layer and the hacker
// application pipeline. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	errors        *prometheus.CounterVec
	stageFailures *prometheus.CounterVec
	notifications *prometheus.CounterVec
	events        *prometheus.CounterVec
}

// NewMetrics registers all collectors on a dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of error responses by error code",
		}, []string{"method", "route", "code"}),
		stageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hacker_pipeline_stage_failures_total",
			Help: "Total number of pipeline runs stopped by a stage",
		}, []string{"pipeline", "stage", "code"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hacker_status_notifications_total",
			Help: "Total number of status emails attempted",
		}, []string{"status", "outcome"}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hacker_events_total",
			Help: "Total number of hacker domain events observed",
		}, []string{"type"}),
	}
}

// RecordRequest counts a completed request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordError counts an error response.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(method, route, code).Inc()
}

// RecordStageFailure counts a pipeline run stopped by stage.
func (m *Metrics) RecordStageFailure(pipeline, stage, code string) {
	if m == nil {
		return
	}
	m.stageFailures.WithLabelValues(pipeline, stage, code).Inc()
}

// RecordNotification counts one delivery attempt. outcome is "sent",
// "refused" or "error".
func (m *Metrics) RecordNotification(status, outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(status, outcome).Inc()
}

// RecordEvent counts a published domain event.
func (m *Metrics) RecordEvent(eventType string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(eventType).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests and custom exporters.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
