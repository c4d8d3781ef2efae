package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metric names.
const (
	MetricHTTPRequestsTotal      = "http_server_requests_total"
	MetricHTTPRequestDuration    = "http_server_request_duration_seconds"
	MetricHTTPActiveRequests     = "http_server_active_requests"
	MetricOverdueSweepsTotal     = "overdue_sweeps_total"
	MetricOverdueMarkedTotal     = "overdue_transactions_marked_total"
	MetricRecordCacheLookupTotal = "record_cache_lookups_total"
	MetricDomainEventsTotal      = "domain_events_total"
)

// HTTPDurationBuckets are latency buckets in seconds for directory requests.
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// MetricsConfig holds configuration for the Prometheus registry.
type MetricsConfig struct {
	Namespace        string
	HistogramBuckets []float64
	// IncludeRuntime registers the Go runtime and process collectors.
	IncludeRuntime bool
}

// DefaultMetricsConfig returns default configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:        "borrowtrack",
		HistogramBuckets: HTTPDurationBuckets,
		IncludeRuntime:   true,
	}
}

// Metrics owns a private Prometheus registry with the server's collectors.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
	sweepsTotal     *prometheus.CounterVec
	overdueMarked   prometheus.Counter
	cacheLookups    *prometheus.CounterVec
	domainEvents    *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if len(cfg.HistogramBuckets) == 0 {
		cfg.HistogramBuckets = HTTPDurationBuckets
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricHTTPRequestsTotal,
			Help:      "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      MetricHTTPRequestDuration,
			Help:      "HTTP request latency distribution in seconds.",
			Buckets:   cfg.HistogramBuckets,
		}, []string{"method", "route"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      MetricHTTPActiveRequests,
			Help:      "Number of HTTP requests currently in flight.",
		}),
		sweepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricOverdueSweepsTotal,
			Help:      "Overdue sweeps run, by result.",
		}, []string{"result"}),
		overdueMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricOverdueMarkedTotal,
			Help:      "Transactions moved from borrowed to overdue by the sweeper.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricRecordCacheLookupTotal,
			Help:      "Record cache lookups, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		domainEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricDomainEventsTotal,
			Help:      "Domain events published, by type.",
		}, []string{"type"}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.activeRequests,
		m.sweepsTotal,
		m.overdueMarked,
		m.cacheLookups,
		m.domainEvents,
	)
	if cfg.IncludeRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RequestStarted increments the in-flight gauge.
func (m *Metrics) RequestStarted() {
	m.activeRequests.Inc()
}

// RequestFinished records a completed request. route is the matched route template.
func (m *Metrics) RequestFinished(method, route, status string, elapsed time.Duration) {
	m.activeRequests.Dec()
	m.requestsTotal.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordSweep records one overdue sweep and how many transactions it marked.
func (m *Metrics) RecordSweep(marked int, err error) {
	if err != nil {
		m.sweepsTotal.WithLabelValues("error").Inc()
		return
	}
	m.sweepsTotal.WithLabelValues("ok").Inc()
	m.overdueMarked.Add(float64(marked))
}

// RecordCacheLookup records a record-cache hit or miss for kind ("customer" or "item").
func (m *Metrics) RecordCacheLookup(kind string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheLookups.WithLabelValues(kind, outcome).Inc()
}

// RecordDomainEvent counts one published domain event.
func (m *Metrics) RecordDomainEvent(eventType string) {
	m.domainEvents.WithLabelValues(eventType).Inc()
}
