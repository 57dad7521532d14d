// Package metrics provides Prometheus metrics for the framing service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Latency buckets in milliseconds. Statcast day downloads routinely take
// tens of seconds, so the tail goes well past the prometheus defaults.
var defaultLatencyBuckets = []float64{5, 25, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000} //nolint:gochecknoglobals

// Manager owns every series exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Upstream sources (statcast, people)
	upstreamLatency *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	upstreamRetries *prometheus.CounterVec

	// Pipeline
	pitchesFetched      prometheus.Counter
	pitchesCalled       prometheus.Counter
	catcherGamesEmitted prometheus.Counter
	catcherGamesSkipped prometheus.Counter
	nameLookupFailures  prometheus.Counter
	aggregationLatency  prometheus.Histogram
	lastCatcherCount    prometheus.Gauge

	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "framing",
		subsystem:        "catchers",
		histogramBuckets: defaultLatencyBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.upstreamLatency = auto.NewHistogramVec(
		m.histogramOpts("upstream_latency_milliseconds", "Latency of upstream calls by source", m.histogramBuckets),
		[]string{"source"},
	)
	m.upstreamErrors = auto.NewCounterVec(
		m.counterOpts("upstream_errors_total", "Failed upstream calls by source"),
		[]string{"source"},
	)
	m.upstreamRetries = auto.NewCounterVec(
		m.counterOpts("upstream_retries_total", "Retried upstream calls by source"),
		[]string{"source"},
	)

	m.pitchesFetched = auto.NewCounter(m.counterOpts("pitches_fetched_total", "Raw pitch rows received from the pitch data source"))
	m.pitchesCalled = auto.NewCounter(m.counterOpts("pitches_called_total", "Pitch rows eligible for framing analysis"))
	m.catcherGamesEmitted = auto.NewCounter(m.counterOpts("catcher_games_emitted_total", "Catcher-game records produced"))
	m.catcherGamesSkipped = auto.NewCounter(m.counterOpts("catcher_games_skipped_total", "Catcher-game pairs dropped for insufficient sample"))
	m.nameLookupFailures = auto.NewCounter(m.counterOpts("name_lookup_failures_total", "Player name lookups that fell back to a placeholder"))
	m.aggregationLatency = auto.NewHistogram(
		m.histogramOpts("aggregation_latency_milliseconds", "Time spent classifying and aggregating one date", m.histogramBuckets),
	)
	m.lastCatcherCount = auto.NewGauge(m.gaugeOpts("last_catcher_games", "Catcher-game records in the most recent aggregation"))

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordUpstreamLatency records the latency of one upstream call.
func RecordUpstreamLatency(source string, latencyMs float64) {
	globalManager.upstreamLatency.WithLabelValues(source).Observe(latencyMs)
}

// RecordUpstreamError counts a failed upstream call.
func RecordUpstreamError(source string) {
	globalManager.upstreamErrors.WithLabelValues(source).Inc()
}

// RecordUpstreamRetry counts a retried upstream call.
func RecordUpstreamRetry(source string) {
	globalManager.upstreamRetries.WithLabelValues(source).Inc()
}

// RecordPitchesFetched adds to the raw pitch counter.
func RecordPitchesFetched(n int) {
	globalManager.pitchesFetched.Add(float64(n))
}

// RecordPitchesCalled adds to the eligible pitch counter.
func RecordPitchesCalled(n int) {
	globalManager.pitchesCalled.Add(float64(n))
}

// RecordCatcherGameEmitted counts one produced catcher-game record.
func RecordCatcherGameEmitted() {
	globalManager.catcherGamesEmitted.Inc()
}

// RecordCatcherGameSkipped counts one catcher-game pair below the sample threshold.
func RecordCatcherGameSkipped() {
	globalManager.catcherGamesSkipped.Inc()
}

// RecordNameLookupFailure counts a placeholder name substitution.
func RecordNameLookupFailure() {
	globalManager.nameLookupFailures.Inc()
}

// RecordAggregationLatency records aggregation time in milliseconds.
func RecordAggregationLatency(latencyMs float64) {
	globalManager.aggregationLatency.Observe(latencyMs)
}

// UpdateLastCatcherCount sets the number of records in the latest aggregation.
func UpdateLastCatcherCount(count int) {
	globalManager.lastCatcherCount.Set(float64(count))
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
