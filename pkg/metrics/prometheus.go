// Package metrics provides Prometheus metrics for the rankboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus instruments for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion
	eventsIngested prometheus.Counter
	datasetSize    prometheus.Gauge

	// Refresh cycles
	refreshCycles   prometheus.Counter
	refreshDuration prometheus.Histogram
	lastRefreshUnix prometheus.Gauge
	brokersRanked   prometheus.Gauge
	rankShifts      *prometheus.CounterVec

	// Upstream feed
	feedFetches   *prometheus.CounterVec
	feedFallbacks prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a custom registry, keeping default Go collectors out.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton metrics registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton metrics manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all instruments.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rankboard",
		subsystem:        "board",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.eventsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_ingested_total",
		Help:      "Total number of raw events accepted into the dataset",
	})

	m.datasetSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_size",
		Help:      "Number of raw events currently held",
	})

	m.refreshCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycles_total",
		Help:      "Total number of completed aggregation cycles",
	})

	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_milliseconds",
		Help:      "Histogram of aggregation cycle duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.lastRefreshUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix time of the last completed aggregation cycle",
	})

	m.brokersRanked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "brokers_ranked",
		Help:      "Number of brokers in the latest ranking snapshot",
	})

	m.rankShifts = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "rank_shifts_total",
			Help:      "Rank movements observed between consecutive cycles",
		},
		[]string{"ranking", "direction"},
	)

	m.feedFetches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "feed_fetches_total",
			Help:      "Upstream webhook fetch attempts by outcome",
		},
		[]string{"outcome"},
	)

	m.feedFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_fallbacks_total",
		Help:      "Times the built-in sample dataset was loaded after feed failures",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers on the global manager.

// RecordEventsIngested counts raw events accepted into the dataset.
func RecordEventsIngested(n int) {
	globalManager.eventsIngested.Add(float64(n))
}

// UpdateDatasetSize sets the current dataset size gauge.
func UpdateDatasetSize(n int) {
	globalManager.datasetSize.Set(float64(n))
}

// RecordRefreshCycle counts one completed aggregation cycle and its duration.
func RecordRefreshCycle(durationMs float64) {
	globalManager.refreshCycles.Inc()
	globalManager.refreshDuration.Observe(durationMs)
}

// UpdateLastRefresh stamps the last completed cycle.
func UpdateLastRefresh(unixSeconds float64) {
	globalManager.lastRefreshUnix.Set(unixSeconds)
}

// UpdateBrokersRanked sets the ranked-broker gauge.
func UpdateBrokersRanked(n int) {
	globalManager.brokersRanked.Set(float64(n))
}

// RecordRankShift counts one rank movement for a ranking type.
func RecordRankShift(ranking, direction string) {
	globalManager.rankShifts.WithLabelValues(ranking, direction).Inc()
}

// RecordFeedFetch counts one upstream fetch attempt by outcome.
func RecordFeedFetch(outcome string) {
	globalManager.feedFetches.WithLabelValues(outcome).Inc()
}

// RecordFeedFallback counts one sample-dataset fallback.
func RecordFeedFallback() {
	globalManager.feedFallbacks.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry exposes the custom registry for the /healthz handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
