// Package metrics provides Prometheus metrics for the inmatch service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus metrics for the matching service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core matching metrics
	scoresComputed        prometheus.Counter
	eligibilityRejections prometheus.Counter
	scoringDuration       prometheus.Histogram
	summaryRuns           prometheus.Counter
	summaryDuration       prometheus.Histogram

	// Store metrics
	listingsTotal prometheus.Gauge
	profilesTotal prometheus.Gauge
	storeErrors   prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "inmatch",
		subsystem:        "matching",
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

	m.scoresComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_computed_total",
		Help:      "Total number of listing/profile compatibility scores computed",
	})

	m.eligibilityRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "eligibility_rejections_total",
		Help:      "Total number of listings excluded by the hard eligibility filter",
	})

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_milliseconds",
		Help:      "Histogram of batch ranking duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.summaryRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "summary_runs_total",
		Help:      "Total number of population-wide match summary runs",
	})

	m.summaryDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "summary_duration_milliseconds",
		Help:      "Histogram of population-wide summary duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.listingsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "listings_total",
		Help:      "Number of listings currently stored",
	})

	m.profilesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profiles_total",
		Help:      "Number of search profiles currently stored",
	})

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of repository errors",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
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

// GetRegistry returns the registry metrics are exposed from.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordScore counts one computed compatibility score.
func RecordScore() {
	globalManager.scoresComputed.Inc()
}

// RecordEligibilityRejection counts one listing excluded by the hard filter.
func RecordEligibilityRejection() {
	globalManager.eligibilityRejections.Inc()
}

// RecordScoringDuration records the duration of one batch ranking run.
func RecordScoringDuration(ms float64) {
	globalManager.scoringDuration.Observe(ms)
}

// RecordSummaryRun records one population-wide summary run and its duration.
func RecordSummaryRun(ms float64) {
	globalManager.summaryRuns.Inc()
	globalManager.summaryDuration.Observe(ms)
}

// UpdateListingsTotal sets the stored-listings gauge.
func UpdateListingsTotal(n int) {
	globalManager.listingsTotal.Set(float64(n))
}

// UpdateProfilesTotal sets the stored-profiles gauge.
func UpdateProfilesTotal(n int) {
	globalManager.profilesTotal.Set(float64(n))
}

// RecordStoreError counts one repository error.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}
