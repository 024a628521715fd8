// Package metrics provides Prometheus metrics for the Ranky bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the bot.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Command metrics - the bot's unit of work
	commandsParsed    *prometheus.CounterVec
	commandsCompleted *prometheus.CounterVec
	commandErrors     *prometheus.CounterVec

	// Store metrics - channel-history scans and writes
	storeScans          prometheus.Counter
	historyFetchLatency prometheus.Histogram
	rankingsCreated     prometheus.Counter
	rankingUpdates      prometheus.Counter
	accountsAdded       prometheus.Counter

	// Riot lookup metrics
	riotRequests       *prometheus.CounterVec
	riotRequestLatency *prometheus.HistogramVec
	riotRequestErrors  *prometheus.CounterVec

	// HTTP metrics for the ops endpoint
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry so the default Go runtime collectors stay out of the way.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ranky",
		subsystem:        "bot",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics registers all metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.commandsParsed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "commands_parsed_total",
			Help:      "Total number of recognized commands by kind",
		},
		[]string{"kind"},
	)

	m.commandsCompleted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "commands_completed_total",
			Help:      "Total number of commands that finished without error, by kind",
		},
		[]string{"kind"},
	)

	m.commandErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "command_errors_total",
			Help:      "Total number of commands that ended in a reported error, by kind",
		},
		[]string{"kind"},
	)

	m.storeScans = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_scans_total",
		Help:      "Total number of channel-history scans performed by the store",
	})

	m.historyFetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_fetch_latency_milliseconds",
		Help:      "Histogram of chat history fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rankingsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_created_total",
		Help:      "Total number of ranking messages posted",
	})

	m.rankingUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_updates_total",
		Help:      "Total number of in-place ranking message edits",
	})

	m.accountsAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "accounts_added_total",
		Help:      "Total number of account ids appended to rankings",
	})

	m.riotRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "riot_requests_total",
			Help:      "Total number of Riot API requests by endpoint",
		},
		[]string{"endpoint"},
	)

	m.riotRequestLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "riot_request_latency_milliseconds",
			Help:      "Riot API request latency in milliseconds by endpoint",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint"},
	)

	m.riotRequestErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "riot_request_errors_total",
			Help:      "Total number of failed Riot API requests by endpoint",
		},
		[]string{"endpoint"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests to the ops endpoint",
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

// Command metrics functions.

// RecordCommandParsed increments the parsed-commands counter for a kind.
func RecordCommandParsed(kind string) {
	globalManager.commandsParsed.WithLabelValues(kind).Inc()
}

// RecordCommandCompleted increments the completed-commands counter for a kind.
func RecordCommandCompleted(kind string) {
	globalManager.commandsCompleted.WithLabelValues(kind).Inc()
}

// RecordCommandError increments the command error counter for a kind.
func RecordCommandError(kind string) {
	globalManager.commandErrors.WithLabelValues(kind).Inc()
}

// Store metrics functions.

// RecordStoreScan increments the history-scan counter.
func RecordStoreScan() {
	globalManager.storeScans.Inc()
}

// RecordHistoryFetchLatency records one history fetch round trip.
func RecordHistoryFetchLatency(latencyMs float64) {
	globalManager.historyFetchLatency.Observe(latencyMs)
}

// RecordRankingCreated increments the created-rankings counter.
func RecordRankingCreated() {
	globalManager.rankingsCreated.Inc()
}

// RecordRankingUpdate increments the in-place edit counter.
func RecordRankingUpdate() {
	globalManager.rankingUpdates.Inc()
}

// RecordAccountsAdded adds the number of account ids appended in one command.
func RecordAccountsAdded(n int) {
	globalManager.accountsAdded.Add(float64(n))
}

// Riot lookup metrics functions.

// RecordRiotRequest records a Riot API round trip for an endpoint.
func RecordRiotRequest(endpoint string, latencyMs float64) {
	globalManager.riotRequests.WithLabelValues(endpoint).Inc()
	globalManager.riotRequestLatency.WithLabelValues(endpoint).Observe(latencyMs)
}

// RecordRiotRequestError increments the Riot error counter for an endpoint.
func RecordRiotRequestError(endpoint string) {
	globalManager.riotRequestErrors.WithLabelValues(endpoint).Inc()
}

// HTTP metrics functions.

// RecordHTTPRequest counts an ops-endpoint request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an ops-endpoint request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by the bot.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
