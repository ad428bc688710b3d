package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Match pipeline.
	matchesProcessed   prometheus.Counter
	matchesDuplicate   prometheus.Counter
	matchesRejected    prometheus.Counter
	ratingUpdateTime   prometheus.Histogram
	ratingDelta        prometheus.Histogram
	playersTotal       prometheus.Gauge

	// Balancer.
	balanceRequests     prometheus.Counter
	balanceCombinations prometheus.Histogram
	balanceBudgetHits   prometheus.Counter

	// Queue and workers.
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueEnqueueErrs prometheus.Counter
	workerCount      prometheus.Gauge
	workerErrors     prometheus.Counter

	// HTTP.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a private registry, so default Go runtime collectors
// never collide with ours.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scrim",
		subsystem:        "rating",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	auto := promauto.With(m.registry)

	m.matchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "matches_processed_total",
		Help: "Total matches fully processed through the rating engine",
	})
	m.matchesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "matches_duplicate_total",
		Help: "Total duplicate match submissions detected",
	})
	m.matchesRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "matches_rejected_total",
		Help: "Total match submissions rejected (validation or backpressure)",
	})
	m.ratingUpdateTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "rating_update_milliseconds",
		Help:    "Histogram of per-match rating update latency in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.ratingDelta = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "rating_delta_points",
		Help:    "Histogram of absolute per-player rating changes (public scale)",
		Buckets: []float64{1, 2, 5, 10, 20, 40, 80, 160, 320},
	})
	m.playersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "players_total",
		Help: "Number of rated players tracked in the store",
	})

	m.balanceRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "balance_requests_total",
		Help: "Total team balancing requests served",
	})
	m.balanceCombinations = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "balance_combinations_tried",
		Help:    "Histogram of partition combinations evaluated per balance request",
		Buckets: []float64{1, 10, 35, 70, 126, 252, 924, 3432, 10000},
	})
	m.balanceBudgetHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "balance_budget_exhausted_total",
		Help: "Total balance requests that hit the combination budget",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Current size of the match queue",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Configured capacity of the match queue",
	})
	m.queueEnqueueErrs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total",
		Help: "Total failed enqueue attempts (full or closed queue)",
	})
	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Number of match processing workers",
	})
	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Total worker processing errors",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "Total HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_milliseconds",
		Help:    "Histogram of HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Handler returns an http.Handler exposing the service registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// Package-level recording helpers against the global manager.

func RecordMatchProcessed()           { globalManager.matchesProcessed.Inc() }
func RecordMatchDuplicate()           { globalManager.matchesDuplicate.Inc() }
func RecordMatchRejected()            { globalManager.matchesRejected.Inc() }
func RecordRatingUpdateTime(ms float64) { globalManager.ratingUpdateTime.Observe(ms) }
func RecordRatingDelta(points float64)  { globalManager.ratingDelta.Observe(points) }
func UpdatePlayersTotal(n int)          { globalManager.playersTotal.Set(float64(n)) }

func RecordBalanceRequest()              { globalManager.balanceRequests.Inc() }
func RecordBalanceCombinations(n int)    { globalManager.balanceCombinations.Observe(float64(n)) }
func RecordBalanceBudgetExhausted()      { globalManager.balanceBudgetHits.Inc() }

func UpdateQueueSize(n int)     { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }
func RecordQueueEnqueueError()  { globalManager.queueEnqueueErrs.Inc() }
func UpdateWorkerCount(n int)   { globalManager.workerCount.Set(float64(n)) }
func RecordWorkerError()        { globalManager.workerErrors.Inc() }

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records the duration of one HTTP request.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}
