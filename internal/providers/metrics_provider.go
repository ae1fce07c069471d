package providers

import (
	"artfolio/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(area string)
	IncCacheMisses(area string)
	ObservePersistenceDuration(duration time.Duration)
	IncPersistenceFailures()
	SetThreadsTotal(count int)
}

// PendingWritesCounter reports how many persistence batches are queued
// but not yet applied to the key-value store.
type PendingWritesCounter interface {
	Pending() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	persistenceFailures prometheus.Counter
	threadsTotal        prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(area string) {
	m.cacheHits.WithLabelValues(area).Inc()
}

func (m *MetricsProvider) IncCacheMisses(area string) {
	m.cacheMisses.WithLabelValues(area).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPersistenceFailures() {
	m.persistenceFailures.Inc()
}

func (m *MetricsProvider) SetThreadsTotal(count int) {
	m.threadsTotal.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "artfolio_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "artfolio_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "artfolio_cache_hits_total",
			Help: "Total number of read cache hits per key family",
		}, []string{"area"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "artfolio_cache_misses_total",
			Help: "Total number of read cache misses per key family",
		}, []string{"area"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "artfolio_persistence_duration_seconds",
			Help:    "Duration of persistence batch writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "artfolio_persistence_failures_total",
			Help: "Total number of persistence batches that failed to write",
		}),

		threadsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "artfolio_threads_total",
			Help: "Number of message threads held in memory",
		}),
	}
}

// RegisterPendingWritesGauge exposes the persister queue depth. It is a
// no-op when metrics are disabled.
func RegisterPendingWritesGauge(conf *structures.Config, counter PendingWritesCounter) {
	if !conf.Metrics.Enabled {
		return
	}
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "artfolio_pending_writes",
		Help: "Persistence batches queued but not yet written",
	}, func() float64 {
		return float64(counter.Pending())
	})
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncPersistenceFailures()                          {}
func (n *noopMetrics) SetThreadsTotal(_ int)                            {}
