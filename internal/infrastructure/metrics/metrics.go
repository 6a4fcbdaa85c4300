package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the dashboard service.
type Metrics struct {
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	CacheInvalidations prometheus.Counter
	UpstreamDuration   *prometheus.HistogramVec
}

// New registers the collectors on reg and returns the handle.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pharmaudit",
			Subsystem: "querycache",
			Name:      "hits_total",
			Help:      "Reads served from a fresh cache entry without an upstream call.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pharmaudit",
			Subsystem: "querycache",
			Name:      "misses_total",
			Help:      "Reads that required an upstream fetch (cold, stale or errored entry).",
		}),
		CacheInvalidations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "pharmaudit",
			Subsystem: "querycache",
			Name:      "invalidations_total",
			Help:      "Cache entries removed after a successful mutation.",
		}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pharmaudit",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of calls to the remote inventory service.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
	}
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}

// CacheHit increments the hit counter; nil-safe for tests without metrics.
func (m *Metrics) CacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// CacheMiss increments the miss counter.
func (m *Metrics) CacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// CacheInvalidation adds n removed entries.
func (m *Metrics) CacheInvalidation(n int) {
	if m != nil && n > 0 {
		m.CacheInvalidations.Add(float64(n))
	}
}
