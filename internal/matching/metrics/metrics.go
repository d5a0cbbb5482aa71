package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the matching module.
type Metrics struct {
	// Candidate pool sizes per match request
	PoolSize prometheus.Histogram

	// Match outcomes by result label
	Outcome *prometheus.CounterVec

	// Scoring + ranking latency
	RankLatency prometheus.Histogram

	// Result cache effectiveness
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates a Metrics instance with all matching module metrics registered.
func New() *Metrics {
	return &Metrics{
		PoolSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "callsync_match_pool_size",
			Help:    "Number of candidate call records considered per match request",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
		}),

		Outcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "callsync_match_outcomes_total",
			Help: "Total match outcomes by result",
		}, []string{"outcome"}), // outcome: "matched", "below_threshold", "no_candidates"

		RankLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "callsync_match_rank_duration_seconds",
			Help:    "Duration of scoring and ranking one candidate pool",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "callsync_match_cache_hits_total",
			Help: "Match results served from the cache",
		}),

		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "callsync_match_cache_misses_total",
			Help: "Match requests that had to compute a fresh result",
		}),
	}
}

// ObservePool records the candidate pool size of one request.
func (m *Metrics) ObservePool(size int) {
	if m != nil {
		m.PoolSize.Observe(float64(size))
	}
}

// IncrementOutcome records a match outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveRankLatency records the scoring and ranking duration.
func (m *Metrics) ObserveRankLatency(d time.Duration) {
	if m != nil {
		m.RankLatency.Observe(d.Seconds())
	}
}

// IncrementCacheHit records a result served from cache.
func (m *Metrics) IncrementCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// IncrementCacheMiss records a freshly computed result.
func (m *Metrics) IncrementCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}
