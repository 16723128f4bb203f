package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	Mutations         *prometheus.CounterVec
	RecomputeRows     prometheus.Histogram
	RecomputeDuration prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Mutations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankbook_ledger_mutations_total",
				Help: "Total number of ledger mutations by operation",
			},
			[]string{"operation"},
		),
		RecomputeRows: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankbook_recompute_rows",
			Help:    "Number of rows rewritten per balance recompute",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
		}),
		RecomputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankbook_recompute_duration_seconds",
			Help:    "Duration of balance recomputes",
			Buckets: prometheus.DefBuckets,
		}),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankbook_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankbook_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankbook_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bankbook_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankbook_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankbook_cache_hits_total",
			Help: "Total account cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankbook_cache_misses_total",
			Help: "Total account cache misses",
		}),
	}
}

// IncMutation counts a committed ledger mutation.
func (m *Metrics) IncMutation(operation string) {
	m.Mutations.WithLabelValues(operation).Inc()
}

// ObserveRecompute records the size and duration of a balance recompute.
func (m *Metrics) ObserveRecompute(rows int, seconds float64) {
	m.RecomputeRows.Observe(float64(rows))
	m.RecomputeDuration.Observe(seconds)
}
