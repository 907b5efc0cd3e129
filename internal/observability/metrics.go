package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, gauges, and histograms for the
// load-join-serve path.
type Metrics struct {
	RowsLoaded  *prometheus.CounterVec // labels: source={match,weather}
	RowsDropped *prometheus.CounterVec // labels: source, reason={unparseable_date,bad_value}
	MergedRows  prometheus.Gauge

	SnapshotCache  *prometheus.CounterVec // labels: result={hit,miss}
	SnapshotLoads  prometheus.Counter
	LoadDuration   prometheus.Histogram
	FilterRequests prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsDropped,
		m.MergedRows,
		m.SnapshotCache,
		m.SnapshotLoads,
		m.LoadDuration,
		m.FilterRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchweather",
			Name:      "rows_loaded_total",
			Help:      "Rows accepted into a normalized table, by source file.",
		}, []string{"source"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchweather",
			Name:      "rows_dropped_total",
			Help:      "Rows excluded during normalization, by source file and reason.",
		}, []string{"source", "reason"}),
		MergedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "matchweather",
			Name:      "merged_rows",
			Help:      "Row count of the current merged table snapshot.",
		}),
		SnapshotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchweather",
			Name:      "snapshot_cache_total",
			Help:      "Snapshot accesses by cache result.",
		}, []string{"result"}),
		SnapshotLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchweather",
			Name:      "snapshot_loads_total",
			Help:      "Full load-and-join cycles performed.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "matchweather",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete load-validate-join cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		FilterRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchweather",
			Name:      "filter_requests_total",
			Help:      "Dashboard requests that applied a filter to the merged table.",
		}),
	}
}
