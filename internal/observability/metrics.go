package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// cleaning pipeline and the query service.
type Metrics struct {
	RowsRead    prometheus.Counter
	RowsDropped *prometheus.CounterVec // label: reason={bad_timestamp,bad_coordinates,duplicate}
	RowsStored  prometheus.Counter

	CleanDuration prometheus.Histogram
	DatasetRows   prometheus.Gauge

	QueriesTotal  prometheus.Counter
	QueryDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sighting_etl",
			Name:      "rows_read_total",
			Help:      "Total raw rows read from the source CSV.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sighting_etl",
			Name:      "rows_dropped_total",
			Help:      "Rows rejected during normalization, by reason.",
		}, []string{"reason"}),
		RowsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sighting_etl",
			Name:      "rows_stored_total",
			Help:      "Canonical rows written to the store.",
		}),
		CleanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sighting_etl",
			Name:      "clean_duration_seconds",
			Help:      "Duration of a complete extract-normalize-load run.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sighting_etl",
			Name:      "dataset_rows",
			Help:      "Number of records in the in-memory dataset cache.",
		}),
		QueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sighting_etl",
			Name:      "queries_total",
			Help:      "Total filter-and-aggregate queries served.",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sighting_etl",
			Name:      "query_duration_seconds",
			Help:      "Duration of one filter-and-aggregate pass.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsDropped,
		m.RowsStored,
		m.CleanDuration,
		m.DatasetRows,
		m.QueriesTotal,
		m.QueryDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsRead:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sighting_etl", Name: "rows_read_total"}),
		RowsDropped:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sighting_etl", Name: "rows_dropped_total"}, []string{"reason"}),
		RowsStored:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sighting_etl", Name: "rows_stored_total"}),
		CleanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sighting_etl", Name: "clean_duration_seconds"}),
		DatasetRows:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sighting_etl", Name: "dataset_rows"}),
		QueriesTotal:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sighting_etl", Name: "queries_total"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sighting_etl", Name: "query_duration_seconds"}),
	}
}
