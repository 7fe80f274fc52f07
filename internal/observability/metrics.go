package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges shared by the
// cleaner and the dashboard server.
type Metrics struct {
	// Cleaner metrics.
	RowsRead      prometheus.Counter
	RowsKept      prometheus.Counter
	RowsDropped   *prometheus.CounterVec // labels: reason
	CleanDuration prometheus.Histogram
	RowsPublished prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}

	// Dashboard metrics.
	DatasetLoads        *prometheus.CounterVec // labels: outcome={success,missing,error}
	DatasetLoadDuration prometheus.Histogram
	DatasetRows         prometheus.Gauge
	HTTPRequests        *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsKept,
		m.RowsDropped,
		m.CleanDuration,
		m.RowsPublished,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.DatasetLoads,
		m.DatasetLoadDuration,
		m.DatasetRows,
		m.HTTPRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mci_dashboard",
			Name:      "clean_rows_read_total",
			Help:      "Total raw dataset rows read by the cleaner.",
		}),
		RowsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mci_dashboard",
			Name:      "clean_rows_kept_total",
			Help:      "Total rows that passed the validation predicate.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mci_dashboard",
			Name:      "clean_rows_dropped_total",
			Help:      "Rows dropped by the cleaner, by reason.",
		}, []string{"reason"}),
		CleanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mci_dashboard",
			Name:      "clean_duration_seconds",
			Help:      "Duration of a complete clean run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		RowsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mci_dashboard",
			Name:      "clean_rows_published_total",
			Help:      "Cleaned rows published to the Kafka sink topic.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mci_dashboard",
			Name:      "geocode_requests_total",
			Help:      "Reverse-geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mci_dashboard",
			Name:      "geocode_cache_total",
			Help:      "Reverse-geocoding cache lookups by result.",
		}, []string{"result"}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mci_dashboard",
			Name:      "dataset_loads_total",
			Help:      "Cleaned dataset loads by the dashboard, by outcome.",
		}, []string{"outcome"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mci_dashboard",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a cleaned dataset load.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mci_dashboard",
			Name:      "dataset_rows",
			Help:      "Row count of the most recently loaded cleaned dataset.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mci_dashboard",
			Name:      "http_requests_total",
			Help:      "Dashboard HTTP requests by route and status.",
		}, []string{"route", "status"}),
	}
}
