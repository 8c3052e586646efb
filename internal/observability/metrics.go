package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "asp_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	Uploads        prometheus.Counter
	UploadErrors   *prometheus.CounterVec // labels: reason={empty,missing_column,malformed,invalid_date,too_large,no_file}
	RecordsLoaded  prometheus.Histogram
	DateIssues     prometheus.Counter
	DatasetsActive prometheus.Gauge

	Computations        prometheus.Counter
	ComputationErrors   prometheus.Counter
	ComputationDuration prometheus.Histogram

	ProtectedAreasLoaded prometheus.Gauge

	// Snapshot publishing.
	SnapshotPublish *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Uploads,
		m.UploadErrors,
		m.RecordsLoaded,
		m.DateIssues,
		m.DatasetsActive,
		m.Computations,
		m.ComputationErrors,
		m.ComputationDuration,
		m.ProtectedAreasLoaded,
		m.SnapshotPublish,
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
		Uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Occurrence files accepted.",
		}),
		UploadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_errors_total",
			Help:      "Rejected uploads by reason.",
		}, []string{"reason"}),
		RecordsLoaded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Cleaned occurrence records per uploaded file.",
			Buckets:   []float64{10, 100, 1000, 5000, 10000, 50000, 100000, 500000},
		}),
		DateIssues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "date_issues_total",
			Help:      "Records kept with an unparseable eventDate.",
		}),
		DatasetsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "datasets_in_session",
			Help:      "Uploaded datasets currently held in memory.",
		}),
		Computations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Dashboard computations completed.",
		}),
		ComputationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computation_errors_total",
			Help:      "Dashboard computations that failed.",
		}),
		ComputationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "computation_duration_seconds",
			Help:      "Duration of one filter and aggregation pass.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		ProtectedAreasLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "protected_areas_loaded",
			Help:      "Protected-area polygons loaded at startup.",
		}),
		SnapshotPublish: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_publish_total",
			Help:      "Dashboard snapshots published to Kafka by outcome.",
		}, []string{"outcome"}),
	}
}
