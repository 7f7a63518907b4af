package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_gen"

// Metrics holds the Prometheus counters, histograms, and gauges for a generation run.
type Metrics struct {
	StationsGenerated prometheus.Counter
	RowsGenerated     prometheus.Counter
	GeneratorRunning  prometheus.Gauge

	GenerationDuration prometheus.Histogram
	WriteDuration      prometheus.Histogram
	OutputFileBytes    prometheus.Gauge
	MemoryEstimate     prometheus.Gauge

	// Secondary sinks.
	ReadingsLoaded *prometheus.CounterVec // labels: sink={kafka,...}
	LoadErrors     *prometheus.CounterVec // labels: sink
}

// NewMetrics creates and registers all generator metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.Collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		StationsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_generated_total",
			Help:      "Total synthetic stations drawn.",
		}),
		RowsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_generated_total",
			Help:      "Total hourly readings generated.",
		}),
		GeneratorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generator_running",
			Help:      "1 while a generation run is in progress, 0 otherwise.",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent drawing stations and readings.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		WriteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "write_duration_seconds",
			Help:      "Time spent encoding and writing the Parquet artifact.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		OutputFileBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_file_bytes",
			Help:      "Size of the last written Parquet artifact.",
		}),
		MemoryEstimate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_estimate_bytes",
			Help:      "Estimated in-memory size of the generated table.",
		}),
		ReadingsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_loaded_total",
			Help:      "Readings delivered to secondary sinks.",
		}, []string{"sink"}),
		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      "Failed deliveries to secondary sinks.",
		}, []string{"sink"}),
	}
}

// Collectors returns every metric, for registering on a custom registry.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.StationsGenerated,
		m.RowsGenerated,
		m.GeneratorRunning,
		m.GenerationDuration,
		m.WriteDuration,
		m.OutputFileBytes,
		m.MemoryEstimate,
		m.ReadingsLoaded,
		m.LoadErrors,
	}
}
