package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the risk service.
type Metrics struct {
	SimulationsTotal   prometheus.Counter
	SimulationErrors   *prometheus.CounterVec // labels: reason={validation,geocode,internal}
	SimulationDuration prometheus.Histogram
	RiskCategory       *prometheus.CounterVec // labels: category={low,moderate,high,severe}

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeEnabled  prometheus.Gauge

	// Result stream metrics.
	ResultsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SimulationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pfas_riskscope",
			Name:      "simulations_total",
			Help:      "Total simulations completed successfully.",
		}),
		SimulationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pfas_riskscope",
			Name:      "simulation_errors_total",
			Help:      "Rejected or failed simulation requests by reason.",
		}, []string{"reason"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pfas_riskscope",
			Name:      "simulation_duration_seconds",
			Help:      "Duration of one simulation call, engine only.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		RiskCategory: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pfas_riskscope",
			Name:      "risk_category_total",
			Help:      "Simulation outcomes by risk category.",
		}, []string{"category"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pfas_riskscope",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pfas_riskscope",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pfas_riskscope",
			Name:      "geocode_enabled",
			Help:      "1 when reverse geocoding is enabled, 0 otherwise.",
		}),
		ResultsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pfas_riskscope",
			Name:      "results_published_total",
			Help:      "Simulation results published to the results topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pfas_riskscope",
			Name:      "publish_errors_total",
			Help:      "Failed publishes to the results topic.",
		}),
	}

	prometheus.MustRegister(
		m.SimulationsTotal,
		m.SimulationErrors,
		m.SimulationDuration,
		m.RiskCategory,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeEnabled,
		m.ResultsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SimulationsTotal:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "pfas_riskscope", Name: "simulations_total"}),
		SimulationErrors:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "pfas_riskscope", Name: "simulation_errors_total"}, []string{"reason"}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "pfas_riskscope", Name: "simulation_duration_seconds"}),
		RiskCategory:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "pfas_riskscope", Name: "risk_category_total"}, []string{"category"}),
		GeocodeRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "pfas_riskscope", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "pfas_riskscope", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "pfas_riskscope", Name: "geocode_enabled"}),
		ResultsPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "pfas_riskscope", Name: "results_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "pfas_riskscope", Name: "publish_errors_total"}),
	}
}
