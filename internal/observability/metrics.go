package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nutrition_api"

// Outcome label values.
const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Reference table state, set once at startup.
	TableRows   prometheus.Gauge
	TableLoaded prometheus.Gauge

	Calculations *prometheus.CounterVec // labels: outcome={success,not_found,invalid}
	FoodListings *prometheus.CounterVec // labels: outcome={success,unavailable}

	// Result publishing.
	ResultsPublished prometheus.Counter
	PublishErrors    prometheus.Counter

	RequestDuration *prometheus.HistogramVec // labels: route, code
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.TableRows,
		m.TableLoaded,
		m.Calculations,
		m.FoodListings,
		m.ResultsPublished,
		m.PublishErrors,
		m.RequestDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		TableRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reference_table_rows",
			Help:      "Rows in the loaded reference table.",
		}),
		TableLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reference_table_loaded",
			Help:      "1 when the reference table loaded with data, 0 in degraded mode.",
		}),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Nutrition calculations by outcome.",
		}, []string{"outcome"}),
		FoodListings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "food_listings_total",
			Help:      "Food name listing requests by outcome.",
		}, []string{"outcome"}),
		ResultsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_published_total",
			Help:      "Calculation results written to the results topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed writes to the results topic.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request duration in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route", "code"}),
	}
}
