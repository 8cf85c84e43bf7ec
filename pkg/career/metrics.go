package career

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the lifecycle service.
type Metrics struct {
	profilesCreated prometheus.Counter
	simulations     *prometheus.CounterVec
	simDuration     prometheus.Histogram
}

// NewMetrics creates a Metrics instance registered on the default
// registerer.
func NewMetrics() *Metrics {
	return &Metrics{
		profilesCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ladder_career_profiles_created_total",
				Help: "Total number of encrypted profiles created",
			},
		),

		simulations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ladder_career_simulations_total",
				Help: "Total number of simulation attempts by result",
			},
			[]string{"result"},
		),

		simDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ladder_career_simulation_duration_seconds",
				Help:    "Duration of full oblivious simulations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
			},
		),
	}
}

// RecordProfileCreated records a profile creation.
func (m *Metrics) RecordProfileCreated() {
	if m == nil {
		return
	}
	m.profilesCreated.Inc()
}

// RecordSimulation records a simulation attempt and its outcome.
func (m *Metrics) RecordSimulation(result string, seconds float64) {
	if m == nil {
		return
	}
	m.simulations.WithLabelValues(result).Inc()
	if result == "ok" {
		m.simDuration.Observe(seconds)
	}
}
