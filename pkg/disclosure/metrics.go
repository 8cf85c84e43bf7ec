package disclosure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the disclosure coordinator.
type Metrics struct {
	requests      *prometheus.CounterVec
	callbacks     *prometheus.CounterVec
	proofFailures prometheus.Counter
	expired       prometheus.Counter
	pending       prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered on the default
// registerer.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ladder_disclosure_requests_total",
				Help: "Total number of disclosure requests by result",
			},
			[]string{"result"},
		),

		callbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ladder_disclosure_callbacks_total",
				Help: "Total number of oracle callbacks by result",
			},
			[]string{"result"},
		),

		proofFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ladder_disclosure_proof_failures_total",
				Help: "Total number of callbacks rejected on proof verification",
			},
		),

		expired: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ladder_disclosure_expired_total",
				Help: "Total number of pending requests expired by the sweeper",
			},
		),

		pending: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ladder_disclosure_pending",
				Help: "Number of disclosure requests awaiting a callback",
			},
		),
	}
}

// RecordRequest records a disclosure request attempt and its outcome.
func (m *Metrics) RecordRequest(result string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(result).Inc()
	if result == "ok" {
		m.pending.Inc()
	}
}

// RecordCallback records an oracle callback and its outcome.
func (m *Metrics) RecordCallback(result string) {
	if m == nil {
		return
	}
	m.callbacks.WithLabelValues(result).Inc()
	if result == "ok" {
		m.pending.Dec()
	}
	if result == "proof_invalid" {
		m.proofFailures.Inc()
	}
}

// RecordExpired records pending entries expired by the sweeper.
func (m *Metrics) RecordExpired(count int) {
	if m == nil {
		return
	}
	m.expired.Add(float64(count))
	m.pending.Sub(float64(count))
}
