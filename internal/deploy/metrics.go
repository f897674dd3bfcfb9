package deploy

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts deployment and polling outcomes.
type Metrics struct {
	submitResults *prometheus.CounterVec
	pollAttempts  prometheus.Counter
	pollOutcomes  *prometheus.CounterVec
}

// NewMetrics registers the deployment counters with the default registry.
// Re-registration reuses the existing collectors so repeated construction in
// one process is safe.
func NewMetrics() *Metrics {
	m := &Metrics{
		submitResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aibuilder",
			Subsystem: "deploy",
			Name:      "submit_results_total",
			Help:      "Number of deployment submissions by outcome",
		}, []string{"backend", "outcome"}),
		pollAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aibuilder",
			Subsystem: "deploy",
			Name:      "poll_attempts_total",
			Help:      "Number of status queries issued by poll loops",
		}),
		pollOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aibuilder",
			Subsystem: "deploy",
			Name:      "poll_outcomes_total",
			Help:      "Number of completed poll loops by terminal outcome",
		}, []string{"backend", "outcome"}),
	}

	if err := prometheus.Register(m.submitResults); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.submitResults = already.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	if err := prometheus.Register(m.pollAttempts); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.pollAttempts = already.ExistingCollector.(prometheus.Counter)
		}
	}
	if err := prometheus.Register(m.pollOutcomes); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.pollOutcomes = already.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return m
}

func (m *Metrics) recordSubmit(backend, outcome string) {
	if m == nil {
		return
	}
	m.submitResults.With(prometheus.Labels{"backend": backend, "outcome": outcome}).Inc()
}

func (m *Metrics) recordAttempt() {
	if m == nil {
		return
	}
	m.pollAttempts.Inc()
}

func (m *Metrics) recordPollOutcome(backend, outcome string) {
	if m == nil {
		return
	}
	m.pollOutcomes.With(prometheus.Labels{"backend": backend, "outcome": outcome}).Inc()
}
