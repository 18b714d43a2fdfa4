package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the feasibility collectors so tests can use a private registry.
type Metrics struct {
	Evaluations *prometheus.CounterVec
	Duration    prometheus.Histogram
	Reports     *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feasibility_evaluations_total",
			Help: "Plot evaluations by building type and outcome.",
		}, []string{"building_type", "outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feasibility_evaluation_duration_seconds",
			Help:    "Time spent evaluating one plot.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feasibility_reports_total",
			Help: "Rendered reports by format.",
		}, []string{"format"}),
	}
	reg.MustRegister(m.Evaluations, m.Duration, m.Reports)
	return m
}

// ObserveEvaluation records one evaluation; m may be nil.
func (m *Metrics) ObserveEvaluation(buildingType string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidInput):
		outcome = "invalid_input"
	case errors.Is(err, ErrNoMatchingRule):
		outcome = "no_matching_rule"
	default:
		outcome = "error"
	}
	m.Evaluations.WithLabelValues(buildingType, outcome).Inc()
	m.Duration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveReport(format string) {
	if m == nil {
		return
	}
	m.Reports.WithLabelValues(format).Inc()
}
