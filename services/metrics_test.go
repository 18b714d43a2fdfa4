package services

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveEvaluation(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	started := time.Now()

	m.ObserveEvaluation("Residential", started, nil)
	m.ObserveEvaluation("Residential", started, nil)
	m.ObserveEvaluation("Commercial", started, ErrNoMatchingRule)
	m.ObserveEvaluation("unknown", started, ErrInvalidInput)
	m.ObserveEvaluation("Industrial", started, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("Residential", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("Commercial", "no_matching_rule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("unknown", "invalid_input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("Industrial", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestMetrics_ObserveReport(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveReport("pdf")
	m.ObserveReport("pdf")
	m.ObserveReport("xlsx")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Reports.WithLabelValues("pdf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reports.WithLabelValues("xlsx")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEvaluation("Residential", time.Now(), nil)
		m.ObserveReport("pdf")
	})
}
