package metrics_test

import (
	"errors"
	"testing"

	"github.com/ERRORIK404/calculator_screen/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Calculated(metrics.OutcomeSuccess)
	m.Calculated(metrics.OutcomeSuccess)
	m.Calculated(metrics.OutcomeIncomplete)
	m.Rejected("operand after an operand")
	m.History(metrics.OperationSave, nil)
	m.History(metrics.OperationLoad, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Calculations.WithLabelValues(metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calculations.WithLabelValues(metrics.OutcomeIncomplete)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryOperations.WithLabelValues(metrics.OperationSave, metrics.StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryOperations.WithLabelValues(metrics.OperationLoad, metrics.StatusError)))

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.Calculated(metrics.OutcomeSuccess)
		m.Rejected("x")
		m.History(metrics.OperationLoad, nil)
	})
}
