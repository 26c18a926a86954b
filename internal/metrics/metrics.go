// Package metrics holds the prometheus collectors of the calculator screen.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Calculation outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeIncomplete     = "incomplete"
	OutcomeDivisionByZero = "division_by_zero"
)

// History operations and their status labels.
const (
	OperationLoad = "load"
	OperationSave = "save"
	StatusOK      = "ok"
	StatusError   = "error"
)

type Metrics struct {
	Calculations      *prometheus.CounterVec
	RejectedInputs    *prometheus.CounterVec
	HistoryOperations *prometheus.CounterVec
}

// New creates the collectors and registers them with reg when reg is not nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calculator_calculations_total",
				Help: "Total number of calculate requests by outcome",
			},
			[]string{"outcome"},
		),
		RejectedInputs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calculator_rejected_inputs_total",
				Help: "Total number of key presses rejected by the expression builder",
			},
			[]string{"reason"},
		),
		HistoryOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calculator_history_operations_total",
				Help: "Total number of history load and save tasks by status",
			},
			[]string{"operation", "status"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Calculations, m.RejectedInputs, m.HistoryOperations)
	}
	return m
}

func (m *Metrics) Calculated(outcome string) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Rejected(reason string) {
	if m == nil {
		return
	}
	m.RejectedInputs.WithLabelValues(reason).Inc()
}

func (m *Metrics) History(operation string, err error) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.HistoryOperations.WithLabelValues(operation, status).Inc()
}
