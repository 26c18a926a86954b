package console

import (
	"context"

	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/ERRORIK404/calculator_screen/pkg/expression"
)

// Screen is what the console drives: a local controller or a remote one.
type Screen interface {
	State(ctx context.Context) (screen.State, error)
	AddOperand(ctx context.Context, operand int) (screen.State, error)
	AddOperator(ctx context.Context, op expression.Operator) (screen.State, error)
	RemoveLast(ctx context.Context) (screen.State, error)
	Calculate(ctx context.Context) (screen.State, error)
	ToggleHistory(ctx context.Context) (screen.State, error)
	LoadHistory(ctx context.Context) error
	SaveHistory(ctx context.Context) error
}

// Local adapts an in-process controller.
type Local struct {
	C *screen.Controller
}

var _ Screen = Local{}

func (l Local) State(context.Context) (screen.State, error) {
	return l.C.Snapshot(), nil
}

func (l Local) AddOperand(_ context.Context, operand int) (screen.State, error) {
	l.C.AddOperand(operand)
	return l.C.Snapshot(), nil
}

func (l Local) AddOperator(_ context.Context, op expression.Operator) (screen.State, error) {
	l.C.AddOperator(op)
	return l.C.Snapshot(), nil
}

func (l Local) RemoveLast(context.Context) (screen.State, error) {
	l.C.RemoveLast()
	return l.C.Snapshot(), nil
}

func (l Local) Calculate(context.Context) (screen.State, error) {
	l.C.Calculate()
	return l.C.Snapshot(), nil
}

func (l Local) ToggleHistory(context.Context) (screen.State, error) {
	l.C.ToggleHistory()
	return l.C.Snapshot(), nil
}

func (l Local) LoadHistory(context.Context) error {
	l.C.LoadHistory()
	return nil
}

func (l Local) SaveHistory(context.Context) error {
	l.C.SaveHistory()
	return nil
}
