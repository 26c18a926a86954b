// Package screen implements the calculator screen state controller: it
// applies key presses to the expression, evaluates it, and publishes the
// display text, the history list and one-shot view events.
package screen

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/ERRORIK404/calculator_screen/internal/logging"
	"github.com/ERRORIK404/calculator_screen/internal/metrics"
	"github.com/ERRORIK404/calculator_screen/pkg/calculator"
	"github.com/ERRORIK404/calculator_screen/pkg/expression"
	"github.com/ERRORIK404/calculator_screen/pkg/history"
	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
	"github.com/ERRORIK404/calculator_screen/pkg/observable"
)

type Option func(*Controller)

func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithContext bounds background history tasks by ctx in addition to Close.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.parent = ctx
	}
}

// Controller is safe for concurrent use. Every mutation runs under one lock,
// and observers are called while it is held, so they must not call back
// into the Controller synchronously.
type Controller struct {
	repo       history.Repository
	calculator calculator.Calculator
	log        *slog.Logger
	metrics    *metrics.Metrics
	parent     context.Context

	mu         sync.Mutex
	expression expression.Expression
	closed     bool

	display     *observable.Value[string]
	historyOpen *observable.Value[bool]
	histories   *observable.Value[[]history.Item]
	events      *observable.Event[ViewEvent]

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup
}

func New(repo history.Repository, opts ...Option) *Controller {
	c := &Controller{
		repo:        repo,
		log:         logging.NewNop(),
		parent:      context.Background(),
		expression:  expression.Empty,
		display:     observable.NewValue(""),
		historyOpen: observable.NewValue(false),
		histories:   observable.NewValue([]history.Item{}),
		events:      observable.NewEvent[ViewEvent](),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(c.parent)
	return c
}

func (c *Controller) Display() observable.Readable[string]           { return c.display }
func (c *Controller) HistoryOpen() observable.Readable[bool]         { return c.historyOpen }
func (c *Controller) Histories() observable.Readable[[]history.Item] { return c.histories }
func (c *Controller) Events() observable.Source[ViewEvent]           { return c.events }

func (c *Controller) AddOperand(operand int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.expression.AppendOperand(operand)
	if err != nil {
		c.reject(err, "operand", operand)
		return
	}
	c.setExpression(next)
}

func (c *Controller) AddOperator(op expression.Operator) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.expression.AppendOperator(op)
	if err != nil {
		c.reject(err, "operator", op.String())
		return
	}
	c.setExpression(next)
}

func (c *Controller) RemoveLast() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setExpression(c.expression.RemoveLast())
}

// Calculate evaluates the current expression. An expression with nothing to
// apply yet (empty, a lone operand, or a trailing operator) emits
// IncompleteExpressionError and leaves the state as it was.
func (c *Controller) Calculate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.expression.HasOperator() {
		c.fail(locerr.ErrIncompleteExpression)
		return
	}

	result, err := c.calculator.Calculate(c.expression)
	if err != nil {
		c.fail(err)
		return
	}

	text := c.expression.String()
	items := append(slices.Clone(c.histories.Get()), history.Item{Expression: text, Result: result})
	c.histories.Set(items)
	c.setExpression(expression.Of(result))

	c.metrics.Calculated(metrics.OutcomeSuccess)
	c.log.Debug("calculated", "expression", text, "result", result)
}

func (c *Controller) ToggleHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.historyOpen.Set(!c.historyOpen.Get())
}

// LoadHistory replaces the in-memory history with the stored one in the
// background. Nothing is published if the controller is closed first.
func (c *Controller) LoadHistory() {
	c.launch(metrics.OperationLoad, func(ctx context.Context) error {
		items, err := c.repo.GetAll(ctx)
		if err != nil {
			return err
		}
		if items == nil {
			items = []history.Item{}
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if err := ctx.Err(); err != nil {
			return err
		}
		c.histories.Set(items)
		c.log.Debug("history loaded", "items", len(items))
		return nil
	})
}

// SaveHistory persists the history as it is at call time, in the background.
func (c *Controller) SaveHistory() {
	items := slices.Clone(c.histories.Get())
	c.launch(metrics.OperationSave, func(ctx context.Context) error {
		if err := c.repo.SetAll(ctx, items); err != nil {
			return err
		}
		c.log.Debug("history saved", "items", len(items))
		return nil
	})
}

// Wait blocks until all background history tasks have finished.
func (c *Controller) Wait() {
	c.tasks.Wait()
}

// Close cancels pending background tasks and waits for them to return.
// The controller keeps answering key presses but starts no new tasks.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.tasks.Wait()
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Snapshot returns the current state and consumes the pending view event.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		Display:     c.display.Get(),
		HistoryOpen: c.historyOpen.Get(),
		Histories:   slices.Clone(c.histories.Get()),
	}
	if event, ok := c.events.Take(); ok {
		state.Event = &event
	}
	return state
}

func (c *Controller) launch(operation string, task func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.ctx.Err() != nil {
		c.log.Warn("history task skipped, screen closed", "operation", operation)
		return
	}

	c.tasks.Add(1)
	go func() {
		defer c.tasks.Done()

		err := task(c.ctx)
		c.metrics.History(operation, err)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			c.log.Debug("history task cancelled", "operation", operation)
		default:
			c.log.Error("history task failed", "operation", operation, "error", err)
		}
	}()
}

func (c *Controller) setExpression(e expression.Expression) {
	c.expression = e
	c.display.Set(e.String())
}

func (c *Controller) reject(err error, key string, value any) {
	c.metrics.Rejected(err.Error())
	c.log.Debug("input rejected", key, value, "expression", c.expression.String(), "error", err)
}

func (c *Controller) fail(err error) {
	switch {
	case errors.Is(err, locerr.ErrDivisionByZero):
		c.metrics.Calculated(metrics.OutcomeDivisionByZero)
		c.events.Send(DivisionByZeroError)
	default:
		if !errors.Is(err, locerr.ErrIncompleteExpression) {
			c.log.Error("unexpected calculation error", "expression", c.expression.String(), "error", err)
		}
		c.metrics.Calculated(metrics.OutcomeIncomplete)
		c.events.Send(IncompleteExpressionError)
	}
}
