// Package console reads calculator keys from a line-oriented input and
// prints the screen after every line.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/ERRORIK404/calculator_screen/pkg/expression"
)

const Help = `keys (space separated, several per line):
  <integer>        add an operand
  + - * /          add an operator
  =                calculate
  <  del           remove the last token
  h  history       show or hide the history
  load  save       load or save the history
  help             this text
  quit  exit       leave`

// Run processes input until EOF, a quit key or ctx is done.
func Run(ctx context.Context, in io.Reader, out io.Writer, s Screen) error {
	state, err := s.State(ctx)
	if err != nil {
		return err
	}
	render(out, state)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, key := range strings.Fields(scanner.Text()) {
			next, quit, err := press(ctx, out, s, key)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			if next != nil {
				state = *next
				if state.Event != nil {
					fmt.Fprintf(out, "! %s\n", Message(*state.Event))
				}
			}
		}
		render(out, state)
	}
	return scanner.Err()
}

// press applies one key. A nil state means the key did not touch the screen.
func press(ctx context.Context, out io.Writer, s Screen, key string) (*screen.State, bool, error) {
	var (
		state screen.State
		err   error
	)

	switch strings.ToLower(key) {
	case "quit", "exit":
		return nil, true, nil
	case "help", "?":
		fmt.Fprintln(out, Help)
		return nil, false, nil
	case "=":
		state, err = s.Calculate(ctx)
	case "<", "del":
		state, err = s.RemoveLast(ctx)
	case "h", "history":
		state, err = s.ToggleHistory(ctx)
	case "load":
		err = s.LoadHistory(ctx)
		return nil, false, err
	case "save":
		err = s.SaveHistory(ctx)
		return nil, false, err
	default:
		if op, opErr := expression.ParseOperator(key); opErr == nil {
			state, err = s.AddOperator(ctx, op)
			break
		}
		n, convErr := strconv.Atoi(key)
		if convErr != nil {
			fmt.Fprintf(out, "unknown key %q, type help\n", key)
			return nil, false, nil
		}
		state, err = s.AddOperand(ctx, n)
	}
	if err != nil {
		return nil, false, err
	}
	return &state, false, nil
}

// Message is the text shown for a view event.
func Message(e screen.ViewEvent) string {
	switch e {
	case screen.IncompleteExpressionError:
		return "incomplete expression"
	case screen.DivisionByZeroError:
		return "division by zero"
	default:
		return e.String()
	}
}

func render(out io.Writer, state screen.State) {
	fmt.Fprintf(out, "[%s]\n", state.Display)
	if !state.HistoryOpen {
		return
	}
	if len(state.Histories) == 0 {
		fmt.Fprintln(out, "  (no history)")
		return
	}
	for _, item := range state.Histories {
		fmt.Fprintf(out, "  %s = %d\n", item.Expression, item.Result)
	}
}
