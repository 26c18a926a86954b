package screen

import (
	"encoding/json"
	"fmt"

	"github.com/ERRORIK404/calculator_screen/pkg/history"
)

// ViewEvent is a one-shot notification for the presentation layer.
type ViewEvent int

const (
	IncompleteExpressionError ViewEvent = iota + 1
	DivisionByZeroError
)

func (e ViewEvent) String() string {
	switch e {
	case IncompleteExpressionError:
		return "incomplete_expression"
	case DivisionByZeroError:
		return "division_by_zero"
	default:
		return fmt.Sprintf("ViewEvent(%d)", int(e))
	}
}

func (e ViewEvent) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *ViewEvent) UnmarshalText(text []byte) error {
	switch string(text) {
	case "incomplete_expression":
		*e = IncompleteExpressionError
	case "division_by_zero":
		*e = DivisionByZeroError
	default:
		return fmt.Errorf("unknown view event %q", text)
	}
	return nil
}

// State is a point-in-time copy of what the screen shows. Event carries the
// one-shot event consumed together with the snapshot, if any.
type State struct {
	Display     string         `json:"display"`
	HistoryOpen bool           `json:"history_open"`
	Histories   []history.Item `json:"histories"`
	Event       *ViewEvent     `json:"event,omitempty"`
}

var _ json.Marshaler = State{}

// MarshalJSON keeps "histories" an array when there are none.
func (s State) MarshalJSON() ([]byte, error) {
	type plain State
	if s.Histories == nil {
		s.Histories = []history.Item{}
	}
	return json.Marshal(plain(s))
}
