package expression

import (
	"fmt"

	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
)

// Operator is one of the four binary operators a calculator key can emit.
type Operator int

const (
	Add Operator = iota + 1
	Subtract
	Multiply
	Divide
)

// Operators lists every supported operator in keypad order.
var Operators = []Operator{Add, Subtract, Multiply, Divide}

func (o Operator) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	default:
		return ""
	}
}

func (o Operator) String() string {
	if s := o.Symbol(); s != "" {
		return s
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Valid reports whether o belongs to the fixed operator set.
func (o Operator) Valid() bool {
	return o.Symbol() != ""
}

// Apply reduces two operands. Division truncates toward zero.
func (o Operator) Apply(left, right int) (int, error) {
	switch o {
	case Add:
		return left + right, nil
	case Subtract:
		return left - right, nil
	case Multiply:
		return left * right, nil
	case Divide:
		if right == 0 {
			return 0, locerr.ErrDivisionByZero
		}
		return left / right, nil
	default:
		return 0, fmt.Errorf("%w: %d", locerr.ErrUnknownOperator, int(o))
	}
}

// ParseOperator maps a symbol such as "+" to its Operator.
func ParseOperator(symbol string) (Operator, error) {
	for _, op := range Operators {
		if op.Symbol() == symbol {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", locerr.ErrUnknownOperator, symbol)
}
