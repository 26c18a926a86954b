// Package calculator evaluates expression text strictly left to right.
package calculator

import (
	"github.com/ERRORIK404/calculator_screen/pkg/expression"
	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
)

// Calculator is stateless; the zero value is ready to use.
type Calculator struct{}

// Calculate evaluates the canonical text of e.
func (Calculator) Calculate(e expression.Expression) (int, error) {
	return Evaluate(e.String())
}

// Evaluate folds the tokens of text from left to right without precedence,
// so "2+3*4" is 20. Text that is empty or ends with an operator yields
// ErrIncompleteExpression.
func Evaluate(text string) (int, error) {
	tokens, err := Scan(text)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].IsOperator() {
		return 0, locerr.ErrIncompleteExpression
	}

	result := tokens[0].Operand
	for i := 1; i+1 < len(tokens); i += 2 {
		result, err = tokens[i].Operator.Apply(result, tokens[i+1].Operand)
		if err != nil {
			return 0, err
		}
	}
	return result, nil
}
