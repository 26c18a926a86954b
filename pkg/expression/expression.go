// Package expression holds the immutable token sequence typed on the
// calculator keypad.
package expression

import (
	"slices"
	"strconv"
	"strings"

	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
)

// Token is either an integer operand or an operator.
type Token struct {
	Operand  int
	Operator Operator
}

func OperandToken(n int) Token        { return Token{Operand: n} }
func OperatorToken(op Operator) Token { return Token{Operator: op} }
func (t Token) IsOperator() bool      { return t.Operator != 0 }

func (t Token) String() string {
	if t.IsOperator() {
		return t.Operator.Symbol()
	}
	return strconv.Itoa(t.Operand)
}

// Expression is an immutable value: every mutation returns a new Expression
// and leaves the receiver untouched. Tokens alternate starting with an operand.
type Expression struct {
	tokens []Token
}

var Empty = Expression{}

// Of returns a single-operand expression.
func Of(n int) Expression {
	return Expression{tokens: []Token{OperandToken(n)}}
}

// AppendOperand rejects an operand directly after another operand and
// returns the receiver unchanged in that case.
func (e Expression) AppendOperand(n int) (Expression, error) {
	if e.EndsWithOperand() {
		return e, locerr.ErrOperandAfterOperand
	}
	return e.with(OperandToken(n)), nil
}

// AppendOperator accepts an operator only after an operand.
func (e Expression) AppendOperator(op Operator) (Expression, error) {
	if !op.Valid() {
		return e, locerr.ErrUnknownOperator
	}
	if !e.EndsWithOperand() {
		return e, locerr.ErrOperatorWithoutOperand
	}
	return e.with(OperatorToken(op)), nil
}

// RemoveLast drops the final token. Removing from Empty is a no-op.
func (e Expression) RemoveLast() Expression {
	if e.IsEmpty() {
		return e
	}
	return Expression{tokens: e.tokens[: len(e.tokens)-1 : len(e.tokens)-1]}
}

func (e Expression) with(t Token) Expression {
	tokens := make([]Token, 0, len(e.tokens)+1)
	tokens = append(tokens, e.tokens...)
	return Expression{tokens: append(tokens, t)}
}

func (e Expression) Len() int      { return len(e.tokens) }
func (e Expression) IsEmpty() bool { return len(e.tokens) == 0 }

// Tokens returns a copy of the token sequence.
func (e Expression) Tokens() []Token {
	return slices.Clone(e.tokens)
}

func (e Expression) EndsWithOperand() bool {
	return len(e.tokens) > 0 && !e.tokens[len(e.tokens)-1].IsOperator()
}

func (e Expression) HasOperator() bool {
	return slices.ContainsFunc(e.tokens, Token.IsOperator)
}

// String renders the canonical text form: no whitespace, operators as symbols.
func (e Expression) String() string {
	var sb strings.Builder
	for _, t := range e.tokens {
		sb.WriteString(t.String())
	}
	return sb.String()
}
