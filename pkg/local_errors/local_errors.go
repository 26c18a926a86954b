package localerrors

import (
	"errors"
)

// Expression building and evaluation
var (
	ErrIncompleteExpression   = errors.New("incomplete expression")
	ErrOperandAfterOperand    = errors.New("operand cannot follow an operand")
	ErrOperatorWithoutOperand = errors.New("operator must follow an operand")
	ErrUnknownOperator        = errors.New("unknown operator")
	ErrInvalidCharacter       = errors.New("invalid character")
	ErrIncorrectExpression    = errors.New("incorrect expression")
	ErrDivisionByZero         = errors.New("division by zero")
)

// Hosting
var (
	ErrEmptyLogin         = errors.New("empty login")
	ErrPasswordTooLong    = errors.New("password longer than 72 bytes")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUnauthorized       = errors.New("unauthorized")
)
