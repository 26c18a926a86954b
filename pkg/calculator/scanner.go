package calculator

import (
	"strconv"
	"strings"

	"github.com/ERRORIK404/calculator_screen/pkg/expression"
	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
)

// Scan splits expression text into operand and operator tokens.
// A '-' at the start or right after an operator is read as a sign.
func Scan(text string) ([]expression.Token, error) {
	tokens := []expression.Token{}
	numberBuffer := strings.Builder{}

	flush := func() error {
		if numberBuffer.Len() == 0 {
			return nil
		}
		n, err := strconv.Atoi(numberBuffer.String())
		if err != nil {
			return locerr.ErrIncorrectExpression
		}
		tokens = append(tokens, expression.OperandToken(n))
		numberBuffer.Reset()
		return nil
	}

	for _, char := range text {
		switch {
		case IsDigit(char):
			numberBuffer.WriteRune(char)
		case char == '-' && numberBuffer.Len() == 0 && expectsOperand(tokens):
			numberBuffer.WriteRune(char)
		case char == '+' || char == '-' || char == '*' || char == '/':
			if err := flush(); err != nil {
				return nil, err
			}
			if expectsOperand(tokens) {
				return nil, locerr.ErrIncorrectExpression
			}
			op, err := expression.ParseOperator(string(char))
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, expression.OperatorToken(op))
		default:
			return nil, locerr.ErrInvalidCharacter
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func expectsOperand(tokens []expression.Token) bool {
	return len(tokens) == 0 || tokens[len(tokens)-1].IsOperator()
}

func IsDigit(char rune) bool {
	return char >= '0' && char <= '9'
}
