package tokenization

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
)

// GenerateToken signs an HS256 token carrying login, valid for ttl.
func GenerateToken(login, secret string, ttl time.Duration) (string, error) {
	if login == "" {
		return "", locerr.ErrEmptyLogin
	}
	iat := time.Now()
	exp := iat.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"login": login,
		"iat":   iat.Unix(),
		"nbf":   iat.Unix(),
		"exp":   exp.Unix(),
	})
	return token.SignedString([]byte(secret))
}

// CheckToken returns the login of a valid token. Every failure wraps
// locerr.ErrUnauthorized.
func CheckToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: token parsing failed: %v", locerr.ErrUnauthorized, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		login, ok := claims["login"].(string)
		if !ok || login == "" {
			return "", fmt.Errorf("%w: login claim is missing or invalid", locerr.ErrUnauthorized)
		}
		return login, nil
	}

	return "", fmt.Errorf("%w: invalid token", locerr.ErrUnauthorized)
}
