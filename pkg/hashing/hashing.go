package hashing

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
)

// HashPassword returns locerr.ErrPasswordTooLong for passwords bcrypt cannot
// hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", locerr.ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword returns locerr.ErrInvalidCredentials on mismatch. A password
// too long to hash never matches.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return locerr.ErrInvalidCredentials
	}
	return err
}
