// Package server_application hosts calculator screens over HTTP and gRPC,
// one screen per authenticated login.
package server_application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	models "github.com/ERRORIK404/calculator_screen/pkg/db_models"
	hashing "github.com/ERRORIK404/calculator_screen/pkg/hashing"
	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
	tokenization "github.com/ERRORIK404/calculator_screen/pkg/tokenization"
)

// Users stores accounts. database.DB implements it.
type Users interface {
	CreateUser(ctx context.Context, login, hashpassword string) error
	GetUser(ctx context.Context, login string) (*models.User, error)
}

type Application struct {
	Users    Users
	Screens  *SafeScreenMap
	Secret   string
	TokenTTL time.Duration
	Log      *slog.Logger
}

func (a *Application) Register(ctx context.Context, login, password string) error {
	if login == "" {
		return locerr.ErrEmptyLogin
	}
	hashpassword, err := hashing.HashPassword(password)
	if err != nil {
		return err
	}
	if err := a.Users.CreateUser(ctx, login, hashpassword); err != nil {
		return err
	}
	a.Log.Info("user registered", "login", login)
	return nil
}

// Login checks the credentials and issues a token.
func (a *Application) Login(ctx context.Context, login, password string) (string, error) {
	if login == "" {
		return "", locerr.ErrEmptyLogin
	}
	user, err := a.Users.GetUser(ctx, login)
	if err != nil {
		return "", err
	}
	if err := hashing.CheckPassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, locerr.ErrInvalidCredentials) {
			a.Log.Error("password check failed", "login", login, "error", err)
		}
		return "", locerr.ErrInvalidCredentials
	}
	return tokenization.GenerateToken(login, a.Secret, a.TokenTTL)
}

func (a *Application) Authenticate(token string) (string, error) {
	return tokenization.CheckToken(token, a.Secret)
}
