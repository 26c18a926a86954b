package database

import (
	"context"
	"database/sql"
	"errors"

	sqlite "github.com/mattn/go-sqlite3"

	models "github.com/ERRORIK404/calculator_screen/pkg/db_models"
	locerr "github.com/ERRORIK404/calculator_screen/pkg/local_errors"
)

func (h *DB) CreateUser(ctx context.Context, login, hashpassword string) error {
	if login == "" {
		return locerr.ErrEmptyLogin
	}
	_, err := h.DB.ExecContext(ctx,
		"INSERT INTO users (login, password_hash) VALUES (?, ?)",
		login, hashpassword,
	)
	var sqliteErr sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite.ErrConstraintUnique {
		return locerr.ErrUserExists
	}
	return err
}

// GetUser returns locerr.ErrInvalidCredentials when no such login exists.
func (h *DB) GetUser(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := h.DB.QueryRowContext(ctx,
		"SELECT id, login, password_hash FROM users WHERE login = ?",
		login,
	).Scan(&user.ID, &user.Login, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, locerr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
