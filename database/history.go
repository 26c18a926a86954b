package database

import (
	"context"
	"fmt"

	models "github.com/ERRORIK404/calculator_screen/pkg/db_models"
	"github.com/ERRORIK404/calculator_screen/pkg/history"
)

// ReplaceUserHistory swaps the stored history of login for entries in one transaction.
func (h *DB) ReplaceUserHistory(ctx context.Context, login string, entries []models.HistoryEntry) error {
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM history WHERE user_login = ?", login); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO history (user_login, position, expression, result) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.ExecContext(ctx, login, entry.Position, entry.Expression, entry.Result); err != nil {
			return fmt.Errorf("failed to insert history entry: %w", err)
		}
	}
	return tx.Commit()
}

func (h *DB) GetUserHistoryByLogin(ctx context.Context, login string) ([]models.HistoryEntry, error) {
	rows, err := h.DB.QueryContext(ctx,
		"SELECT id, user_login, position, expression, result FROM history WHERE user_login = ? ORDER BY position",
		login,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.UserLogin, &entry.Position, &entry.Expression, &entry.Result); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// UserHistory is the history.Repository of a single login.
type UserHistory struct {
	db    *DB
	login string
}

var _ history.Repository = (*UserHistory)(nil)

func (h *DB) History(login string) *UserHistory {
	return &UserHistory{db: h, login: login}
}

func (u *UserHistory) GetAll(ctx context.Context) ([]history.Item, error) {
	entries, err := u.db.GetUserHistoryByLogin(ctx, u.login)
	if err != nil {
		return nil, fmt.Errorf("failed to load history of %s: %w", u.login, err)
	}
	items := make([]history.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, history.Item{Expression: entry.Expression, Result: entry.Result})
	}
	return items, nil
}

func (u *UserHistory) SetAll(ctx context.Context, items []history.Item) error {
	entries := make([]models.HistoryEntry, 0, len(items))
	for i, item := range items {
		entries = append(entries, models.HistoryEntry{
			UserLogin:  u.login,
			Position:   i,
			Expression: item.Expression,
			Result:     item.Result,
		})
	}
	if err := u.db.ReplaceUserHistory(ctx, u.login, entries); err != nil {
		return fmt.Errorf("failed to save history of %s: %w", u.login, err)
	}
	return nil
}
