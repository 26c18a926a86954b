package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ERRORIK404/calculator_screen/database"
	"github.com/ERRORIK404/calculator_screen/internal/adapters/redis"
	"github.com/ERRORIK404/calculator_screen/internal/server_application"
	"github.com/ERRORIK404/calculator_screen/pkg/config"
	"github.com/ERRORIK404/calculator_screen/pkg/history"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openHistories returns the per-login history repositories of the
// configured backend.
func openHistories(ctx context.Context, cfg *config.Config, db *database.DB, log *slog.Logger) (server_application.HistoryFactory, io.Closer, error) {
	switch cfg.HistoryBackend {
	case config.BackendSQLite:
		return func(login string) history.Repository { return db.History(login) }, closerFunc(func() error { return nil }), nil

	case config.BackendRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.RedisTTL))
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Info("history backend", "backend", cfg.HistoryBackend, "addr", cfg.RedisAddr)
		return store.History, store, nil

	default:
		var mu sync.Mutex
		repos := make(map[string]*history.Memory)
		log.Warn("history backend keeps nothing across restarts", "backend", cfg.HistoryBackend)
		return func(login string) history.Repository {
			mu.Lock()
			defer mu.Unlock()
			if repo, ok := repos[login]; ok {
				return repo
			}
			repo := history.NewMemory()
			repos[login] = repo
			return repo
		}, closerFunc(func() error { return nil }), nil
	}
}
