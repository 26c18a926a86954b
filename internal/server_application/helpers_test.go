package server_application

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ERRORIK404/calculator_screen/database"
	"github.com/ERRORIK404/calculator_screen/internal/logging"
	"github.com/ERRORIK404/calculator_screen/internal/metrics"
	"github.com/ERRORIK404/calculator_screen/pkg/history"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type memoryHistories struct {
	mu    sync.Mutex
	repos map[string]*history.Memory
}

func (m *memoryHistories) Of(login string) history.Repository {
	m.mu.Lock()
	defer m.mu.Unlock()
	repo, ok := m.repos[login]
	if !ok {
		repo = history.NewMemory()
		m.repos[login] = repo
	}
	return repo
}

func (m *memoryHistories) Items(t *testing.T, login string) []history.Item {
	t.Helper()
	items, err := m.Of(login).GetAll(context.Background())
	require.NoError(t, err)
	return items
}

func newTestApp(t *testing.T) (*Application, *memoryHistories, *prometheus.Registry) {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "calculator.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg := prometheus.NewRegistry()
	log := logging.NewNop()
	histories := &memoryHistories{repos: make(map[string]*history.Memory)}
	app := &Application{
		Users:    db,
		Screens:  NewSafeScreenMap(histories.Of, metrics.New(reg), log),
		Secret:   "test-secret",
		TokenTTL: time.Minute,
		Log:      log,
	}
	t.Cleanup(app.Screens.CloseAll)
	return app, histories, reg
}
