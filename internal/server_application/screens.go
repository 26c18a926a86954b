package server_application

import (
	"log/slog"
	"sync"

	"github.com/ERRORIK404/calculator_screen/internal/metrics"
	"github.com/ERRORIK404/calculator_screen/internal/screen"
	"github.com/ERRORIK404/calculator_screen/pkg/history"
)

// HistoryFactory returns the history repository of a login.
type HistoryFactory func(login string) history.Repository

type screenEntry struct {
	mu     sync.RWMutex
	closed bool
	loaded sync.Once
	c      *screen.Controller
}

// use runs fn unless the screen has been closed. The first use waits for the
// stored history to load. A close waits for every running fn to return.
func (e *screenEntry) use(fn func(*screen.Controller)) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return false
	}
	e.loaded.Do(e.c.Wait)
	fn(e.c)
	return true
}

// SafeScreenMap holds one screen per login and is safe for concurrent use.
type SafeScreenMap struct {
	Screen_map  map[string]*screenEntry
	ScreenMutex sync.RWMutex

	histories HistoryFactory
	metrics   *metrics.Metrics
	log       *slog.Logger
}

func NewSafeScreenMap(histories HistoryFactory, m *metrics.Metrics, log *slog.Logger) *SafeScreenMap {
	return &SafeScreenMap{
		Screen_map: make(map[string]*screenEntry),
		histories:  histories,
		metrics:    m,
		log:        log,
	}
}

// Use runs fn against the open screen of login, creating it and loading its
// stored history on first use. fn sees the loaded history. fn must not call back into the map for the
// same login.
func (m *SafeScreenMap) Use(login string, fn func(*screen.Controller)) {
	for {
		// A screen closed while we waited is gone from the map; retry opens
		// a fresh one.
		if m.entry(login).use(fn) {
			return
		}
	}
}

// Read returns the screen of login without holding it open.
func (m *SafeScreenMap) Read(login string) *screen.Controller {
	return m.entry(login).c
}

func (m *SafeScreenMap) entry(login string) *screenEntry {
	m.ScreenMutex.RLock()
	e, ok := m.Screen_map[login]
	m.ScreenMutex.RUnlock()
	if ok {
		return e
	}

	m.ScreenMutex.Lock()
	defer m.ScreenMutex.Unlock()
	if e, ok := m.Screen_map[login]; ok {
		return e
	}

	c := screen.New(m.histories(login),
		screen.WithLogger(m.log.With("login", login)),
		screen.WithMetrics(m.metrics),
	)
	c.LoadHistory()
	e = &screenEntry{c: c}
	m.Screen_map[login] = e
	m.log.Info("screen opened", "login", login)
	return e
}

// Delete saves the history of login's screen and tears the screen down once
// the requests using it have returned.
func (m *SafeScreenMap) Delete(login string) bool {
	m.ScreenMutex.RLock()
	e, ok := m.Screen_map[login]
	m.ScreenMutex.RUnlock()
	if !ok {
		return false
	}
	return m.close(login, e)
}

// CloseAll tears every screen down, saving each history first.
func (m *SafeScreenMap) CloseAll() {
	m.ScreenMutex.RLock()
	entries := make(map[string]*screenEntry, len(m.Screen_map))
	for login, e := range m.Screen_map {
		entries[login] = e
	}
	m.ScreenMutex.RUnlock()

	var wg sync.WaitGroup
	for login, e := range entries {
		wg.Add(1)
		go func(login string, e *screenEntry) {
			defer wg.Done()
			m.close(login, e)
		}(login, e)
	}
	wg.Wait()
}

func (m *SafeScreenMap) Len() int {
	m.ScreenMutex.RLock()
	defer m.ScreenMutex.RUnlock()
	return len(m.Screen_map)
}

// close saves and closes e, then drops it from the map while still holding
// it, so a waiting request only ever opens a new screen after the save.
func (m *SafeScreenMap) close(login string, e *screenEntry) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	e.closed = true
	closeScreen(e.c)

	m.ScreenMutex.Lock()
	if m.Screen_map[login] == e {
		delete(m.Screen_map, login)
	}
	m.ScreenMutex.Unlock()

	m.log.Info("screen closed", "login", login)
	return true
}

func closeScreen(c *screen.Controller) {
	// Let a pending load land before saving, so the save does not wipe it.
	c.Wait()
	c.SaveHistory()
	c.Wait()
	c.Close()
}
