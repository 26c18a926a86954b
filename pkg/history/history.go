// Package history defines the expression history item and the repository
// port the screen persists it through.
package history

import (
	"context"
	"slices"
	"sync"
)

// Item pairs an expression's text with its computed result.
type Item struct {
	Expression string `json:"expression"`
	Result     int    `json:"result"`
}

// Repository stores the ordered list of past calculations.
type Repository interface {
	// GetAll returns the stored items in order, or an empty slice.
	GetAll(ctx context.Context) ([]Item, error)

	// SetAll replaces the whole stored collection.
	SetAll(ctx context.Context, items []Item) error
}

// Memory is an in-process Repository.
type Memory struct {
	mu    sync.RWMutex
	items []Item
}

var _ Repository = (*Memory)(nil)

func NewMemory(items ...Item) *Memory {
	return &Memory{items: slices.Clone(items)}
}

func (m *Memory) GetAll(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]Item, len(m.items))
	copy(items, m.items)
	return items, nil
}

func (m *Memory) SetAll(ctx context.Context, items []Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = slices.Clone(items)
	return nil
}
