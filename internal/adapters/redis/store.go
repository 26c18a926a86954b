package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ERRORIK404/calculator_screen/pkg/history"
	backend "github.com/redis/go-redis/v9"
)

// Store keeps one history list per login in Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of saved histories.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for histories.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "calculator:history:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(login string) string {
	return s.prefix + login
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// History returns the history.Repository of login.
func (s *Store) History(login string) history.Repository {
	return &userHistory{store: s, login: login}
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

type userHistory struct {
	store *Store
	login string
}

func (u *userHistory) GetAll(ctx context.Context) ([]history.Item, error) {
	values, err := u.store.client.LRange(ctx, u.store.key(u.login), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history from redis: %w", err)
	}

	items := make([]history.Item, 0, len(values))
	for _, value := range values {
		var item history.Item
		if err := json.Unmarshal([]byte(value), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// SetAll replaces the list inside MULTI/EXEC so readers never see a partial list.
func (u *userHistory) SetAll(ctx context.Context, items []history.Item) error {
	values := make([]any, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal history item: %w", err)
		}
		values = append(values, data)
	}

	key := u.store.key(u.login)
	_, err := u.store.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.RPush(ctx, key, values...)
			if u.store.ttl > 0 {
				pipe.Expire(ctx, key, u.store.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save history to redis: %w", err)
	}
	return nil
}
