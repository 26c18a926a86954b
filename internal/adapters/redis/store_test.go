package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/ERRORIK404/calculator_screen/internal/adapters/redis"
	"github.com/ERRORIK404/calculator_screen/pkg/history"
	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	history.RunRepositoryContract(t, store.History("alice"))
}

func TestRedisStore_KeysAndTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t, redis.WithPrefix("test:"), redis.WithTTL(time.Hour))

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.History("bob").SetAll(ctx, []history.Item{{Expression: "2+3", Result: 5}}))

	assert.True(t, mr.Exists("test:bob"))
	assert.Equal(t, time.Hour, mr.TTL("test:bob"))

	values, err := mr.List("test:bob")
	require.NoError(t, err)
	assert.Equal(t, []string{`{"expression":"2+3","result":5}`}, values)

	items, err := store.History("carol").GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRedisStore_CorruptItem(t *testing.T) {
	store, mr := newStore(t)
	_, err := mr.Push("calculator:history:dave", "not json")
	require.NoError(t, err)

	_, err = store.History("dave").GetAll(context.Background())
	assert.Error(t, err)
}
