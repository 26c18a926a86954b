package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRepositoryContract verifies that a Repository implementation adheres
// to the interface contract. repo must start empty.
func RunRepositoryContract(t *testing.T, repo Repository) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		items, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("SetAll and GetAll keep order", func(t *testing.T) {
		want := []Item{
			{Expression: "2+3", Result: 5},
			{Expression: "5*4", Result: 20},
			{Expression: "-7/2", Result: -3},
		}
		require.NoError(t, repo.SetAll(ctx, want))

		got, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("SetAll replaces", func(t *testing.T) {
		require.NoError(t, repo.SetAll(ctx, []Item{{Expression: "1+1", Result: 2}}))
		require.NoError(t, repo.SetAll(ctx, []Item{{Expression: "9-1", Result: 8}}))

		got, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Item{{Expression: "9-1", Result: 8}}, got)
	})

	t.Run("SetAll empty clears", func(t *testing.T) {
		require.NoError(t, repo.SetAll(ctx, []Item{{Expression: "1+1", Result: 2}}))
		require.NoError(t, repo.SetAll(ctx, nil))

		got, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Caller slice is not retained", func(t *testing.T) {
		items := []Item{{Expression: "3*3", Result: 9}}
		require.NoError(t, repo.SetAll(ctx, items))
		items[0].Result = 0

		got, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 9, got[0].Result)
		require.NoError(t, repo.SetAll(ctx, nil))
	})
}
