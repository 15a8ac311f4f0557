package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(calls *atomic.Int32, result []domain.Property, err error) ListLoader {
	return func(context.Context) ([]domain.Property, error) {
		calls.Add(1)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func TestPropertyCache_List(t *testing.T) {
	ctx := context.Background()
	p1 := domain.Property{ID: uuid.New(), Title: "one"}
	p2 := domain.Property{ID: uuid.New(), Title: "two"}

	t.Run("loads once and serves from memory after", func(t *testing.T) {
		var calls atomic.Int32
		c := NewPropertyCache(countingLoader(&calls, []domain.Property{p1, p2}, nil))

		first, err := c.List(ctx)
		require.NoError(t, err)
		assert.Len(t, first, 2)

		second, err := c.List(ctx)
		require.NoError(t, err)
		assert.Len(t, second, 2)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("concurrent cold reads share one fetch", func(t *testing.T) {
		var calls atomic.Int32
		c := NewPropertyCache(countingLoader(&calls, []domain.Property{p1}, nil))

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := c.List(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("loader failure propagates and leaves the cache invalid", func(t *testing.T) {
		var calls atomic.Int32
		c := NewPropertyCache(countingLoader(&calls, nil, assert.AnError))

		_, err := c.List(ctx)
		assert.ErrorIs(t, err, assert.AnError)

		_, ok := c.Snapshot()
		assert.False(t, ok)

		_, err = c.List(ctx)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		var calls atomic.Int32
		c := NewPropertyCache(countingLoader(&calls, []domain.Property{p1}, nil))

		out, err := c.List(ctx)
		require.NoError(t, err)
		out[0].Title = "mutated"

		again, err := c.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "one", again[0].Title)
	})
}

func TestPropertyCache_Mutations(t *testing.T) {
	ctx := context.Background()
	p1 := domain.Property{ID: uuid.New(), Title: "one"}
	p2 := domain.Property{ID: uuid.New(), Title: "two"}

	warmed := func(t *testing.T) (*PropertyCache, *atomic.Int32) {
		var calls atomic.Int32
		c := NewPropertyCache(countingLoader(&calls, []domain.Property{p1, p2}, nil))
		_, err := c.List(ctx)
		require.NoError(t, err)
		return c, &calls
	}

	t.Run("ReplaceByID matches on id regardless of position", func(t *testing.T) {
		c, _ := warmed(t)
		updated := p2
		updated.Title = "two updated"
		c.ReplaceByID(updated)

		entries, ok := c.Snapshot()
		require.True(t, ok)
		require.Len(t, entries, 2)
		assert.Equal(t, "one", entries[0].Title)
		assert.Equal(t, "two updated", entries[1].Title)
	})

	t.Run("ReplaceByID appends an unseen record to a warm cache", func(t *testing.T) {
		c, _ := warmed(t)
		p3 := domain.Property{ID: uuid.New(), Title: "three"}
		c.ReplaceByID(p3)

		entries, ok := c.Snapshot()
		require.True(t, ok)
		assert.Len(t, entries, 3)
	})

	t.Run("Remove drops the matching entry", func(t *testing.T) {
		c, _ := warmed(t)
		c.Remove(p1.ID)

		entries, ok := c.Snapshot()
		require.True(t, ok)
		require.Len(t, entries, 1)
		assert.Equal(t, p2.ID, entries[0].ID)
	})

	t.Run("Invalidate forces the next List to refetch", func(t *testing.T) {
		c, calls := warmed(t)
		c.Invalidate()

		_, ok := c.Snapshot()
		assert.False(t, ok)

		_, err := c.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})
}
