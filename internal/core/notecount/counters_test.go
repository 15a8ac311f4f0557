package notecount

import (
	"testing"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters_Seed(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	c := NewCounters()

	c.Seed(map[uuid.UUID]int{a: 3, b: 1})
	assert.Equal(t, 3, c.Count(a))
	assert.Equal(t, 1, c.Count(b))

	t.Run("reseed replaces everything", func(t *testing.T) {
		c.Seed(map[uuid.UUID]int{a: 5})
		assert.Equal(t, 5, c.Count(a))
		assert.Equal(t, 0, c.Count(b))
	})
}

func TestCounters_Apply(t *testing.T) {
	id := uuid.New()

	t.Run("deltas accumulate", func(t *testing.T) {
		c := NewCounters()
		require.True(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: 1, Nonce: 1}))
		require.True(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: 1, Nonce: 2}))
		require.True(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: -1, Nonce: 3}))
		assert.Equal(t, 1, c.Count(id))
	})

	t.Run("replaying the most recent nonce is dropped", func(t *testing.T) {
		c := NewCounters()
		require.True(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: 1, Nonce: 7}))
		assert.False(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: 1, Nonce: 7}))
		assert.Equal(t, 1, c.Count(id))
	})

	t.Run("an older nonce after a newer one is still applied", func(t *testing.T) {
		c := NewCounters()
		require.True(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: 1, Nonce: 2}))
		assert.True(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: 1, Nonce: 1}))
		assert.Equal(t, 2, c.Count(id))
	})

	t.Run("dedup is per property", func(t *testing.T) {
		other := uuid.New()
		c := NewCounters()
		require.True(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: 1, Nonce: 1}))
		assert.True(t, c.Apply(domain.NoteCountDelta{PropertyID: other, Delta: 1, Nonce: 1}))
	})

	t.Run("seed keeps nonce history", func(t *testing.T) {
		c := NewCounters()
		require.True(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: 1, Nonce: 4}))
		c.Seed(map[uuid.UUID]int{id: 1})
		assert.False(t, c.Apply(domain.NoteCountDelta{PropertyID: id, Delta: 1, Nonce: 4}))
		assert.Equal(t, 1, c.Count(id))
	})
}

func TestCounters_All(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	c := NewCounters()
	c.Seed(map[uuid.UUID]int{a: 2, b: 4})

	all := c.All()
	assert.Equal(t, map[uuid.UUID]int{a: 2, b: 4}, all)

	all[a] = 99
	assert.Equal(t, 2, c.Count(a))
}
