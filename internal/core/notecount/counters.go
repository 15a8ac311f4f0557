// Package notecount maintains the note-count badges. Counters are
// seeded by a dedicated fetch and then adjusted by out-of-band delta
// events, without refetching.
package notecount

import (
	"sync"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// Counters is the badge store. Deduplication is by nonce and only
// against the most recently applied nonce per property: replaying the
// latest event is dropped, but an older nonce arriving after a newer
// one is still applied. That makes out-of-order delivery
// non-idempotent; callers that need strict idempotence must not reuse
// nonces.
type Counters struct {
	mu        sync.RWMutex
	counts    map[uuid.UUID]int
	lastNonce map[uuid.UUID]uint64
}

// NewCounters creates an empty badge store.
func NewCounters() *Counters {
	return &Counters{
		counts:    make(map[uuid.UUID]int),
		lastNonce: make(map[uuid.UUID]uint64),
	}
}

// Seed replaces all counters with authoritative values from storage.
// Nonce history is kept so a delta already applied before the seed is
// still recognized as the most recent one.
func (c *Counters) Seed(counts map[uuid.UUID]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = make(map[uuid.UUID]int, len(counts))
	for id, n := range counts {
		c.counts[id] = n
	}
}

// Apply adjusts a counter by a delta event. Returns false when the
// event is an exact replay of the most recent nonce for that property.
func (c *Counters) Apply(e domain.NoteCountDelta) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if last, ok := c.lastNonce[e.PropertyID]; ok && last == e.Nonce {
		return false
	}
	c.counts[e.PropertyID] += e.Delta
	c.lastNonce[e.PropertyID] = e.Nonce
	return true
}

// Count returns the badge value for one property.
func (c *Counters) Count(id uuid.UUID) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[id]
}

// All returns a copy of every badge value.
func (c *Counters) All() map[uuid.UUID]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[uuid.UUID]int, len(c.counts))
	for id, n := range c.counts {
		out[id] = n
	}
	return out
}
