// Package cache keeps the in-memory property list consistent with the
// row store. Concurrent loads are de-duplicated; mutations replace the
// affected entry by id and then invalidate the whole list, so the next
// read is a full refetch. That full reload after every mutation trades
// efficiency for consistency on purpose; the dataset is one person's
// apartment hunt, not a feed.
package cache

import (
	"context"
	"sync"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ListLoader fetches the authoritative property list.
type ListLoader func(ctx context.Context) ([]domain.Property, error)

// PropertyCache is the single owner of the in-memory property list.
type PropertyCache struct {
	mu     sync.RWMutex
	group  singleflight.Group
	loader ListLoader

	entries []domain.Property
	valid   bool
}

// NewPropertyCache creates an empty, invalid cache around the loader.
func NewPropertyCache(loader ListLoader) *PropertyCache {
	return &PropertyCache{loader: loader}
}

// List returns the cached list, loading it when invalid. Concurrent
// callers share one underlying fetch. The returned slice is a copy;
// callers may not mutate cache internals through it.
func (c *PropertyCache) List(ctx context.Context) ([]domain.Property, error) {
	c.mu.RLock()
	if c.valid {
		out := c.copyLocked()
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("list", func() (interface{}, error) {
		loaded, err := c.loader(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries = loaded
		c.valid = true
		out := c.copyLocked()
		c.mu.Unlock()
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Property), nil
}

// ReplaceByID swaps the entry with the same id for the given record.
// Lookup is always by id, never by index: the list gets re-sorted and
// filtered between renders. Unknown ids are appended.
func (c *PropertyCache) ReplaceByID(p domain.Property) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].ID == p.ID {
			c.entries[i] = p
			return
		}
	}
	if c.valid {
		c.entries = append(c.entries, p)
	}
}

// Remove drops the entry with the given id, if present.
func (c *PropertyCache) Remove(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Invalidate marks the list stale; the next List is a full refetch.
func (c *PropertyCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

// Snapshot returns the current entries without triggering a load.
func (c *PropertyCache) Snapshot() ([]domain.Property, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return nil, false
	}
	return c.copyLocked(), true
}

func (c *PropertyCache) copyLocked() []domain.Property {
	out := make([]domain.Property, len(c.entries))
	copy(out, c.entries)
	return out
}
