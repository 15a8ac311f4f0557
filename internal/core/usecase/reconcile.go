package usecase

import (
	"context"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/cache"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// reconcileAfterWrite applies the cache side of the mutation contract:
// swap in the authoritative record by id, then invalidate and reload
// the whole list to guard against drift from concurrent external
// changes. The reload is best-effort; the write already succeeded.
func reconcileAfterWrite(ctx context.Context, c *cache.PropertyCache, updated domain.Property) {
	c.ReplaceByID(updated)
	c.Invalidate()
	if _, err := c.List(ctx); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn(
			"Post-mutation list reload failed, cache stays invalidated",
			port.Fields{"property_id": updated.ID.String(), "error": err.Error()},
		)
	}
}

// reconcileAfterDelete is the delete flavor of the same contract.
func reconcileAfterDelete(ctx context.Context, c *cache.PropertyCache, id uuid.UUID) {
	c.Remove(id)
	c.Invalidate()
	if _, err := c.List(ctx); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn(
			"Post-delete list reload failed, cache stays invalidated",
			port.Fields{"property_id": id.String(), "error": err.Error()},
		)
	}
}
