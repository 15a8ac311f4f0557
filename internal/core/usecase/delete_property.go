package usecase

import (
	"context"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/cache"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// DeletePropertyUseCase removes a property together with its notes and
// attachments, so no orphans remain.
type DeletePropertyUseCase struct {
	storage  port.PropertyStoragePort
	blobs    port.BlobStorePort
	cache    *cache.PropertyCache
	notifier port.NotifierPort
}

// NewDeletePropertyUseCase creates the use case.
func NewDeletePropertyUseCase(storage port.PropertyStoragePort, blobs port.BlobStorePort, c *cache.PropertyCache, notifier port.NotifierPort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{storage: storage, blobs: blobs, cache: c, notifier: notifier}
}

// Execute deletes the rows in one transaction, then cleans the bucket.
// Blob cleanup is best-effort: the rows are already gone and a leaked
// blob is cheaper than a dangling record.
func (uc *DeletePropertyUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id.String(),
	})

	ucLogger.Info("Use case started: deleting property with notes and attachments", nil)

	blobKeys, err := uc.storage.Delete(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error during delete", err, nil)
		return fmt.Errorf("failed to delete property %s: %w", id, err)
	}

	for _, key := range blobKeys {
		if err := uc.blobs.Delete(ctx, key); err != nil {
			ucLogger.Warn("Failed to delete blob, leaving it orphaned", port.Fields{"key": key, "error": err.Error()})
		}
	}

	reconcileAfterDelete(ctx, uc.cache, id)
	uc.notifier.Notify(ctx, domain.DashboardEvent{Type: "property_deleted", Payload: map[string]string{"id": id.String()}})

	ucLogger.Info("Use case finished: property deleted", port.Fields{"blobs_removed": len(blobKeys)})
	return nil
}
