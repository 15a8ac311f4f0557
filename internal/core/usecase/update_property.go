package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/contracts"
	"github.com/omriland/CasaTrack-sub000/internal/core/cache"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// UpdatePropertyUseCase applies a partial edit to a property.
type UpdatePropertyUseCase struct {
	storage  port.PropertyStoragePort
	cache    *cache.PropertyCache
	notifier port.NotifierPort
}

// NewUpdatePropertyUseCase creates the use case.
func NewUpdatePropertyUseCase(storage port.PropertyStoragePort, c *cache.PropertyCache, notifier port.NotifierPort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{storage: storage, cache: c, notifier: notifier}
}

// Execute validates the patch payload and persists it. On failure the
// cached list is left untouched since no speculative change was applied.
func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, id uuid.UUID, payload json.RawMessage) (domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id.String(),
	})

	if err := contracts.ValidatePayload("PropertyUpdate", payload); err != nil {
		ucLogger.Warn("Payload rejected by schema", port.Fields{"error": err.Error()})
		return domain.Property{}, err
	}

	var patch domain.PropertyPatch
	if err := json.Unmarshal(payload, &patch); err != nil {
		return domain.Property{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if patch.IsEmpty() {
		return domain.Property{}, fmt.Errorf("%w: empty patch", domain.ErrValidation)
	}

	ucLogger.Info("Use case started: updating property", nil)

	updated, err := uc.storage.Update(ctx, id, patch)
	if err != nil {
		ucLogger.Error("Storage returned an error during update", err, nil)
		return domain.Property{}, fmt.Errorf("failed to update property %s: %w", id, err)
	}

	reconcileAfterWrite(ctx, uc.cache, updated)
	uc.notifier.Notify(ctx, domain.DashboardEvent{Type: "property_updated", Payload: updated})

	ucLogger.Info("Use case finished: property updated", nil)
	return updated, nil
}
