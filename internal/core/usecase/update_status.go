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

// UpdateStatusUseCase moves a property to another pipeline stage. It
// also implements kanban.ItemMover so the board can persist drags
// without knowing about storage.
type UpdateStatusUseCase struct {
	storage  port.PropertyStoragePort
	cache    *cache.PropertyCache
	notifier port.NotifierPort
}

// NewUpdateStatusUseCase creates the use case.
func NewUpdateStatusUseCase(storage port.PropertyStoragePort, c *cache.PropertyCache, notifier port.NotifierPort) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{storage: storage, cache: c, notifier: notifier}
}

// Execute sets the property status. Any status may be set from any
// other one; the pipeline order is a display convention, not a rule.
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, id uuid.UUID, to domain.Status) (domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UpdateStatus",
		"property_id": id.String(),
		"to_status":   string(to),
	})

	if !to.Valid() {
		return domain.Property{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, to)
	}

	ucLogger.Info("Use case started: updating status", nil)

	updated, err := uc.storage.Update(ctx, id, domain.PropertyPatch{Status: &to})
	if err != nil {
		ucLogger.Error("Storage returned an error during status update", err, nil)
		return domain.Property{}, fmt.Errorf("failed to update status of %s: %w", id, err)
	}

	reconcileAfterWrite(ctx, uc.cache, updated)
	uc.notifier.Notify(ctx, domain.DashboardEvent{Type: "property_updated", Payload: updated})

	ucLogger.Info("Use case finished: status updated", nil)
	return updated, nil
}

// OnItemMoved satisfies kanban.ItemMover.
func (uc *UpdateStatusUseCase) OnItemMoved(ctx context.Context, id uuid.UUID, from, to domain.Status) error {
	contextkeys.LoggerFromContext(ctx).Debug("Board move", port.Fields{
		"property_id": id.String(),
		"from_status": string(from),
		"to_status":   string(to),
	})
	_, err := uc.Execute(ctx, id, to)
	return err
}
