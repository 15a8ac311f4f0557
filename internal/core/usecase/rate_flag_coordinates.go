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

// RatePropertyUseCase sets the 0..5 star rating.
type RatePropertyUseCase struct {
	storage port.PropertyStoragePort
	cache   *cache.PropertyCache
}

// NewRatePropertyUseCase creates the use case.
func NewRatePropertyUseCase(storage port.PropertyStoragePort, c *cache.PropertyCache) *RatePropertyUseCase {
	return &RatePropertyUseCase{storage: storage, cache: c}
}

// Execute validates and persists the rating.
func (uc *RatePropertyUseCase) Execute(ctx context.Context, id uuid.UUID, rating int) (domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "RateProperty",
		"property_id": id.String(),
		"rating":      rating,
	})

	if rating < 0 || rating > 5 {
		return domain.Property{}, fmt.Errorf("%w: rating must be between 0 and 5, got %d", domain.ErrValidation, rating)
	}

	updated, err := uc.storage.Update(ctx, id, domain.PropertyPatch{Rating: &rating})
	if err != nil {
		ucLogger.Error("Storage returned an error during rating update", err, nil)
		return domain.Property{}, fmt.Errorf("failed to rate property %s: %w", id, err)
	}

	reconcileAfterWrite(ctx, uc.cache, updated)
	ucLogger.Info("Rating updated", nil)
	return updated, nil
}

// ToggleFlagUseCase flips a property's flag.
type ToggleFlagUseCase struct {
	storage port.PropertyStoragePort
	cache   *cache.PropertyCache
}

// NewToggleFlagUseCase creates the use case.
func NewToggleFlagUseCase(storage port.PropertyStoragePort, c *cache.PropertyCache) *ToggleFlagUseCase {
	return &ToggleFlagUseCase{storage: storage, cache: c}
}

// Execute reads the current flag and persists its negation.
func (uc *ToggleFlagUseCase) Execute(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "ToggleFlag",
		"property_id": id.String(),
	})

	current, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("failed to load property %s: %w", id, err)
	}

	flagged := !current.IsFlagged
	updated, err := uc.storage.Update(ctx, id, domain.PropertyPatch{IsFlagged: &flagged})
	if err != nil {
		ucLogger.Error("Storage returned an error during flag toggle", err, nil)
		return domain.Property{}, fmt.Errorf("failed to toggle flag of %s: %w", id, err)
	}

	reconcileAfterWrite(ctx, uc.cache, updated)
	ucLogger.Info("Flag toggled", port.Fields{"is_flagged": updated.IsFlagged})
	return updated, nil
}

// UpdateCoordinatesUseCase persists a marker drag on the map view.
type UpdateCoordinatesUseCase struct {
	storage port.PropertyStoragePort
	cache   *cache.PropertyCache
}

// NewUpdateCoordinatesUseCase creates the use case.
func NewUpdateCoordinatesUseCase(storage port.PropertyStoragePort, c *cache.PropertyCache) *UpdateCoordinatesUseCase {
	return &UpdateCoordinatesUseCase{storage: storage, cache: c}
}

// Execute validates the coordinate ranges and persists them. It is the
// OnMarkerDragEnd seam: map SDK events funnel through here and nothing
// below this point knows which maps library produced them.
func (uc *UpdateCoordinatesUseCase) Execute(ctx context.Context, id uuid.UUID, lat, lng float64) (domain.Property, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UpdateCoordinates",
		"property_id": id.String(),
	})

	if lat < -90 || lat > 90 {
		return domain.Property{}, fmt.Errorf("%w: latitude out of range: %v", domain.ErrValidation, lat)
	}
	if lng < -180 || lng > 180 {
		return domain.Property{}, fmt.Errorf("%w: longitude out of range: %v", domain.ErrValidation, lng)
	}

	updated, err := uc.storage.Update(ctx, id, domain.PropertyPatch{Latitude: &lat, Longitude: &lng})
	if err != nil {
		ucLogger.Error("Storage returned an error during coordinates update", err, nil)
		return domain.Property{}, fmt.Errorf("failed to update coordinates of %s: %w", id, err)
	}

	reconcileAfterWrite(ctx, uc.cache, updated)
	ucLogger.Info("Coordinates updated", nil)
	return updated, nil
}
