package usecase

import (
	"context"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/core/cache"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// ListPropertiesUseCase serves the full property list from the cache.
type ListPropertiesUseCase struct {
	cache *cache.PropertyCache
}

// NewListPropertiesUseCase creates the use case.
func NewListPropertiesUseCase(c *cache.PropertyCache) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{cache: c}
}

// Execute returns every tracked property. Concurrent callers share a
// single storage round trip when the cache is cold.
func (uc *ListPropertiesUseCase) Execute(ctx context.Context) ([]domain.Property, error) {
	properties, err := uc.cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// GetPropertyUseCase fetches a single property by id. It reads from
// storage directly so detail views never see a stale cache entry.
type GetPropertyUseCase struct {
	storage port.PropertyStoragePort
}

// NewGetPropertyUseCase creates the use case.
func NewGetPropertyUseCase(storage port.PropertyStoragePort) *GetPropertyUseCase {
	return &GetPropertyUseCase{storage: storage}
}

// Execute returns the property or domain.ErrPropertyNotFound.
func (uc *GetPropertyUseCase) Execute(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	p, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("failed to get property %s: %w", id, err)
	}
	return p, nil
}
