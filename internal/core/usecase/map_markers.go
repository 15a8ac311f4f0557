package usecase

import (
	"context"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/core/cache"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

// markerGeohashPrecision gives ~150m cells, enough to cluster markers
// that sit on the same street.
const markerGeohashPrecision = 7

// MapMarker is one pin on the dashboard map. Only properties with
// coordinates produce markers.
type MapMarker struct {
	PropertyID uuid.UUID     `json:"property_id"`
	Title      string        `json:"title"`
	Address    string        `json:"address"`
	Status     domain.Status `json:"status"`
	IsFlagged  bool          `json:"is_flagged"`
	Latitude   float64       `json:"latitude"`
	Longitude  float64       `json:"longitude"`
	Geohash    string        `json:"geohash"`
}

// MapMarkersUseCase projects the property list onto map markers.
type MapMarkersUseCase struct {
	cache *cache.PropertyCache
}

// NewMapMarkersUseCase creates the use case.
func NewMapMarkersUseCase(c *cache.PropertyCache) *MapMarkersUseCase {
	return &MapMarkersUseCase{cache: c}
}

// Execute returns a marker for every property that has both
// coordinates set. Properties without coordinates are skipped, not
// errored.
func (uc *MapMarkersUseCase) Execute(ctx context.Context) ([]MapMarker, error) {
	properties, err := uc.cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties for map: %w", err)
	}

	markers := make([]MapMarker, 0, len(properties))
	for _, p := range properties {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		markers = append(markers, MapMarker{
			PropertyID: p.ID,
			Title:      p.Title,
			Address:    p.Address,
			Status:     p.Status,
			IsFlagged:  p.IsFlagged,
			Latitude:   *p.Latitude,
			Longitude:  *p.Longitude,
			Geohash:    geohash.EncodeWithPrecision(*p.Latitude, *p.Longitude, markerGeohashPrecision),
		})
	}
	return markers, nil
}
