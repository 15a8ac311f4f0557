package usecase

import (
	"context"
	"testing"

	"github.com/omriland/CasaTrack-sub000/internal/core/cache"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMarkersUseCase(t *testing.T) {
	ctx := context.Background()
	lat, lng := 32.0853, 34.7818

	located := domain.Property{
		ID:        uuid.New(),
		Title:     "on the map",
		Address:   "Rothschild 1, Tel Aviv",
		Status:    domain.StatusInterested,
		Latitude:  &lat,
		Longitude: &lng,
		IsFlagged: true,
	}
	unlocated := domain.Property{ID: uuid.New(), Title: "no coordinates"}
	halfLocated := domain.Property{ID: uuid.New(), Title: "latitude only", Latitude: &lat}

	storage := newFakePropertyStorage(located, unlocated, halfLocated)
	uc := NewMapMarkersUseCase(cache.NewPropertyCache(storage.List))

	markers, err := uc.Execute(ctx)
	require.NoError(t, err)

	t.Run("only fully located properties become markers", func(t *testing.T) {
		require.Len(t, markers, 1)
		assert.Equal(t, located.ID, markers[0].PropertyID)
	})

	t.Run("markers carry card fields and a geohash", func(t *testing.T) {
		m := markers[0]
		assert.Equal(t, "on the map", m.Title)
		assert.Equal(t, domain.StatusInterested, m.Status)
		assert.True(t, m.IsFlagged)
		assert.Equal(t, lat, m.Latitude)
		assert.Equal(t, lng, m.Longitude)
		assert.Len(t, m.Geohash, 7)
	})
}
