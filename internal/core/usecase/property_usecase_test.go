package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/omriland/CasaTrack-sub000/internal/core/cache"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheFor(storage *fakePropertyStorage) *cache.PropertyCache {
	return cache.NewPropertyCache(storage.List)
}

func TestCreatePropertyUseCase(t *testing.T) {
	ctx := context.Background()

	validPayload := json.RawMessage(`{
		"title": "3.5 rooms in Florentin",
		"address": "Vital 12, Tel Aviv",
		"rooms": 3.5,
		"square_meters": 85,
		"asked_price": 2000000,
		"balcony_square_meters": "unknown",
		"source": "Yad2",
		"property_type": "Existing apartment"
	}`)

	t.Run("stores the property and defaults the status", func(t *testing.T) {
		storage := newFakePropertyStorage()
		notifier := &fakeNotifier{}
		uc := NewCreatePropertyUseCase(storage, cacheFor(storage), notifier)

		created, err := uc.Execute(ctx, validPayload)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, domain.StatusSeen, created.Status)
		assert.True(t, created.BalconySquareMeters.IsUnknown())
		assert.Equal(t, []string{"property_created"}, notifier.typesSeen())
	})

	t.Run("schema failure short-circuits before storage", func(t *testing.T) {
		storage := newFakePropertyStorage()
		uc := NewCreatePropertyUseCase(storage, cacheFor(storage), &fakeNotifier{})

		_, err := uc.Execute(ctx, json.RawMessage(`{"title": ""}`))
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, storage.properties)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		storage := newFakePropertyStorage()
		uc := NewCreatePropertyUseCase(storage, cacheFor(storage), &fakeNotifier{})

		_, err := uc.Execute(ctx, json.RawMessage(`{
			"title": "t", "address": "a", "rooms": 3,
			"source": "Yad2", "property_type": "New",
			"price": 100
		}`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("cache is reconciled after the write", func(t *testing.T) {
		storage := newFakePropertyStorage()
		c := cacheFor(storage)
		uc := NewCreatePropertyUseCase(storage, c, &fakeNotifier{})

		created, err := uc.Execute(ctx, validPayload)
		require.NoError(t, err)

		entries, ok := c.Snapshot()
		require.True(t, ok, "cache should be warm after the post-mutation reload")
		require.Len(t, entries, 1)
		assert.Equal(t, created.ID, entries[0].ID)
	})

	t.Run("storage failure surfaces and sends no event", func(t *testing.T) {
		storage := newFakePropertyStorage()
		storage.createErr = assert.AnError
		notifier := &fakeNotifier{}
		uc := NewCreatePropertyUseCase(storage, cacheFor(storage), notifier)

		_, err := uc.Execute(ctx, validPayload)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, notifier.events)
	})
}

func TestUpdatePropertyUseCase(t *testing.T) {
	ctx := context.Background()
	existing := domain.Property{
		ID:           uuid.New(),
		Title:        "before edit",
		Address:      "Herzl 2",
		Rooms:        3,
		Source:       domain.SourceYad2,
		PropertyType: domain.PropertyTypeExisting,
		Status:       domain.StatusSeen,
	}

	warmed := func(t *testing.T) (*fakePropertyStorage, *cache.PropertyCache, *UpdatePropertyUseCase) {
		storage := newFakePropertyStorage(existing)
		c := cacheFor(storage)
		_, err := c.List(ctx)
		require.NoError(t, err)
		return storage, c, NewUpdatePropertyUseCase(storage, c, &fakeNotifier{})
	}

	t.Run("patch is applied and the cache reconciled", func(t *testing.T) {
		_, c, uc := warmed(t)

		updated, err := uc.Execute(ctx, existing.ID, json.RawMessage(`{"title": "after edit"}`))
		require.NoError(t, err)
		assert.Equal(t, "after edit", updated.Title)

		entries, ok := c.Snapshot()
		require.True(t, ok)
		require.Len(t, entries, 1)
		assert.Equal(t, "after edit", entries[0].Title)
	})

	t.Run("schema failure leaves the cached list identical", func(t *testing.T) {
		storage, c, uc := warmed(t)
		before, ok := c.Snapshot()
		require.True(t, ok)

		_, err := uc.Execute(ctx, existing.ID, json.RawMessage(`{"rooms": -1}`))
		assert.ErrorIs(t, err, domain.ErrValidation)

		after, ok := c.Snapshot()
		require.True(t, ok)
		assert.Equal(t, before, after)

		stored, err := storage.GetByID(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, existing.Title, stored.Title)
	})

	t.Run("empty patch is rejected before storage", func(t *testing.T) {
		_, c, uc := warmed(t)
		before, ok := c.Snapshot()
		require.True(t, ok)

		_, err := uc.Execute(ctx, existing.ID, json.RawMessage(`{}`))
		assert.ErrorIs(t, err, domain.ErrValidation)

		after, ok := c.Snapshot()
		require.True(t, ok)
		assert.Equal(t, before, after)
	})

	t.Run("storage failure leaves the cached list identical", func(t *testing.T) {
		_, c, uc := warmed(t)
		before, ok := c.Snapshot()
		require.True(t, ok)

		_, err := uc.Execute(ctx, uuid.New(), json.RawMessage(`{"title": "edit of a ghost"}`))
		assert.ErrorIs(t, err, domain.ErrPropertyNotFound)

		after, ok := c.Snapshot()
		require.True(t, ok)
		assert.Equal(t, before, after)
	})
}

func TestDeletePropertyUseCase(t *testing.T) {
	ctx := context.Background()
	existing := domain.Property{ID: uuid.New(), Title: "doomed", Status: domain.StatusSeen}

	t.Run("deletes rows and cleans returned blobs", func(t *testing.T) {
		storage := newFakePropertyStorage(existing)
		storage.blobKeys = []string{existing.ID.String() + "/a.jpg", existing.ID.String() + "/b.pdf"}
		blobs := newFakeBlobStore()
		notifier := &fakeNotifier{}
		uc := NewDeletePropertyUseCase(storage, blobs, cacheFor(storage), notifier)

		require.NoError(t, uc.Execute(ctx, existing.ID))
		assert.Empty(t, storage.properties)
		assert.Equal(t, storage.blobKeys, blobs.deleted)
		assert.Equal(t, []string{"property_deleted"}, notifier.typesSeen())
	})

	t.Run("unknown id is an error", func(t *testing.T) {
		storage := newFakePropertyStorage()
		uc := NewDeletePropertyUseCase(storage, newFakeBlobStore(), cacheFor(storage), &fakeNotifier{})

		err := uc.Execute(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
	})
}

func TestUpdateStatusViaBoardContract(t *testing.T) {
	ctx := context.Background()
	existing := domain.Property{
		ID:           uuid.New(),
		Title:        "mover",
		Address:      "somewhere",
		Rooms:        3,
		Source:       domain.SourceYad2,
		PropertyType: domain.PropertyTypeNew,
		Status:       domain.StatusSeen,
	}

	storage := newFakePropertyStorage(existing)
	c := cacheFor(storage)
	notifier := &fakeNotifier{}
	uc := NewUpdateStatusUseCase(storage, c, notifier)

	updated, err := uc.Execute(ctx, existing.ID, domain.StatusVisited)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVisited, updated.Status)

	t.Run("implements the board mover seam", func(t *testing.T) {
		err := uc.OnItemMoved(ctx, existing.ID, domain.StatusVisited, domain.StatusOnHold)
		require.NoError(t, err)
		stored, err := storage.GetByID(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOnHold, stored.Status)
	})
}
