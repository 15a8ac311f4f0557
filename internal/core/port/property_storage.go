package port

import (
	"context"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// PropertyStoragePort is the row-store interface for properties. Every
// mutating call returns the full updated record: the store is the
// source of truth for derived fields and updated_at.
type PropertyStoragePort interface {
	Create(ctx context.Context, p domain.Property) (domain.Property, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.PropertyPatch) (domain.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	// Delete removes the property and, in the same transaction, its
	// notes and attachment rows. It returns the blob keys of the
	// deleted attachments so the caller can clean up the bucket.
	Delete(ctx context.Context, id uuid.UUID) (blobKeys []string, err error)
}
