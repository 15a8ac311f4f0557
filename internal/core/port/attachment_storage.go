package port

import (
	"context"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// AttachmentStoragePort is the row-store interface for attachment
// records. Blob contents live behind BlobStorePort.
type AttachmentStoragePort interface {
	Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Attachment, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Attachment, error)
	// FindByHash looks up an image attachment of the same property with
	// the given perceptual hash, for duplicate detection.
	FindByHash(ctx context.Context, propertyID uuid.UUID, hash string) (*domain.Attachment, error)
}
