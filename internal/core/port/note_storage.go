package port

import (
	"context"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// NoteStoragePort is the row-store interface for property notes.
type NoteStoragePort interface {
	Create(ctx context.Context, n domain.Note) (domain.Note, error)
	Update(ctx context.Context, id uuid.UUID, body string) (domain.Note, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Note, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Note, error)
	// CountsByProperty seeds the note-count badges.
	CountsByProperty(ctx context.Context) (map[uuid.UUID]int, error)
}
