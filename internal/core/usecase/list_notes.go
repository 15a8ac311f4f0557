package usecase

import (
	"context"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/notecount"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// ListNotesUseCase returns a property's notes, newest first.
type ListNotesUseCase struct {
	notes port.NoteStoragePort
}

// NewListNotesUseCase creates the use case.
func NewListNotesUseCase(notes port.NoteStoragePort) *ListNotesUseCase {
	return &ListNotesUseCase{notes: notes}
}

// Execute lists the notes of one property.
func (uc *ListNotesUseCase) Execute(ctx context.Context, propertyID uuid.UUID) ([]domain.Note, error) {
	notes, err := uc.notes.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes for property %s: %w", propertyID, err)
	}
	return notes, nil
}

// NoteCountsUseCase serves the per-property note-count badges from the
// in-memory counters, seeding them from storage on first use.
type NoteCountsUseCase struct {
	notes    port.NoteStoragePort
	counters *notecount.Counters
}

// NewNoteCountsUseCase creates the use case.
func NewNoteCountsUseCase(notes port.NoteStoragePort, counters *notecount.Counters) *NoteCountsUseCase {
	return &NoteCountsUseCase{notes: notes, counters: counters}
}

// Seed loads the authoritative counts from storage into the counters.
// Nonce history survives the seed, so deduplication keeps working.
func (uc *NoteCountsUseCase) Seed(ctx context.Context) error {
	counts, err := uc.notes.CountsByProperty(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed note counts: %w", err)
	}
	uc.counters.Seed(counts)
	return nil
}

// Execute returns the current badge counts.
func (uc *NoteCountsUseCase) Execute(ctx context.Context) (map[uuid.UUID]int, error) {
	return uc.counters.All(), nil
}
