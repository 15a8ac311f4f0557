package usecase

import (
	"context"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/notecount"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// DeleteNoteUseCase removes a note and publishes a -1 count delta.
type DeleteNoteUseCase struct {
	notes     port.NoteStoragePort
	publisher port.NoteEventPublisherPort
	counters  *notecount.Counters
	notifier  port.NotifierPort
}

// NewDeleteNoteUseCase creates the use case.
func NewDeleteNoteUseCase(
	notes port.NoteStoragePort,
	publisher port.NoteEventPublisherPort,
	counters *notecount.Counters,
	notifier port.NotifierPort,
) *DeleteNoteUseCase {
	return &DeleteNoteUseCase{notes: notes, publisher: publisher, counters: counters, notifier: notifier}
}

// Execute deletes the note. Storage returns the deleted row so the
// delta can be attributed to the right property.
func (uc *DeleteNoteUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "DeleteNote",
		"note_id":  id.String(),
	})

	deleted, err := uc.notes.Delete(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error during note delete", err, nil)
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}

	publishNoteDelta(ctx, uc.publisher, uc.counters, ucLogger, deleted.PropertyID, -1)
	uc.notifier.Notify(ctx, domain.DashboardEvent{Type: "note_deleted", Payload: map[string]string{
		"id":          id.String(),
		"property_id": deleted.PropertyID.String(),
	}})
	return nil
}
