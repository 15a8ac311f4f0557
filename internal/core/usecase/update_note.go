package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/contracts"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// UpdateNoteUseCase edits the body of an existing note. The count is
// unchanged, so no delta is published.
type UpdateNoteUseCase struct {
	notes    port.NoteStoragePort
	notifier port.NotifierPort
}

// NewUpdateNoteUseCase creates the use case.
func NewUpdateNoteUseCase(notes port.NoteStoragePort, notifier port.NotifierPort) *UpdateNoteUseCase {
	return &UpdateNoteUseCase{notes: notes, notifier: notifier}
}

type updateNoteInput struct {
	Body string `json:"body"`
}

// Execute validates the payload and writes the new body.
func (uc *UpdateNoteUseCase) Execute(ctx context.Context, id uuid.UUID, payload json.RawMessage) (domain.Note, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "UpdateNote",
		"note_id":  id.String(),
	})

	if err := contracts.ValidatePayload("NoteUpdate", payload); err != nil {
		ucLogger.Warn("Payload rejected by schema", port.Fields{"error": err.Error()})
		return domain.Note{}, err
	}

	var in updateNoteInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return domain.Note{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	stored, err := uc.notes.Update(ctx, id, in.Body)
	if err != nil {
		ucLogger.Error("Storage returned an error during note update", err, nil)
		return domain.Note{}, fmt.Errorf("failed to update note %s: %w", id, err)
	}

	uc.notifier.Notify(ctx, domain.DashboardEvent{Type: "note_updated", Payload: stored})
	return stored, nil
}
