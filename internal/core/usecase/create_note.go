package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/contracts"
	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/notecount"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/google/uuid"
)

// CreateNoteUseCase adds a note to a property and publishes a +1
// count delta for the dashboard badges.
type CreateNoteUseCase struct {
	notes      port.NoteStoragePort
	properties port.PropertyStoragePort
	publisher  port.NoteEventPublisherPort
	counters   *notecount.Counters
	notifier   port.NotifierPort
}

// NewCreateNoteUseCase creates the use case.
func NewCreateNoteUseCase(
	notes port.NoteStoragePort,
	properties port.PropertyStoragePort,
	publisher port.NoteEventPublisherPort,
	counters *notecount.Counters,
	notifier port.NotifierPort,
) *CreateNoteUseCase {
	return &CreateNoteUseCase{
		notes:      notes,
		properties: properties,
		publisher:  publisher,
		counters:   counters,
		notifier:   notifier,
	}
}

type createNoteInput struct {
	Body string `json:"body"`
}

// Execute validates and stores the note, then emits the count delta.
// The delta is applied locally with the same nonce it is published
// under, so the broker round trip becomes a deduplicated no-op.
func (uc *CreateNoteUseCase) Execute(ctx context.Context, propertyID uuid.UUID, payload json.RawMessage) (domain.Note, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "CreateNote",
		"property_id": propertyID.String(),
	})

	if err := contracts.ValidatePayload("NoteCreate", payload); err != nil {
		ucLogger.Warn("Payload rejected by schema", port.Fields{"error": err.Error()})
		return domain.Note{}, err
	}

	var in createNoteInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return domain.Note{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := uc.properties.GetByID(ctx, propertyID); err != nil {
		return domain.Note{}, fmt.Errorf("failed to load note's property: %w", err)
	}

	n := domain.Note{
		ID:         uuid.New(),
		PropertyID: propertyID,
		Body:       in.Body,
	}
	if err := n.Validate(); err != nil {
		return domain.Note{}, err
	}

	stored, err := uc.notes.Create(ctx, n)
	if err != nil {
		ucLogger.Error("Storage returned an error during note create", err, nil)
		return domain.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	publishNoteDelta(ctx, uc.publisher, uc.counters, ucLogger, propertyID, +1)
	uc.notifier.Notify(ctx, domain.DashboardEvent{Type: "note_created", Payload: stored})

	ucLogger.Info("Use case finished: note created", port.Fields{"note_id": stored.ID.String()})
	return stored, nil
}

// publishNoteDelta applies the delta to the local counters and puts
// the same event on the broker. Publish failures only degrade remote
// badges; the local state is already correct.
func publishNoteDelta(
	ctx context.Context,
	publisher port.NoteEventPublisherPort,
	counters *notecount.Counters,
	log port.LoggerPort,
	propertyID uuid.UUID,
	delta int,
) {
	event := domain.NoteCountDelta{
		PropertyID: propertyID,
		Delta:      delta,
		Nonce:      publisher.NextNonce(),
	}
	counters.Apply(event)
	if err := publisher.PublishNoteCountDelta(ctx, event); err != nil {
		log.Warn("Failed to publish note count delta", port.Fields{"nonce": event.Nonce, "error": err.Error()})
	}
}
