package rest

import (
	"io"
	"net/http"

	"github.com/omriland/CasaTrack-sub000/internal/core/usecase"
)

// NoteHandler serves note CRUD and the count badges.
type NoteHandler struct {
	createUC *usecase.CreateNoteUseCase
	updateUC *usecase.UpdateNoteUseCase
	deleteUC *usecase.DeleteNoteUseCase
	listUC   *usecase.ListNotesUseCase
	countsUC *usecase.NoteCountsUseCase
}

// NewNoteHandler creates the handler.
func NewNoteHandler(
	createUC *usecase.CreateNoteUseCase,
	updateUC *usecase.UpdateNoteUseCase,
	deleteUC *usecase.DeleteNoteUseCase,
	listUC *usecase.ListNotesUseCase,
	countsUC *usecase.NoteCountsUseCase,
) *NoteHandler {
	return &NoteHandler{createUC: createUC, updateUC: updateUC, deleteUC: deleteUC, listUC: listUC, countsUC: countsUC}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	propertyID, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	n, err := h.createUC.Execute(r.Context(), propertyID, payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, n)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "noteID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid note id")
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	n, err := h.updateUC.Execute(r.Context(), id, payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "noteID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid note id")
		return
	}
	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	propertyID, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	notes, err := h.listUC.Execute(r.Context(), propertyID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, notes)
}

// Counts returns the per-property note-count badge values.
func (h *NoteHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.countsUC.Execute(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	// JSON object keys must be strings.
	out := make(map[string]int, len(counts))
	for id, n := range counts {
		out[id.String()] = n
	}
	RespondWithJSON(w, http.StatusOK, out)
}
