package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// WriteJSONError sends a JSON response with an "error" field and the
// given status.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON sends a JSON response.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// WriteDomainError is the single place domain errors become HTTP
// statuses. Every handler routes failures through here, so all
// mutation call sites report errors the same way.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrNoteNotFound),
		errors.Is(err, domain.ErrAttachmentNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDragInProgress):
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnsupportedFile):
		WriteJSONError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, domain.ErrExtractionFailed):
		WriteJSONError(w, http.StatusBadGateway, err.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

// URLParamUUID parses a chi URL parameter as a UUID.
func URLParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
