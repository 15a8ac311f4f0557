package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/usecase"
)

// PropertyHandler serves the property CRUD surface and the small
// single-field patch endpoints.
type PropertyHandler struct {
	createUC      *usecase.CreatePropertyUseCase
	updateUC      *usecase.UpdatePropertyUseCase
	deleteUC      *usecase.DeletePropertyUseCase
	listUC        *usecase.ListPropertiesUseCase
	getUC         *usecase.GetPropertyUseCase
	statusUC      *usecase.UpdateStatusUseCase
	rateUC        *usecase.RatePropertyUseCase
	flagUC        *usecase.ToggleFlagUseCase
	coordinatesUC *usecase.UpdateCoordinatesUseCase
	markersUC     *usecase.MapMarkersUseCase
}

// NewPropertyHandler creates the handler.
func NewPropertyHandler(
	createUC *usecase.CreatePropertyUseCase,
	updateUC *usecase.UpdatePropertyUseCase,
	deleteUC *usecase.DeletePropertyUseCase,
	listUC *usecase.ListPropertiesUseCase,
	getUC *usecase.GetPropertyUseCase,
	statusUC *usecase.UpdateStatusUseCase,
	rateUC *usecase.RatePropertyUseCase,
	flagUC *usecase.ToggleFlagUseCase,
	coordinatesUC *usecase.UpdateCoordinatesUseCase,
	markersUC *usecase.MapMarkersUseCase,
) *PropertyHandler {
	return &PropertyHandler{
		createUC:      createUC,
		updateUC:      updateUC,
		deleteUC:      deleteUC,
		listUC:        listUC,
		getUC:         getUC,
		statusUC:      statusUC,
		rateUC:        rateUC,
		flagUC:        flagUC,
		coordinatesUC: coordinatesUC,
		markersUC:     markersUC,
	}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	p, err := h.createUC.Execute(r.Context(), payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	p, err := h.updateUC.Execute(r.Context(), id, payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.listUC.Execute(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	p, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, p)
}

type statusPatchRequest struct {
	Status string `json:"status"`
}

func (h *PropertyHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	var req statusPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	p, err := h.statusUC.Execute(r.Context(), id, status)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, p)
}

type ratingPatchRequest struct {
	Rating int `json:"rating"`
}

func (h *PropertyHandler) PatchRating(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	var req ratingPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p, err := h.rateUC.Execute(r.Context(), id, req.Rating)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) ToggleFlag(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	p, err := h.flagUC.Execute(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, p)
}

type coordinatesPatchRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PatchCoordinates is the endpoint behind marker drag-end on the map.
func (h *PropertyHandler) PatchCoordinates(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "propertyID")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	var req coordinatesPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p, err := h.coordinatesUC.Execute(r.Context(), id, req.Latitude, req.Longitude)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) MapMarkers(w http.ResponseWriter, r *http.Request) {
	markers, err := h.markersUC.Execute(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, markers)
}
