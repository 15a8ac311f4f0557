package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/omriland/CasaTrack-sub000/internal/core/usecase"
)

// ExtractHandler serves the AI-assisted scraping endpoints.
type ExtractHandler struct {
	extractUC *usecase.ExtractPropertyUseCase
	fetchUC   *usecase.FetchPageUseCase
}

// NewExtractHandler creates the handler.
func NewExtractHandler(extractUC *usecase.ExtractPropertyUseCase, fetchUC *usecase.FetchPageUseCase) *ExtractHandler {
	return &ExtractHandler{extractUC: extractUC, fetchUC: fetchUC}
}

type extractResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// Extract scrapes a listing URL into structured property fields.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	extracted, err := h.extractUC.Execute(r.Context(), payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, extractResponse{Success: true, Data: extracted})
}

type fetchHTMLRequest struct {
	URL      string `json:"url"`
	MaxChars int    `json:"maxChars"`
}

// FetchHTML returns sanitized page text for debugging and manual
// extraction. GET takes url/maxChars query params, POST a JSON body.
func (h *ExtractHandler) FetchHTML(w http.ResponseWriter, r *http.Request) {
	var req fetchHTMLRequest
	switch r.Method {
	case http.MethodGet:
		req.URL = r.URL.Query().Get("url")
		if s := r.URL.Query().Get("maxChars"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				WriteJSONError(w, http.StatusBadRequest, "maxChars must be an integer")
				return
			}
			req.MaxChars = n
		}
	default:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	text, err := h.fetchUC.Execute(r.Context(), req.URL, req.MaxChars)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
