package rest

import (
	"encoding/json"
	"net/http"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/internal/core/kanban"
	"github.com/omriland/CasaTrack-sub000/internal/core/usecase"

	"github.com/google/uuid"
)

// BoardHandler serves the kanban view and drag moves.
type BoardHandler struct {
	board  *kanban.Board
	listUC *usecase.ListPropertiesUseCase
}

// NewBoardHandler creates the handler.
func NewBoardHandler(board *kanban.Board, listUC *usecase.ListPropertiesUseCase) *BoardHandler {
	return &BoardHandler{board: board, listUC: listUC}
}

type boardViewResponse struct {
	Columns   []boardColumn `json:"columns"`
	Collapsed []string      `json:"collapsed"`
}

type boardColumn struct {
	Status     string            `json:"status"`
	Properties []domain.Property `json:"properties"`
}

// View returns all seven columns in pipeline order, including empty
// ones, plus which columns are collapsed.
func (h *BoardHandler) View(w http.ResponseWriter, r *http.Request) {
	properties, err := h.listUC.Execute(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	grouped := kanban.GroupByStatus(properties)
	columns := make([]boardColumn, 0, len(domain.StatusOrder))
	for _, st := range domain.StatusOrder {
		columns = append(columns, boardColumn{Status: string(st), Properties: grouped[st]})
	}

	collapsed := make([]string, 0)
	for _, st := range h.board.Collapsed() {
		collapsed = append(collapsed, string(st))
	}

	RespondWithJSON(w, http.StatusOK, boardViewResponse{Columns: columns, Collapsed: collapsed})
}

type boardMoveRequest struct {
	ID string `json:"id"`
	// Target is either a status name (dropped on a column) or a
	// property id (dropped on a card). Empty means the drop landed
	// outside the board.
	Target string `json:"target"`
}

type boardMoveResponse struct {
	Moved bool `json:"moved"`
}

// Move executes one full drag gesture: begin, resolve target,
// complete. The board releases the drag whatever the outcome.
func (h *BoardHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req boardMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid property id")
		return
	}

	properties, err := h.listUC.Execute(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	if err := h.board.BeginDrag(id); err != nil {
		WriteDomainError(w, err)
		return
	}
	moved, err := h.board.CompleteDrag(r.Context(), id, req.Target, properties)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, boardMoveResponse{Moved: moved})
}

type boardCollapseRequest struct {
	Status    string `json:"status"`
	Collapsed bool   `json:"collapsed"`
}

// Collapse toggles a column's collapsed state.
func (h *BoardHandler) Collapse(w http.ResponseWriter, r *http.Request) {
	var req boardCollapseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	h.board.SetCollapsed(status, req.Collapsed)
	w.WriteHeader(http.StatusNoContent)
}
