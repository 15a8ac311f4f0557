package domain

import "github.com/google/uuid"

// NoteCountDelta is an out-of-band increment/decrement of a property's
// note-count badge. Nonces increase monotonically at the producer;
// consumers drop only an exact replay of the most recent nonce, so an
// older nonce arriving after a newer one is still applied.
type NoteCountDelta struct {
	PropertyID uuid.UUID `json:"property_id"`
	Delta      int       `json:"delta"`
	Nonce      uint64    `json:"nonce"`
}

// DashboardEvent is pushed to connected dashboard clients over SSE.
// It replaces the old process-global toast queue.
type DashboardEvent struct {
	Type    string      `json:"type"` // e.g. "toast", "note_count_delta", "property_updated"
	Payload interface{} `json:"payload"`
}

// Toast levels used in DashboardEvent payloads.
const (
	ToastInfo    = "info"
	ToastSuccess = "success"
	ToastError   = "error"
)
