package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Note is a free-text annotation attached to exactly one property.
// Notes are listed newest first.
type Note struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks the note invariants.
func (n *Note) Validate() error {
	if n.Body == "" {
		return fmt.Errorf("%w: note body is required", ErrValidation)
	}
	if n.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: note must belong to a property", ErrValidation)
	}
	return nil
}
