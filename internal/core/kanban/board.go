// Package kanban holds the board view-model: grouping properties into
// status columns and resolving drag-and-drop moves. It knows nothing
// about any concrete drag library or HTTP layer; moves funnel through
// the injected ItemMover.
package kanban

import (
	"context"
	"fmt"
	"sync"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// ItemMover persists a status transition. The board calls it exactly
// once per effective move and never for no-op drops.
type ItemMover interface {
	OnItemMoved(ctx context.Context, id uuid.UUID, from, to domain.Status) error
}

// GroupByStatus partitions properties into one bucket per status.
// Every property lands in exactly one bucket (its current status),
// order within a bucket follows the input order, and all columns are
// present even when empty.
func GroupByStatus(properties []domain.Property) map[domain.Status][]domain.Property {
	groups := make(map[domain.Status][]domain.Property, len(domain.StatusOrder))
	for _, st := range domain.StatusOrder {
		groups[st] = []domain.Property{}
	}
	for _, p := range properties {
		groups[p.Status] = append(groups[p.Status], p)
	}
	return groups
}

// Board tracks the transient drag state and the collapsed-column set.
// A single drag may be active at a time.
type Board struct {
	mu        sync.Mutex
	active    *uuid.UUID
	collapsed map[domain.Status]bool
	mover     ItemMover
}

// NewBoard creates a board with the default collapsed columns.
func NewBoard(mover ItemMover) *Board {
	collapsed := make(map[domain.Status]bool, len(domain.DefaultCollapsedStatuses))
	for _, st := range domain.DefaultCollapsedStatuses {
		collapsed[st] = true
	}
	return &Board{
		collapsed: collapsed,
		mover:     mover,
	}
}

// BeginDrag records the dragged property for overlay rendering. It does
// not mutate persisted state. A second concurrent drag is rejected.
func (b *Board) BeginDrag(id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active != nil {
		return fmt.Errorf("%w: property %s", domain.ErrDragInProgress, b.active)
	}
	cp := id
	b.active = &cp
	return nil
}

// CancelDrag clears the active drag slot without any write.
func (b *Board) CancelDrag() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = nil
}

// ActiveDrag returns the id of the card being dragged, if any.
func (b *Board) ActiveDrag() *uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return nil
	}
	cp := *b.active
	return &cp
}

// CompleteDrag resolves the drop target against the current property
// set and issues at most one status update via the ItemMover.
//
// Target resolution: a column identifier wins; otherwise another
// property's id reassigns to that property's column; anything else
// (including an empty target) is a no-op. A drop onto the card's own
// column issues no write. The active slot is cleared in every case.
func (b *Board) CompleteDrag(ctx context.Context, id uuid.UUID, dropTargetID string, properties []domain.Property) (bool, error) {
	defer b.CancelDrag()

	if dropTargetID == "" {
		return false, nil
	}

	var dragged *domain.Property
	for i := range properties {
		if properties[i].ID == id {
			dragged = &properties[i]
			break
		}
	}
	if dragged == nil {
		return false, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, id)
	}

	target, ok := resolveTarget(dropTargetID, properties)
	if !ok {
		return false, nil
	}
	if target == dragged.Status {
		return false, nil
	}

	if err := b.mover.OnItemMoved(ctx, id, dragged.Status, target); err != nil {
		// The persisted status is untouched on failure, so the card
		// falls back into its original column on the next grouping.
		return false, err
	}
	return true, nil
}

// resolveTarget maps a drop target id onto a status column.
func resolveTarget(dropTargetID string, properties []domain.Property) (domain.Status, bool) {
	if st, err := domain.ParseStatus(dropTargetID); err == nil {
		return st, true
	}
	targetID, err := uuid.Parse(dropTargetID)
	if err != nil {
		return "", false
	}
	for i := range properties {
		if properties[i].ID == targetID {
			return properties[i].Status, true
		}
	}
	return "", false
}

// SetCollapsed toggles a column's collapsed flag. Pure UI state.
func (b *Board) SetCollapsed(st domain.Status, collapsed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if collapsed {
		b.collapsed[st] = true
	} else {
		delete(b.collapsed, st)
	}
}

// Collapsed returns the collapsed columns in column order.
func (b *Board) Collapsed() []domain.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Status, 0, len(b.collapsed))
	for _, st := range domain.StatusOrder {
		if b.collapsed[st] {
			out = append(out, st)
		}
	}
	return out
}
