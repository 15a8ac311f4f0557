package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresNoteAdapter persists notes in the notes table.
type PostgresNoteAdapter struct {
	pool *pgxpool.Pool
}

// NewPostgresNoteAdapter creates a new adapter instance.
func NewPostgresNoteAdapter(pool *pgxpool.Pool) (*PostgresNoteAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresNoteAdapter{pool: pool}, nil
}

func (a *PostgresNoteAdapter) Create(ctx context.Context, n domain.Note) (domain.Note, error) {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	_, err := a.pool.Exec(ctx,
		`INSERT INTO notes (id, property_id, body, created_at, updated_at) VALUES ($1,$2,$3,$4,$5)`,
		n.ID, n.PropertyID, n.Body, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return domain.Note{}, fmt.Errorf("PostgresNoteAdapter: failed to insert note: %w", err)
	}
	return n, nil
}

func (a *PostgresNoteAdapter) Update(ctx context.Context, id uuid.UUID, body string) (domain.Note, error) {
	var n domain.Note
	err := a.pool.QueryRow(ctx,
		`UPDATE notes SET body = $2, updated_at = $3 WHERE id = $1
		 RETURNING id, property_id, body, created_at, updated_at`,
		id, body, time.Now().UTC(),
	).Scan(&n.ID, &n.PropertyID, &n.Body, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, fmt.Errorf("note %s: %w", id, domain.ErrNoteNotFound)
		}
		return domain.Note{}, fmt.Errorf("PostgresNoteAdapter: failed to update note %s: %w", id, err)
	}
	return n, nil
}

// Delete removes the note and returns the deleted row, so callers can
// attribute the count delta to the owning property.
func (a *PostgresNoteAdapter) Delete(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	var n domain.Note
	err := a.pool.QueryRow(ctx,
		`DELETE FROM notes WHERE id = $1
		 RETURNING id, property_id, body, created_at, updated_at`,
		id,
	).Scan(&n.ID, &n.PropertyID, &n.Body, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, fmt.Errorf("note %s: %w", id, domain.ErrNoteNotFound)
		}
		return domain.Note{}, fmt.Errorf("PostgresNoteAdapter: failed to delete note %s: %w", id, err)
	}
	return n, nil
}

func (a *PostgresNoteAdapter) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Note, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT id, property_id, body, created_at, updated_at FROM notes
		 WHERE property_id = $1 ORDER BY created_at DESC`,
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("PostgresNoteAdapter: failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.PropertyID, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("PostgresNoteAdapter: failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresNoteAdapter: error during rows iteration: %w", err)
	}
	return notes, nil
}

func (a *PostgresNoteAdapter) CountsByProperty(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT property_id, COUNT(*) FROM notes GROUP BY property_id`)
	if err != nil {
		return nil, fmt.Errorf("PostgresNoteAdapter: failed to query note counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var propertyID uuid.UUID
		var count int
		if err := rows.Scan(&propertyID, &count); err != nil {
			return nil, fmt.Errorf("PostgresNoteAdapter: failed to scan note count: %w", err)
		}
		counts[propertyID] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresNoteAdapter: error during rows iteration: %w", err)
	}
	return counts, nil
}
