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

// PostgresAttachmentAdapter persists attachment records in the
// attachments table. Blob contents live in the bucket.
type PostgresAttachmentAdapter struct {
	pool *pgxpool.Pool
}

// NewPostgresAttachmentAdapter creates a new adapter instance.
func NewPostgresAttachmentAdapter(pool *pgxpool.Pool) (*PostgresAttachmentAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresAttachmentAdapter{pool: pool}, nil
}

const attachmentColumns = `id, property_id, file_name, file_path, file_type, file_size, mime_type,
	perceptual_hash, created_at`

func (a *PostgresAttachmentAdapter) Create(ctx context.Context, att domain.Attachment) (domain.Attachment, error) {
	att.CreatedAt = time.Now().UTC()

	_, err := a.pool.Exec(ctx,
		`INSERT INTO attachments (`+attachmentColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		att.ID, att.PropertyID, att.FileName, att.FilePath, string(att.FileType), att.FileSize,
		att.MimeType, att.PerceptualHash, att.CreatedAt,
	)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("PostgresAttachmentAdapter: failed to insert attachment: %w", err)
	}
	return att, nil
}

func (a *PostgresAttachmentAdapter) GetByID(ctx context.Context, id uuid.UUID) (domain.Attachment, error) {
	att, err := scanAttachment(a.pool.QueryRow(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attachment{}, fmt.Errorf("attachment %s: %w", id, domain.ErrAttachmentNotFound)
		}
		return domain.Attachment{}, fmt.Errorf("PostgresAttachmentAdapter: failed to query attachment %s: %w", id, err)
	}
	return att, nil
}

// Delete removes the record and returns it, so callers can clean up
// the blobs.
func (a *PostgresAttachmentAdapter) Delete(ctx context.Context, id uuid.UUID) (domain.Attachment, error) {
	att, err := scanAttachment(a.pool.QueryRow(ctx,
		`DELETE FROM attachments WHERE id = $1 RETURNING `+attachmentColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attachment{}, fmt.Errorf("attachment %s: %w", id, domain.ErrAttachmentNotFound)
		}
		return domain.Attachment{}, fmt.Errorf("PostgresAttachmentAdapter: failed to delete attachment %s: %w", id, err)
	}
	return att, nil
}

func (a *PostgresAttachmentAdapter) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Attachment, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT `+attachmentColumns+` FROM attachments
		 WHERE property_id = $1 ORDER BY created_at DESC`,
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("PostgresAttachmentAdapter: failed to query attachments: %w", err)
	}
	defer rows.Close()

	var attachments []domain.Attachment
	for rows.Next() {
		att, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresAttachmentAdapter: failed to scan attachment: %w", err)
		}
		attachments = append(attachments, att)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresAttachmentAdapter: error during rows iteration: %w", err)
	}
	return attachments, nil
}

func (a *PostgresAttachmentAdapter) FindByHash(ctx context.Context, propertyID uuid.UUID, hash string) (*domain.Attachment, error) {
	att, err := scanAttachment(a.pool.QueryRow(ctx,
		`SELECT `+attachmentColumns+` FROM attachments
		 WHERE property_id = $1 AND perceptual_hash = $2
		 ORDER BY created_at ASC LIMIT 1`,
		propertyID, hash,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("PostgresAttachmentAdapter: failed to query by hash: %w", err)
	}
	return &att, nil
}

func scanAttachment(row pgx.Row) (domain.Attachment, error) {
	var (
		att      domain.Attachment
		fileType string
	)
	err := row.Scan(&att.ID, &att.PropertyID, &att.FileName, &att.FilePath, &fileType,
		&att.FileSize, &att.MimeType, &att.PerceptualHash, &att.CreatedAt)
	if err != nil {
		return domain.Attachment{}, err
	}
	att.FileType = domain.AttachmentType(fileType)
	return att, nil
}
