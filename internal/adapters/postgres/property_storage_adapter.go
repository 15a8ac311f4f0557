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

// PostgresPropertyAdapter persists properties in the properties table.
// Numeric fields with an "unknown" state are stored with the legacy
// sentinel convention: NULL means unset and 1 means unknown. The
// adapter translates both directions, so the rest of the code only
// sees OptionalInt. The schema cannot represent a genuine value of 1
// in these columns, so a known 1 written here reads back as unknown;
// no real listing has 1 sqm or costs 1 shekel, which is how the
// sentinel survived in the first place.
type PostgresPropertyAdapter struct {
	pool *pgxpool.Pool
}

// NewPostgresPropertyAdapter creates a new adapter instance.
func NewPostgresPropertyAdapter(pool *pgxpool.Pool) (*PostgresPropertyAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresPropertyAdapter{pool: pool}, nil
}

const propertyColumns = `id, title, address, rooms, square_meters, asked_price, balcony_square_meters,
	price_per_meter, contact_name, contact_phone, source, property_type, description, status, url,
	latitude, longitude, apartment_broker, is_flagged, rating, created_at, updated_at`

func (a *PostgresPropertyAdapter) Create(ctx context.Context, p domain.Property) (domain.Property, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.PricePerMeter = p.ComputePricePerMeter()

	query := `INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`

	_, err := a.pool.Exec(ctx, query,
		p.ID, p.Title, p.Address, p.Rooms,
		p.SquareMeters.ToLegacyInt(), p.AskedPrice.ToLegacyInt(), p.BalconySquareMeters.ToLegacyInt(),
		p.PricePerMeter, p.ContactName, p.ContactPhone, string(p.Source), string(p.PropertyType),
		p.Description, string(p.Status), p.URL, p.Latitude, p.Longitude, p.ApartmentBroker,
		p.IsFlagged, p.Rating, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, fmt.Errorf("PostgresPropertyAdapter: failed to insert property: %w", err)
	}
	return p, nil
}

// Update loads the row inside a transaction, applies the patch in
// memory and writes the full record back. Derived fields stay
// consistent because Apply recomputes them from the merged state.
func (a *PostgresPropertyAdapter) Update(ctx context.Context, id uuid.UUID, patch domain.PropertyPatch) (domain.Property, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return domain.Property{}, fmt.Errorf("PostgresPropertyAdapter: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := scanProperty(tx.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, fmt.Errorf("property %s: %w", id, domain.ErrPropertyNotFound)
		}
		return domain.Property{}, fmt.Errorf("PostgresPropertyAdapter: failed to load property for update: %w", err)
	}

	updated := patch.Apply(current)
	updated.UpdatedAt = time.Now().UTC()
	if err := updated.Validate(); err != nil {
		return domain.Property{}, err
	}

	query := `UPDATE properties SET title=$2, address=$3, rooms=$4, square_meters=$5, asked_price=$6,
		balcony_square_meters=$7, price_per_meter=$8, contact_name=$9, contact_phone=$10, source=$11,
		property_type=$12, description=$13, status=$14, url=$15, latitude=$16, longitude=$17,
		apartment_broker=$18, is_flagged=$19, rating=$20, updated_at=$21
		WHERE id = $1`

	_, err = tx.Exec(ctx, query,
		updated.ID, updated.Title, updated.Address, updated.Rooms,
		updated.SquareMeters.ToLegacyInt(), updated.AskedPrice.ToLegacyInt(), updated.BalconySquareMeters.ToLegacyInt(),
		updated.PricePerMeter, updated.ContactName, updated.ContactPhone, string(updated.Source),
		string(updated.PropertyType), updated.Description, string(updated.Status), updated.URL,
		updated.Latitude, updated.Longitude, updated.ApartmentBroker, updated.IsFlagged, updated.Rating,
		updated.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, fmt.Errorf("PostgresPropertyAdapter: failed to update property %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Property{}, fmt.Errorf("PostgresPropertyAdapter: failed to commit update: %w", err)
	}
	return updated, nil
}

func (a *PostgresPropertyAdapter) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	p, err := scanProperty(a.pool.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, fmt.Errorf("property %s: %w", id, domain.ErrPropertyNotFound)
		}
		return domain.Property{}, fmt.Errorf("PostgresPropertyAdapter: failed to query property %s: %w", id, err)
	}
	return p, nil
}

func (a *PostgresPropertyAdapter) List(ctx context.Context) ([]domain.Property, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("PostgresPropertyAdapter: failed to query properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresPropertyAdapter: failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresPropertyAdapter: error during rows iteration: %w", err)
	}
	return properties, nil
}

// Delete removes the property and its owned notes and attachment rows
// in one transaction. The keys of the deleted attachments come back so
// the caller can clean the blob bucket.
func (a *PostgresPropertyAdapter) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("PostgresPropertyAdapter: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`DELETE FROM attachments WHERE property_id = $1 RETURNING file_path`, id)
	if err != nil {
		return nil, fmt.Errorf("PostgresPropertyAdapter: failed to delete attachments of %s: %w", id, err)
	}
	var blobKeys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, fmt.Errorf("PostgresPropertyAdapter: failed to scan attachment key: %w", err)
		}
		blobKeys = append(blobKeys, key)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresPropertyAdapter: error during attachment rows iteration: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM notes WHERE property_id = $1`, id); err != nil {
		return nil, fmt.Errorf("PostgresPropertyAdapter: failed to delete notes of %s: %w", id, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("PostgresPropertyAdapter: failed to delete property %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("property %s: %w", id, domain.ErrPropertyNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("PostgresPropertyAdapter: failed to commit delete: %w", err)
	}
	return blobKeys, nil
}

// scanProperty reads one row in propertyColumns order.
func scanProperty(row pgx.Row) (domain.Property, error) {
	var (
		p                              domain.Property
		squareMeters, askedPrice       *int
		balcony                        *int
		source, propertyType, statusDB string
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Address, &p.Rooms, &squareMeters, &askedPrice, &balcony,
		&p.PricePerMeter, &p.ContactName, &p.ContactPhone, &source, &propertyType, &p.Description,
		&statusDB, &p.URL, &p.Latitude, &p.Longitude, &p.ApartmentBroker, &p.IsFlagged, &p.Rating,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, err
	}
	p.SquareMeters = domain.FromLegacyInt(squareMeters)
	p.AskedPrice = domain.FromLegacyInt(askedPrice)
	p.BalconySquareMeters = domain.FromLegacyInt(balcony)
	p.Source = domain.Source(source)
	p.PropertyType = domain.PropertyType(propertyType)
	p.Status = domain.Status(statusDB)
	return p, nil
}
