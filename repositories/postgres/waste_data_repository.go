package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// WasteDataRepository implements the repositories.WasteDataRepository interface
type WasteDataRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewWasteDataRepository creates a new waste data repository
func NewWasteDataRepository(db *DB, logger *zap.Logger) repositories.WasteDataRepository {
	return &WasteDataRepository{
		db:     db,
		logger: logger,
	}
}

const wasteColumns = `id, municipality, waste_type, quantity, unit, collection_date, created_by, created_at, updated_at`

func scanWasteData(row rowScanner) (*models.WasteData, error) {
	d := &models.WasteData{}
	err := row.Scan(
		&d.ID,
		&d.Municipality,
		&d.WasteType,
		&d.Quantity,
		&d.Unit,
		&d.CollectionDate,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

// Create creates a new collection record
func (r *WasteDataRepository) Create(ctx context.Context, data *models.WasteData) error {
	query := `INSERT INTO waste_data (` + wasteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		data.ID,
		data.Municipality,
		data.WasteType,
		data.Quantity,
		data.Unit,
		data.CollectionDate,
		data.CreatedBy,
		data.CreatedAt,
		data.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create waste data: %w", translateError(err))
	}

	r.logger.Debug("waste data created",
		zap.String("id", data.ID.String()),
		zap.String("municipality", data.Municipality),
	)
	return nil
}

// GetByID retrieves a collection record by ID
func (r *WasteDataRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WasteData, error) {
	query := `SELECT ` + wasteColumns + ` FROM waste_data WHERE id = $1`

	d, err := scanWasteData(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get waste data %s: %w", id, translateError(err))
	}
	return d, nil
}

// List retrieves records newest collection date first
func (r *WasteDataRepository) List(ctx context.Context, filter repositories.WasteFilter) ([]*models.WasteData, error) {
	var where whereClause
	if filter.Municipality != "" {
		where.add("municipality = $%d", filter.Municipality)
	}
	if filter.WasteType != "" {
		where.add("waste_type = $%d", filter.WasteType)
	}
	if filter.From != nil {
		where.add("collection_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		where.add("collection_date <= $%d", *filter.To)
	}
	query := `SELECT ` + wasteColumns + ` FROM waste_data` + where.String() +
		` ORDER BY collection_date DESC, created_at DESC`
	query += where.page(filter.Limit, filter.Offset)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list waste data: %w", err)
	}
	defer rows.Close()

	var out []*models.WasteData
	for rows.Next() {
		d, err := scanWasteData(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan waste data: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate waste data: %w", err)
	}
	return out, nil
}

// Update updates a collection record
func (r *WasteDataRepository) Update(ctx context.Context, data *models.WasteData) error {
	query := `
		UPDATE waste_data
		SET municipality = $2, waste_type = $3, quantity = $4, unit = $5,
		    collection_date = $6, updated_at = $7
		WHERE id = $1
	`

	res, err := r.db.conn(ctx).ExecContext(ctx, query,
		data.ID,
		data.Municipality,
		data.WasteType,
		data.Quantity,
		data.Unit,
		data.CollectionDate,
		data.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update waste data: %w", translateError(err))
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("failed to update waste data %s: %w", data.ID, err)
	}
	return nil
}

// Delete deletes a collection record
func (r *WasteDataRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `DELETE FROM waste_data WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete waste data: %w", translateError(err))
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("failed to delete waste data %s: %w", id, err)
	}
	return nil
}
