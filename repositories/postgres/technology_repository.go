package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// TechnologyRepository implements the repositories.TechnologyRepository interface
type TechnologyRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTechnologyRepository creates a new technology repository
func NewTechnologyRepository(db *DB, logger *zap.Logger) repositories.TechnologyRepository {
	return &TechnologyRepository{
		db:     db,
		logger: logger,
	}
}

const technologyColumns = `id, name, type, description, efficiency, capital_cost, operating_cost,
	capacity_range, environmental_impact, created_by, created_at, updated_at`

// Create stores a technology entry; names are unique
func (r *TechnologyRepository) Create(ctx context.Context, t *models.TechnologyComparison) error {
	query := `INSERT INTO technology_comparison (` + technologyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Type,
		t.Description,
		t.Efficiency,
		t.CapitalCost,
		t.OperatingCost,
		t.CapacityRange,
		t.EnvironmentalImpact,
		t.CreatedBy,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create technology: %w", translateError(err))
	}
	return nil
}

// List retrieves all technologies ordered by name
func (r *TechnologyRepository) List(ctx context.Context) ([]*models.TechnologyComparison, error) {
	query := `SELECT ` + technologyColumns + ` FROM technology_comparison ORDER BY name`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list technologies: %w", err)
	}
	defer rows.Close()

	var out []*models.TechnologyComparison
	for rows.Next() {
		t := &models.TechnologyComparison{}
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Type,
			&t.Description,
			&t.Efficiency,
			&t.CapitalCost,
			&t.OperatingCost,
			&t.CapacityRange,
			&t.EnvironmentalImpact,
			&t.CreatedBy,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan technology: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate technologies: %w", err)
	}
	return out, nil
}
