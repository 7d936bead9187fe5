package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// ScenarioRepository implements the repositories.ScenarioRepository interface
type ScenarioRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewScenarioRepository creates a new scenario repository
func NewScenarioRepository(db *DB, logger *zap.Logger) repositories.ScenarioRepository {
	return &ScenarioRepository{
		db:     db,
		logger: logger,
	}
}

const scenarioColumns = `id, name, description, technology, waste_input, capacity, results, created_by, created_at, updated_at`

func scanScenario(row rowScanner) (*models.ScenarioSimulation, error) {
	s := &models.ScenarioSimulation{}
	var results []byte
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Technology,
		&s.WasteInput,
		&s.Capacity,
		&results,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if len(results) > 0 {
		s.Results = results
	}
	return s, err
}

// Create stores a named scenario
func (r *ScenarioRepository) Create(ctx context.Context, s *models.ScenarioSimulation) error {
	query := `INSERT INTO scenario_simulations (` + scenarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Description,
		s.Technology,
		s.WasteInput,
		s.Capacity,
		nullableJSON(s.Results),
		s.CreatedBy,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create scenario: %w", translateError(err))
	}

	r.logger.Debug("scenario saved", zap.String("id", s.ID.String()), zap.String("name", s.Name))
	return nil
}

// GetByID retrieves a scenario by ID
func (r *ScenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScenarioSimulation, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenario_simulations WHERE id = $1`

	s, err := scanScenario(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario %s: %w", id, translateError(err))
	}
	return s, nil
}

// List retrieves scenarios newest first
func (r *ScenarioRepository) List(ctx context.Context, limit, offset int) ([]*models.ScenarioSimulation, error) {
	var where whereClause
	query := `SELECT ` + scenarioColumns + ` FROM scenario_simulations ORDER BY created_at DESC`
	query += where.page(limit, offset)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []*models.ScenarioSimulation
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scenarios: %w", err)
	}
	return out, nil
}
