package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// ProfileRepository implements the repositories.ProfileRepository interface
type ProfileRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB, logger *zap.Logger) repositories.ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	executor := r.db.conn(ctx)
	_, err := executor.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.Name,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", translateError(err))
	}

	r.logger.Debug("profile created", zap.String("id", profile.ID.String()), zap.String("email", profile.Email))
	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, email, name, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	executor := r.db.conn(ctx)
	profile := &models.Profile{}

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Name,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, translateError(err))
	}

	return profile, nil
}

// ListWithRoles retrieves every profile with its role, ordered by name
func (r *ProfileRepository) ListWithRoles(ctx context.Context) ([]*models.ProfileWithRole, error) {
	query := `
		SELECT p.id, p.email, p.name, p.created_at, p.updated_at, ur.role
		FROM profiles p
		LEFT JOIN user_roles ur ON ur.user_id = p.id
		ORDER BY p.name, p.email
	`

	executor := r.db.conn(ctx)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var out []*models.ProfileWithRole
	for rows.Next() {
		p := &models.ProfileWithRole{}
		var role sql.NullString
		if err := rows.Scan(
			&p.ID,
			&p.Email,
			&p.Name,
			&p.CreatedAt,
			&p.UpdatedAt,
			&role,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		if role.Valid {
			p.Role = access.Role(role.String)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return out, nil
}

// Update updates a profile's name and email
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET email = $2, name = $3, updated_at = $4
		WHERE id = $1
	`

	executor := r.db.conn(ctx)
	res, err := executor.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.Name,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", translateError(err))
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("failed to update profile %s: %w", profile.ID, err)
	}

	return nil
}
