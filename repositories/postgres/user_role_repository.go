package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// UserRoleRepository implements the repositories.UserRoleRepository interface
type UserRoleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRoleRepository creates a new role assignment repository
func NewUserRoleRepository(db *DB, logger *zap.Logger) repositories.UserRoleRepository {
	return &UserRoleRepository{
		db:     db,
		logger: logger,
	}
}

// GetRole returns the stored role string. Values outside the known role set
// are returned as-is; callers decide how to treat them.
func (r *UserRoleRepository) GetRole(ctx context.Context, userID uuid.UUID) (access.Role, error) {
	query := `SELECT role FROM user_roles WHERE user_id = $1`

	executor := r.db.conn(ctx)
	var role string
	if err := executor.QueryRowContext(ctx, query, userID).Scan(&role); err != nil {
		return access.RoleNone, fmt.Errorf("failed to get role for user %s: %w", userID, translateError(err))
	}

	return access.Role(role), nil
}

// Upsert replaces the user's role assignment
func (r *UserRoleRepository) Upsert(ctx context.Context, assignment *models.UserRoleAssignment) error {
	query := `
		INSERT INTO user_roles (id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`

	executor := r.db.conn(ctx)
	_, err := executor.ExecContext(ctx, query,
		assignment.ID,
		assignment.UserID,
		string(assignment.Role),
		assignment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", translateError(err))
	}

	r.logger.Debug("role assigned",
		zap.String("user_id", assignment.UserID.String()),
		zap.String("role", assignment.Role.String()),
	)
	return nil
}
