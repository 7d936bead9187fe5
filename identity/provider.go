package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services"
)

// Identity is an authenticated dashboard user. Role is access.RoleNone when
// the user has no (or an unrecognised) role assignment.
type Identity struct {
	UserID uuid.UUID   `json:"user_id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   access.Role `json:"role"`
}

// Provider resolves access tokens into identities
type Provider struct {
	validator TokenValidator
	profiles  repositories.ProfileRepository
	roles     repositories.UserRoleRepository
	cache     *RoleCache
	logger    *zap.Logger
}

// NewProvider creates a new Provider. cache may be nil.
func NewProvider(
	validator TokenValidator,
	profiles repositories.ProfileRepository,
	roles repositories.UserRoleRepository,
	cache *RoleCache,
	logger *zap.Logger,
) *Provider {
	return &Provider{
		validator: validator,
		profiles:  profiles,
		roles:     roles,
		cache:     cache,
		logger:    logger,
	}
}

// Resolve validates the token and loads the user's profile and role.
// Token problems return ErrInvalidToken or ErrTokenExpired; storage
// failures come back as external service errors.
func (p *Provider) Resolve(ctx context.Context, token string) (*Identity, error) {
	claims, err := p.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	id := &Identity{UserID: claims.Sub, Email: claims.Email}

	profile, err := p.profiles.GetByID(ctx, claims.Sub)
	switch {
	case err == nil:
		id.Name = profile.Name
		if profile.Email != "" {
			id.Email = profile.Email
		}
	case errors.Is(err, repositories.ErrNotFound):
		p.logger.Debug("no profile for authenticated user", zap.String("user_id", claims.Sub.String()))
	default:
		return nil, services.WrapExternal("failed to load profile", err)
	}

	role, err := p.RoleOf(ctx, claims.Sub)
	if err != nil {
		return nil, err
	}
	id.Role = role
	return id, nil
}

// RoleOf returns the user's dashboard role, consulting the cache first.
// Missing and unrecognised assignments both yield access.RoleNone.
func (p *Provider) RoleOf(ctx context.Context, userID uuid.UUID) (access.Role, error) {
	if role, ok := p.cache.Get(userID); ok {
		return role, nil
	}
	gen := p.cache.Generation(userID)

	stored, err := p.roles.GetRole(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return access.RoleNone, services.WrapExternal("failed to load role", err)
	}

	role, ok := access.ParseRole(string(stored))
	if !ok && stored != access.RoleNone {
		p.logger.Warn("unrecognised role assignment",
			zap.String("user_id", userID.String()),
			zap.String("role", string(stored)))
	}

	// an assignment that landed during the read already invalidated this value
	if !p.cache.SetIfCurrent(userID, role, gen) {
		p.logger.Debug("role changed during lookup, not caching", zap.String("user_id", userID.String()))
	}
	return role, nil
}

// InvalidateRole drops a cached role after it changes
func (p *Provider) InvalidateRole(userID uuid.UUID) {
	p.cache.Invalidate(userID)
}
