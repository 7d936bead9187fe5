// Package users manages dashboard profiles and their role assignments.
package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services"
	"github.com/upb/wte-dashboard/backend/services/audit"
)

// RoleInvalidator drops cached roles after an assignment changes
type RoleInvalidator interface {
	InvalidateRole(userID uuid.UUID)
}

// UpdateProfileRequest renames a profile
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// AssignRoleRequest sets a user's role
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,dashboard_role"`
}

// Service manages profiles and role assignments
type Service struct {
	profiles repositories.ProfileRepository
	roles    repositories.UserRoleRepository
	txMgr    repositories.TransactionManager
	cache    RoleInvalidator
	auditor  audit.Recorder
	logger   *zap.Logger
}

// NewService creates a new users Service
func NewService(
	profiles repositories.ProfileRepository,
	roles repositories.UserRoleRepository,
	txMgr repositories.TransactionManager,
	cache RoleInvalidator,
	auditor audit.Recorder,
	logger *zap.Logger,
) *Service {
	return &Service{
		profiles: profiles,
		roles:    roles,
		txMgr:    txMgr,
		cache:    cache,
		auditor:  auditor,
		logger:   logger,
	}
}

// List returns every profile with its role
func (s *Service) List(ctx context.Context) ([]*models.ProfileWithRole, error) {
	list, err := s.profiles.ListWithRoles(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list profiles", err)
	}
	if list == nil {
		list = []*models.ProfileWithRole{}
	}
	for _, p := range list {
		// unknown stored roles are reported as no role
		if !p.Role.Valid() {
			p.Role = access.RoleNone
		}
	}
	return list, nil
}

// Get returns one profile
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, services.FromRepositoryError(err, services.ErrProfileNotFound, "failed to get profile")
	}
	return profile, nil
}

// Provision returns the user's profile, creating it from the token's email
// on first sign-in
func (s *Service) Provision(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, services.WrapInternal("failed to get profile", err)
	}

	profile = models.NewProfile(userID, email, defaultName(email))
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			// created concurrently
			return s.Get(ctx, userID)
		}
		return nil, services.FromRepositoryError(err, services.ErrProfileNotFound, "failed to create profile")
	}

	s.logger.Info("profile provisioned", zap.String("user_id", userID.String()))
	return profile, nil
}

func defaultName(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

// UpdateName renames a profile
func (s *Service) UpdateName(ctx context.Context, actor audit.Actor, id uuid.UUID, name string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "name is required", nil)
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := profile.Name
	profile.Name = name
	profile.UpdatedAt = time.Now()

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, services.FromRepositoryError(err, services.ErrProfileNotFound, "failed to update profile")
	}

	entry := audit.NewEntry(actor, models.AuditActionProfileUpdated, "profile", id).
		WithDetails(map[string]string{"previous_name": previous, "name": name})
	s.record(entry)
	return profile, nil
}

// AssignRole replaces the user's role. The profile must exist.
func (s *Service) AssignRole(ctx context.Context, actor audit.Actor, userID uuid.UUID, role access.Role) (*models.UserRoleAssignment, error) {
	if !role.Valid() {
		return nil, services.NewDomainError(services.ErrorTypeValidation, services.ErrInvalidRole.Message, nil).
			WithDetail("role", string(role))
	}

	var previous access.Role
	assignment, err := services.InTransaction(ctx, s.txMgr, func(ctx context.Context) (*models.UserRoleAssignment, error) {
		if _, err := s.profiles.GetByID(ctx, userID); err != nil {
			return nil, services.FromRepositoryError(err, services.ErrProfileNotFound, "failed to get profile")
		}

		current, err := s.roles.GetRole(ctx, userID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, services.WrapInternal("failed to get role", err)
		}
		previous = current

		a := models.NewUserRoleAssignment(userID, role)
		if err := s.roles.Upsert(ctx, a); err != nil {
			return nil, services.FromRepositoryError(err, services.ErrProfileNotFound, "failed to assign role")
		}
		return a, nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateRole(userID)

	s.logger.Info("role assigned",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)),
		zap.String("previous_role", string(previous)),
		zap.String("assigned_by", actor.UserID.String()))

	entry := audit.NewEntry(actor, models.AuditActionRoleAssigned, "user_role", userID).
		WithDetails(map[string]string{"role": string(role), "previous_role": string(previous)})
	s.record(entry)
	return assignment, nil
}

func (s *Service) record(entry *models.AuditLog) {
	if err := s.auditor.Record(entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("action", string(entry.Action)),
			zap.Error(err))
	}
}
