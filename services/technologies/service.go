// Package technologies manages the technology comparison entries.
package technologies

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services"
	"github.com/upb/wte-dashboard/backend/services/audit"
)

// CreateRequest is the payload for a new technology entry
type CreateRequest struct {
	Name                string   `json:"name" validate:"required,max=200"`
	Type                string   `json:"type" validate:"required,max=100"`
	Description         *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Efficiency          *float64 `json:"efficiency,omitempty" validate:"omitempty,gte=0,lte=100"`
	CapitalCost         *float64 `json:"capital_cost,omitempty" validate:"omitempty,gte=0"`
	OperatingCost       *float64 `json:"operating_cost,omitempty" validate:"omitempty,gte=0"`
	CapacityRange       *string  `json:"capacity_range,omitempty" validate:"omitempty,max=100"`
	EnvironmentalImpact *string  `json:"environmental_impact,omitempty" validate:"omitempty,max=2000"`
}

// Service manages technology comparison entries
type Service struct {
	repo    repositories.TechnologyRepository
	auditor audit.Recorder
	logger  *zap.Logger
}

// NewService creates a new technologies Service
func NewService(repo repositories.TechnologyRepository, auditor audit.Recorder, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

// List returns every technology entry
func (s *Service) List(ctx context.Context) ([]*models.TechnologyComparison, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list technologies", err)
	}
	if list == nil {
		list = []*models.TechnologyComparison{}
	}
	return list, nil
}

// Create stores a new technology entry; names are unique
func (s *Service) Create(ctx context.Context, actor audit.Actor, req CreateRequest) (*models.TechnologyComparison, error) {
	if req.Name == "" || req.Type == "" {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "name and type are required", nil)
	}

	tech := models.NewTechnologyComparison(req.Name, req.Type)
	tech.Description = req.Description
	tech.Efficiency = req.Efficiency
	tech.CapitalCost = req.CapitalCost
	tech.OperatingCost = req.OperatingCost
	tech.CapacityRange = req.CapacityRange
	tech.EnvironmentalImpact = req.EnvironmentalImpact
	if actor.UserID != uuid.Nil {
		tech.CreatedBy = &actor.UserID
	}

	if err := s.repo.Create(ctx, tech); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, services.NewDomainError(services.ErrorTypeConflict, services.ErrDuplicateTechnology.Message, err).
				WithDetail("name", req.Name)
		}
		return nil, services.FromRepositoryError(err, services.ErrInternal, "failed to create technology")
	}

	entry := audit.NewEntry(actor, models.AuditActionTechnologyCreated, "technology", tech.ID).
		WithDetails(map[string]string{"name": tech.Name, "type": tech.Type})
	if err := s.auditor.Record(entry); err != nil {
		s.logger.Warn("failed to record audit entry", zap.Error(err))
	}
	return tech, nil
}
