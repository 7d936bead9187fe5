package scenario

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services"
	"github.com/upb/wte-dashboard/backend/services/audit"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// SaveRequest names a simulation to keep
type SaveRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Input       Input  `json:"input"`
}

// Service runs and stores scenario simulations
type Service struct {
	repo    repositories.ScenarioRepository
	auditor audit.Recorder
	logger  *zap.Logger
}

// NewService creates a new scenario Service
func NewService(repo repositories.ScenarioRepository, auditor audit.Recorder, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

// Save simulates req.Input and stores the named result
func (s *Service) Save(ctx context.Context, actor audit.Actor, req SaveRequest) (*models.ScenarioSimulation, error) {
	if req.Name == "" {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "scenario name is required", nil)
	}

	sim, err := Simulate(req.Input)
	if err != nil {
		return nil, err
	}

	scenario := models.NewScenarioSimulation(req.Name).WithResults(sim)
	if req.Description != "" {
		scenario.Description = &req.Description
	}
	tech := string(sim.Input.Technology)
	scenario.Technology = &tech
	volume := sim.Input.WasteVolume
	scenario.WasteInput = &volume
	if actor.UserID != uuid.Nil {
		scenario.CreatedBy = &actor.UserID
	}

	if err := s.repo.Create(ctx, scenario); err != nil {
		return nil, services.FromRepositoryError(err, services.ErrScenarioNotFound, "failed to save scenario")
	}

	s.logger.Info("scenario saved",
		zap.String("scenario_id", scenario.ID.String()),
		zap.String("technology", tech),
		zap.String("request_id", actor.RequestID))

	entry := audit.NewEntry(actor, models.AuditActionScenarioSaved, "scenario", scenario.ID).
		WithDetails(map[string]interface{}{"name": scenario.Name, "technology": tech})
	if err := s.auditor.Record(entry); err != nil {
		s.logger.Warn("failed to record audit entry", zap.Error(err))
	}

	return scenario, nil
}

// Get returns a saved scenario
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ScenarioSimulation, error) {
	scenario, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, services.FromRepositoryError(err, services.ErrScenarioNotFound, "failed to get scenario")
	}
	return scenario, nil
}

// List returns saved scenarios newest first
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.ScenarioSimulation, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	scenarios, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, services.WrapInternal("failed to list scenarios", err)
	}
	if scenarios == nil {
		scenarios = []*models.ScenarioSimulation{}
	}
	return scenarios, nil
}
