// Package waste manages municipal collection records and their analysis.
package waste

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services"
	"github.com/upb/wte-dashboard/backend/services/audit"
)

const maxPageSize = 500

// CreateRequest is the payload for a new collection record
type CreateRequest struct {
	Municipality   string    `json:"municipality" validate:"required,max=200"`
	WasteType      string    `json:"waste_type" validate:"required,max=100"`
	Quantity       float64   `json:"quantity" validate:"gte=0"`
	Unit           string    `json:"unit,omitempty" validate:"max=20"`
	CollectionDate time.Time `json:"collection_date" validate:"required"`
}

// UpdateRequest changes the fields that are set
type UpdateRequest struct {
	Municipality   *string    `json:"municipality,omitempty" validate:"omitempty,min=1,max=200"`
	WasteType      *string    `json:"waste_type,omitempty" validate:"omitempty,min=1,max=100"`
	Quantity       *float64   `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Unit           *string    `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
	CollectionDate *time.Time `json:"collection_date,omitempty"`
}

// Service manages waste collection records
type Service struct {
	repo    repositories.WasteDataRepository
	auditor audit.Recorder
	logger  *zap.Logger
}

// NewService creates a new waste Service
func NewService(repo repositories.WasteDataRepository, auditor audit.Recorder, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

// List returns collection records newest first
func (s *Service) List(ctx context.Context, filter repositories.WasteFilter) ([]*models.WasteData, error) {
	if filter.Limit <= 0 || filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "from must not be after to", nil)
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, services.WrapInternal("failed to list waste data", err)
	}
	if records == nil {
		records = []*models.WasteData{}
	}
	return records, nil
}

// Summary aggregates every record matching filter; paging is ignored
func (s *Service) Summary(ctx context.Context, filter repositories.WasteFilter) (Summary, error) {
	filter.Limit, filter.Offset = 0, 0
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return Summary{}, services.WrapInternal("failed to summarize waste data", err)
	}
	return Summarize(records), nil
}

// Get returns one collection record
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.WasteData, error) {
	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, services.FromRepositoryError(err, services.ErrWasteDataNotFound, "failed to get waste data")
	}
	return data, nil
}

// Create stores a new collection record
func (s *Service) Create(ctx context.Context, actor audit.Actor, req CreateRequest) (*models.WasteData, error) {
	if req.Quantity < 0 {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "quantity must not be negative", nil)
	}

	data := models.NewWasteData(req.Municipality, req.WasteType, req.Quantity, req.Unit, req.CollectionDate)
	if actor.UserID != uuid.Nil {
		data.CreatedBy = &actor.UserID
	}

	if err := s.repo.Create(ctx, data); err != nil {
		return nil, services.FromRepositoryError(err, services.ErrWasteDataNotFound, "failed to create waste data")
	}

	s.record(actor, models.AuditActionWasteDataCreated, data.ID, map[string]interface{}{
		"municipality": data.Municipality,
		"waste_type":   data.WasteType,
		"quantity":     data.Quantity,
	})
	return data, nil
}

// Update applies req to an existing record
func (s *Service) Update(ctx context.Context, actor audit.Actor, id uuid.UUID, req UpdateRequest) (*models.WasteData, error) {
	data, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := []string{}
	if req.Municipality != nil {
		data.Municipality = *req.Municipality
		changed = append(changed, "municipality")
	}
	if req.WasteType != nil {
		data.WasteType = *req.WasteType
		changed = append(changed, "waste_type")
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, services.NewDomainError(services.ErrorTypeValidation, "quantity must not be negative", nil)
		}
		data.Quantity = *req.Quantity
		changed = append(changed, "quantity")
	}
	if req.Unit != nil {
		data.Unit = *req.Unit
		changed = append(changed, "unit")
	}
	if req.CollectionDate != nil {
		data.CollectionDate = *req.CollectionDate
		changed = append(changed, "collection_date")
	}
	data.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, data); err != nil {
		return nil, services.FromRepositoryError(err, services.ErrWasteDataNotFound, "failed to update waste data")
	}

	s.record(actor, models.AuditActionWasteDataUpdated, data.ID, map[string]interface{}{"changed": changed})
	return data, nil
}

// Delete removes a record
func (s *Service) Delete(ctx context.Context, actor audit.Actor, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return services.FromRepositoryError(err, services.ErrWasteDataNotFound, "failed to delete waste data")
	}
	s.record(actor, models.AuditActionWasteDataDeleted, id, nil)
	return nil
}

func (s *Service) record(actor audit.Actor, action models.AuditAction, id uuid.UUID, details interface{}) {
	entry := audit.NewEntry(actor, action, "waste_data", id)
	if details != nil {
		entry.WithDetails(details)
	}
	if err := s.auditor.Record(entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
