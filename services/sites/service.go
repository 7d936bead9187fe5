// Package sites manages candidate and operating WtE plant locations.
package sites

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services"
	"github.com/upb/wte-dashboard/backend/services/audit"
)

// CreateRequest is the payload for a new site
type CreateRequest struct {
	Name               string            `json:"name" validate:"required,max=200"`
	LocationName       string            `json:"location_name" validate:"required,max=200"`
	Latitude           float64           `json:"latitude" validate:"latitude"`
	Longitude          float64           `json:"longitude" validate:"longitude"`
	Capacity           float64           `json:"capacity" validate:"gte=0"`
	Technology         string            `json:"technology" validate:"required,max=100"`
	Status             models.SiteStatus `json:"status,omitempty" validate:"omitempty,site_status"`
	EconomicScore      *float64          `json:"economic_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	EnvironmentalScore *float64          `json:"environmental_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// UpdateRequest changes the fields that are set
type UpdateRequest struct {
	Name               *string            `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	LocationName       *string            `json:"location_name,omitempty" validate:"omitempty,min=1,max=200"`
	Latitude           *float64           `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude          *float64           `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Capacity           *float64           `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Technology         *string            `json:"technology,omitempty" validate:"omitempty,min=1,max=100"`
	Status             *models.SiteStatus `json:"status,omitempty" validate:"omitempty,site_status"`
	EconomicScore      *float64           `json:"economic_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	EnvironmentalScore *float64           `json:"environmental_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Service manages WtE sites
type Service struct {
	repo    repositories.SiteRepository
	auditor audit.Recorder
	logger  *zap.Logger
}

// NewService creates a new sites Service
func NewService(repo repositories.SiteRepository, auditor audit.Recorder, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

// List returns the sites matching filter
func (s *Service) List(ctx context.Context, filter repositories.SiteFilter) ([]*models.WteSite, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, services.ErrInvalidSiteStatus
	}
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, services.WrapInternal("failed to list sites", err)
	}
	if list == nil {
		list = []*models.WteSite{}
	}
	return list, nil
}

// Suggestions returns the sites matching filter ranked by overall score,
// best first. Unscored sites come last, in name order.
func (s *Service) Suggestions(ctx context.Context, filter repositories.SiteFilter) ([]*models.WteSite, error) {
	list, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	Rank(list)
	return list, nil
}

// Rank sorts sites in place by overall score descending
func Rank(list []*models.WteSite) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].OverallScore(), list[j].OverallScore()
		switch {
		case a != nil && b != nil && *a != *b:
			return *a > *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		default:
			return list[i].Name < list[j].Name
		}
	})
}

// Get returns one site
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.WteSite, error) {
	site, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, services.FromRepositoryError(err, services.ErrSiteNotFound, "failed to get site")
	}
	return site, nil
}

// Create stores a new site
func (s *Service) Create(ctx context.Context, actor audit.Actor, req CreateRequest) (*models.WteSite, error) {
	site := models.NewWteSite(req.Name, req.LocationName, req.Latitude, req.Longitude, req.Capacity, req.Technology)
	if req.Status != "" {
		site.Status = req.Status
	}
	site.EconomicScore = req.EconomicScore
	site.EnvironmentalScore = req.EnvironmentalScore
	if actor.UserID != uuid.Nil {
		site.CreatedBy = &actor.UserID
	}

	if err := validate(site); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, site); err != nil {
		return nil, services.FromRepositoryError(err, services.ErrSiteNotFound, "failed to create site")
	}

	s.logger.Info("site created",
		zap.String("site_id", site.ID.String()),
		zap.String("name", site.Name),
		zap.String("request_id", actor.RequestID))
	s.record(actor, models.AuditActionSiteCreated, site.ID, map[string]interface{}{"name": site.Name})
	return site, nil
}

// Update applies req to an existing site
func (s *Service) Update(ctx context.Context, actor audit.Actor, id uuid.UUID, req UpdateRequest) (*models.WteSite, error) {
	site, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := []string{}
	set := func(field string, apply func()) {
		apply()
		changed = append(changed, field)
	}
	if req.Name != nil {
		set("name", func() { site.Name = *req.Name })
	}
	if req.LocationName != nil {
		set("location_name", func() { site.LocationName = *req.LocationName })
	}
	if req.Latitude != nil {
		set("latitude", func() { site.Latitude = *req.Latitude })
	}
	if req.Longitude != nil {
		set("longitude", func() { site.Longitude = *req.Longitude })
	}
	if req.Capacity != nil {
		set("capacity", func() { site.Capacity = *req.Capacity })
	}
	if req.Technology != nil {
		set("technology", func() { site.Technology = *req.Technology })
	}
	if req.Status != nil {
		set("status", func() { site.Status = *req.Status })
	}
	if req.EconomicScore != nil {
		set("economic_score", func() { site.EconomicScore = req.EconomicScore })
	}
	if req.EnvironmentalScore != nil {
		set("environmental_score", func() { site.EnvironmentalScore = req.EnvironmentalScore })
	}

	if err := validate(site); err != nil {
		return nil, err
	}
	site.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, site); err != nil {
		return nil, services.FromRepositoryError(err, services.ErrSiteNotFound, "failed to update site")
	}

	s.record(actor, models.AuditActionSiteUpdated, site.ID, map[string]interface{}{"changed": changed})
	return site, nil
}

// Delete removes a site
func (s *Service) Delete(ctx context.Context, actor audit.Actor, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return services.FromRepositoryError(err, services.ErrSiteNotFound, "failed to delete site")
	}
	s.record(actor, models.AuditActionSiteDeleted, id, nil)
	return nil
}

func validate(site *models.WteSite) error {
	if site.Latitude < -90 || site.Latitude > 90 || site.Longitude < -180 || site.Longitude > 180 {
		return services.ErrInvalidCoordinates
	}
	if !site.Status.Valid() {
		return services.ErrInvalidSiteStatus
	}
	if site.Capacity < 0 {
		return services.NewDomainError(services.ErrorTypeValidation, "capacity must not be negative", nil)
	}
	for _, score := range []*float64{site.EconomicScore, site.EnvironmentalScore} {
		if score != nil && (*score < 0 || *score > 100) {
			return services.NewDomainError(services.ErrorTypeValidation, "scores must be between 0 and 100", nil)
		}
	}
	return nil
}

func (s *Service) record(actor audit.Actor, action models.AuditAction, id uuid.UUID, details interface{}) {
	entry := audit.NewEntry(actor, action, "wte_site", id)
	if details != nil {
		entry.WithDetails(details)
	}
	if err := s.auditor.Record(entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
