package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// SiteRepository implements the repositories.SiteRepository interface
type SiteRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewSiteRepository creates a new site repository
func NewSiteRepository(db *DB, logger *zap.Logger) repositories.SiteRepository {
	return &SiteRepository{
		db:     db,
		logger: logger,
	}
}

const siteColumns = `id, name, location_name, latitude, longitude, capacity, technology, status,
	economic_score, environmental_score, created_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSite(row rowScanner) (*models.WteSite, error) {
	site := &models.WteSite{}
	err := row.Scan(
		&site.ID,
		&site.Name,
		&site.LocationName,
		&site.Latitude,
		&site.Longitude,
		&site.Capacity,
		&site.Technology,
		&site.Status,
		&site.EconomicScore,
		&site.EnvironmentalScore,
		&site.CreatedBy,
		&site.CreatedAt,
		&site.UpdatedAt,
	)
	return site, err
}

// Create creates a new site
func (r *SiteRepository) Create(ctx context.Context, site *models.WteSite) error {
	query := `INSERT INTO wte_sites (` + siteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	executor := r.db.conn(ctx)
	_, err := executor.ExecContext(ctx, query,
		site.ID,
		site.Name,
		site.LocationName,
		site.Latitude,
		site.Longitude,
		site.Capacity,
		site.Technology,
		string(site.Status),
		site.EconomicScore,
		site.EnvironmentalScore,
		site.CreatedBy,
		site.CreatedAt,
		site.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create site: %w", translateError(err))
	}

	r.logger.Debug("site created", zap.String("id", site.ID.String()), zap.String("name", site.Name))
	return nil
}

// GetByID retrieves a site by ID
func (r *SiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WteSite, error) {
	query := `SELECT ` + siteColumns + ` FROM wte_sites WHERE id = $1`

	site, err := scanSite(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get site %s: %w", id, translateError(err))
	}
	return site, nil
}

// List retrieves sites matching the filter ordered by name
func (r *SiteRepository) List(ctx context.Context, filter repositories.SiteFilter) ([]*models.WteSite, error) {
	var where whereClause
	if filter.Status != "" {
		where.add("status = $%d", string(filter.Status))
	}
	if filter.Technology != "" {
		where.add("technology = $%d", filter.Technology)
	}
	query := `SELECT ` + siteColumns + ` FROM wte_sites` + where.String() + ` ORDER BY name`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []*models.WteSite
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sites: %w", err)
	}
	return sites, nil
}

// Update updates a site's mutable fields
func (r *SiteRepository) Update(ctx context.Context, site *models.WteSite) error {
	query := `
		UPDATE wte_sites
		SET name = $2, location_name = $3, latitude = $4, longitude = $5, capacity = $6,
		    technology = $7, status = $8, economic_score = $9, environmental_score = $10,
		    updated_at = $11
		WHERE id = $1
	`

	res, err := r.db.conn(ctx).ExecContext(ctx, query,
		site.ID,
		site.Name,
		site.LocationName,
		site.Latitude,
		site.Longitude,
		site.Capacity,
		site.Technology,
		string(site.Status),
		site.EconomicScore,
		site.EnvironmentalScore,
		site.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update site: %w", translateError(err))
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("failed to update site %s: %w", site.ID, err)
	}
	return nil
}

// Delete deletes a site
func (r *SiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `DELETE FROM wte_sites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", translateError(err))
	}
	if err := expectOneRow(res); err != nil {
		return fmt.Errorf("failed to delete site %s: %w", id, err)
	}

	r.logger.Debug("site deleted", zap.String("id", id.String()))
	return nil
}
