package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// MonitoringRepository implements the repositories.MonitoringRepository interface
type MonitoringRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMonitoringRepository creates a new telemetry repository
func NewMonitoringRepository(db *DB, logger *zap.Logger) repositories.MonitoringRepository {
	return &MonitoringRepository{
		db:     db,
		logger: logger,
	}
}

const monitoringColumns = `id, site_id, timestamp, primary_airflow, secondary_airflow, furnace_pressure,
	oxygen_level, co_level, co2_level, nox_level, so2_level, steam_flow, steam_temperature,
	steam_pressure, power_output, efficiency, created_at`

// Insert stores a telemetry sample
func (r *MonitoringRepository) Insert(ctx context.Context, rec *models.MonitoringRecord) error {
	query := `INSERT INTO wte_monitoring_data (` + monitoringColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		rec.ID,
		rec.SiteID,
		rec.Timestamp,
		rec.PrimaryAirflow,
		rec.SecondaryAirflow,
		rec.FurnacePressure,
		rec.OxygenLevel,
		rec.COLevel,
		rec.CO2Level,
		rec.NOxLevel,
		rec.SO2Level,
		rec.SteamFlow,
		rec.SteamTemperature,
		rec.SteamPressure,
		rec.PowerOutput,
		rec.Efficiency,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert monitoring data: %w", translateError(err))
	}
	return nil
}

// ListRecent returns the newest samples first
func (r *MonitoringRepository) ListRecent(ctx context.Context, siteID *uuid.UUID, limit int) ([]*models.MonitoringRecord, error) {
	var where whereClause
	if siteID != nil {
		where.add("site_id = $%d", *siteID)
	}
	query := `SELECT ` + monitoringColumns + ` FROM wte_monitoring_data` + where.String() + ` ORDER BY timestamp DESC`
	query += where.page(limit, 0)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list monitoring data: %w", err)
	}
	defer rows.Close()

	var out []*models.MonitoringRecord
	for rows.Next() {
		rec := &models.MonitoringRecord{}
		if err := rows.Scan(
			&rec.ID,
			&rec.SiteID,
			&rec.Timestamp,
			&rec.PrimaryAirflow,
			&rec.SecondaryAirflow,
			&rec.FurnacePressure,
			&rec.OxygenLevel,
			&rec.COLevel,
			&rec.CO2Level,
			&rec.NOxLevel,
			&rec.SO2Level,
			&rec.SteamFlow,
			&rec.SteamTemperature,
			&rec.SteamPressure,
			&rec.PowerOutput,
			&rec.Efficiency,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monitoring data: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monitoring data: %w", err)
	}
	return out, nil
}
