package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// AuditRepository implements the repositories.AuditRepository interface
type AuditRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *DB, logger *zap.Logger) repositories.AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

const auditColumns = `id, user_id, action, resource_type, resource_id, details,
	ip_address, user_agent, request_id, timestamp`

// Insert inserts a new audit log entry
func (r *AuditRepository) Insert(ctx context.Context, log *models.AuditLog) error {
	query := `INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		log.ID,
		log.UserID,
		string(log.Action),
		log.ResourceType,
		log.ResourceID,
		nullableJSON(log.Details),
		log.IPAddress,
		log.UserAgent,
		log.RequestID,
		log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", translateError(err))
	}

	r.logger.Debug("audit log inserted", zap.String("id", log.ID.String()), zap.String("action", string(log.Action)))
	return nil
}

// List retrieves audit logs newest first
func (r *AuditRepository) List(ctx context.Context, filter repositories.AuditFilter) ([]*models.AuditLog, error) {
	var where whereClause
	if filter.UserID != nil {
		where.add("user_id = $%d", *filter.UserID)
	}
	if filter.Action != "" {
		where.add("action = $%d", string(filter.Action))
	}
	if filter.From != nil {
		where.add("timestamp >= $%d", *filter.From)
	}
	if filter.To != nil {
		where.add("timestamp <= $%d", *filter.To)
	}
	query := `SELECT ` + auditColumns + ` FROM audit_logs` + where.String() + ` ORDER BY timestamp DESC`
	query += where.page(filter.Limit, filter.Offset)

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		log := &models.AuditLog{}
		var details []byte
		if err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.Action,
			&log.ResourceType,
			&log.ResourceID,
			&details,
			&log.IPAddress,
			&log.UserAgent,
			&log.RequestID,
			&log.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		if len(details) > 0 {
			log.Details = details
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}
	return logs, nil
}
