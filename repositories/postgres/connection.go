package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/upb/wte-dashboard/backend/config"
	"go.uber.org/zap"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := cfg.DSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// Wrap adopts an already opened pool, e.g. one built by a test harness
func Wrap(sqlDB *sql.DB, logger *zap.Logger) *DB {
	return &DB{DB: sqlDB, logger: logger}
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	// Check if we can query
	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// Stats returns database connection pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

// InitSchema creates the dashboard tables when they do not exist yet.
// Managed deployments provision the same schema through their own migrations.
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized successfully")
	return nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS user_roles (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES profiles(id) ON DELETE CASCADE,
		role VARCHAR(50) NOT NULL CHECK (role IN (
			'super_admin', 'municipal_analyst', 'environmental_specialist',
			'gis_planner', 'technologist', 'policy_maker', 'viewer'
		)),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS wte_sites (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		location_name VARCHAR(255) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		capacity DOUBLE PRECISION NOT NULL,
		technology VARCHAR(100) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'planned',
		economic_score DOUBLE PRECISION,
		environmental_score DOUBLE PRECISION,
		created_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS waste_data (
		id UUID PRIMARY KEY,
		municipality VARCHAR(255) NOT NULL,
		waste_type VARCHAR(100) NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		unit VARCHAR(20) NOT NULL DEFAULT 'tonnes',
		collection_date DATE NOT NULL,
		created_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS wte_monitoring_data (
		id UUID PRIMARY KEY,
		site_id UUID REFERENCES wte_sites(id) ON DELETE CASCADE,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
		primary_airflow DOUBLE PRECISION,
		secondary_airflow DOUBLE PRECISION,
		furnace_pressure DOUBLE PRECISION,
		oxygen_level DOUBLE PRECISION,
		co_level DOUBLE PRECISION,
		co2_level DOUBLE PRECISION,
		nox_level DOUBLE PRECISION,
		so2_level DOUBLE PRECISION,
		steam_flow DOUBLE PRECISION,
		steam_temperature DOUBLE PRECISION,
		steam_pressure DOUBLE PRECISION,
		power_output DOUBLE PRECISION,
		efficiency DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS scenario_simulations (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		technology VARCHAR(100),
		waste_input DOUBLE PRECISION,
		capacity DOUBLE PRECISION,
		results JSONB,
		created_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS technology_comparison (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		type VARCHAR(100) NOT NULL,
		description TEXT,
		efficiency DOUBLE PRECISION,
		capital_cost DOUBLE PRECISION,
		operating_cost DOUBLE PRECISION,
		capacity_range VARCHAR(100),
		environmental_impact TEXT,
		created_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		user_id UUID REFERENCES profiles(id) ON DELETE SET NULL,
		action VARCHAR(100) NOT NULL,
		resource_type VARCHAR(100) NOT NULL,
		resource_id UUID,
		details JSONB,
		ip_address VARCHAR(45),
		user_agent TEXT,
		request_id VARCHAR(255),
		timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_wte_sites_status ON wte_sites(status);
	CREATE INDEX IF NOT EXISTS idx_waste_data_municipality ON waste_data(municipality);
	CREATE INDEX IF NOT EXISTS idx_waste_data_collection_date ON waste_data(collection_date);
	CREATE INDEX IF NOT EXISTS idx_monitoring_site_timestamp ON wte_monitoring_data(site_id, timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_audit_logs_user_id ON audit_logs(user_id);
	CREATE INDEX IF NOT EXISTS idx_audit_logs_action ON audit_logs(action);
	CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp);
`
