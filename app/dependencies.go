package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/config"
	"github.com/upb/wte-dashboard/backend/identity"
	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/middleware"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/repositories/postgres"
	"github.com/upb/wte-dashboard/backend/services/audit"
	"github.com/upb/wte-dashboard/backend/services/scenario"
	"github.com/upb/wte-dashboard/backend/services/sites"
	"github.com/upb/wte-dashboard/backend/services/technologies"
	"github.com/upb/wte-dashboard/backend/services/telemetry"
	"github.com/upb/wte-dashboard/backend/services/users"
	"github.com/upb/wte-dashboard/backend/services/waste"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Repos     *repositories.Repositories
	TxManager repositories.TransactionManager

	// Access control
	Access         *access.Resolver
	RoleCache      *identity.RoleCache
	Identities     *identity.Provider
	AuthMiddleware *middleware.AuthMiddleware

	// Services
	Audit        *audit.Service
	Sites        *sites.Service
	Waste        *waste.Service
	Technologies *technologies.Service
	Scenarios    *scenario.Service
	Users        *users.Service
	Monitor      *telemetry.Monitor

	// Background jobs
	Maintenance *Maintenance
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
		Access: access.Default,
	}

	// Initialize PostgreSQL
	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()

	if err := deps.wire(cfg); err != nil {
		_ = deps.RepoFactory.Close()
		return nil, err
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// NewDependenciesFromFactory wires the application over an already opened
// repository factory. Used by tests with a mocked pool.
func NewDependenciesFromFactory(cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		Access:      access.Default,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}
	deps.initRepositories()
	if err := deps.wire(cfg); err != nil {
		return nil, err
	}
	return deps, nil
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	// Test the connection
	if err := d.DB.PingContext(ctx); err != nil {
		_ = factory.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Local databases get the schema created on boot
	if cfg.IsDevelopment() {
		if err := d.DB.InitSchema(ctx); err != nil {
			_ = factory.Close()
			return err
		}
	}

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	d.Repos = d.RepoFactory.NewRepositories()
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) wire(cfg *config.Config) error {
	d.initIdentity(cfg)

	d.Audit = audit.NewService(d.Repos.AuditLogs, d.Logger, audit.DefaultConfig())
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Identities, d.Access, d.Audit, d.Logger)
	d.Maintenance = NewMaintenance(d.RoleCache, d.Audit, MaintenanceSchedule, d.Logger)

	d.Sites = sites.NewService(d.Repos.Sites, d.Audit, d.Logger)
	d.Waste = waste.NewService(d.Repos.WasteData, d.Audit, d.Logger)
	d.Technologies = technologies.NewService(d.Repos.Technologies, d.Audit, d.Logger)
	d.Scenarios = scenario.NewService(d.Repos.Scenarios, d.Audit, d.Logger)
	d.Users = users.NewService(d.Repos.Profiles, d.Repos.UserRoles, d.TxManager, d.Identities, d.Audit, d.Logger)

	monitor, err := d.newMonitor(cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry monitor: %w", err)
	}
	d.Monitor = monitor

	return nil
}

// initIdentity sets up token validation and cached role lookups
func (d *Dependencies) initIdentity(cfg *config.Config) {
	if cfg.Auth.JWTSecret == "" {
		// every token is rejected, so protected routes answer 401
		d.Logger.Warn("AUTH_JWT_SECRET not set, authenticated endpoints will reject all requests")
	}

	validator := identity.NewValidator(identity.Config{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
		Leeway:   30 * time.Second,
	})
	d.RoleCache = identity.NewRoleCache(cfg.Auth.RoleCacheSize, cfg.Auth.RoleCacheTTL)
	d.Identities = identity.NewProvider(validator, d.Repos.Profiles, d.Repos.UserRoles, d.RoleCache, d.Logger)

	d.Logger.Info("identity provider initialized",
		zap.Duration("role_cache_ttl", cfg.Auth.RoleCacheTTL),
		zap.Int("role_cache_size", cfg.Auth.RoleCacheSize))
}

func (d *Dependencies) newMonitor(cfg config.TelemetryConfig) (*telemetry.Monitor, error) {
	mcfg := telemetry.Config{
		Schedule:    cfg.Schedule,
		HistorySize: cfg.HistorySize,
		AlertLimit:  cfg.AlertLimit,
		Persist:     cfg.Persist,
	}
	if cfg.SiteID != "" {
		id, err := uuid.Parse(cfg.SiteID)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEMETRY_SITE_ID %q: %w", cfg.SiteID, err)
		}
		mcfg.SiteID = &id
	}

	var repo repositories.MonitoringRepository
	if cfg.Persist {
		repo = d.Repos.Monitoring
	}
	return telemetry.NewMonitor(telemetry.NewSeededGenerator(cfg.Seed), repo, mcfg, d.Logger), nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.Monitor != nil && d.Monitor.Running() {
		if err := d.Monitor.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop telemetry monitor: %w", err))
		}
	}

	if d.Maintenance != nil {
		if err := d.Maintenance.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop maintenance job: %w", err))
		}
	}

	// Drain pending audit entries before the pool goes away
	if d.Audit != nil {
		timeout := 5 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if err := d.Audit.Stop(timeout); err != nil && !errors.Is(err, audit.ErrNotStarted) {
			d.Logger.Warn("audit service stop", zap.Error(err))
		}
	}

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
