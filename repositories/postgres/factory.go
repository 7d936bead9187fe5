package postgres

import (
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/config"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// RepositoryFactory creates and manages all repositories
type RepositoryFactory struct {
	db     *DB
	logger *zap.Logger
}

// NewRepositoryFactory opens the pool and returns a factory over it
func NewRepositoryFactory(cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	db, err := NewDB(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return &RepositoryFactory{db: db, logger: logger}, nil
}

// NewRepositoryFactoryFromDB builds a factory over an existing pool
func NewRepositoryFactoryFromDB(db *DB, logger *zap.Logger) *RepositoryFactory {
	return &RepositoryFactory{db: db, logger: logger}
}

// NewRepositories creates all repository instances
func (f *RepositoryFactory) NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Profiles:     NewProfileRepository(f.db, f.logger),
		UserRoles:    NewUserRoleRepository(f.db, f.logger),
		Sites:        NewSiteRepository(f.db, f.logger),
		WasteData:    NewWasteDataRepository(f.db, f.logger),
		Monitoring:   NewMonitoringRepository(f.db, f.logger),
		Scenarios:    NewScenarioRepository(f.db, f.logger),
		Technologies: NewTechnologyRepository(f.db, f.logger),
		AuditLogs:    NewAuditRepository(f.db, f.logger),
	}
}

// GetTransactionManager returns a transaction manager
func (f *RepositoryFactory) GetTransactionManager() repositories.TransactionManager {
	return NewTxManager(f.db, f.logger)
}

// GetDB returns the database connection
func (f *RepositoryFactory) GetDB() *DB {
	return f.db
}

// Close closes the database connection
func (f *RepositoryFactory) Close() error {
	return f.db.Close()
}
