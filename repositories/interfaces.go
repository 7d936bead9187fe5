package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/models"
)

// Sentinel errors returned (wrapped) by repository implementations.
var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("record already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// TransactionManager opens transactions; see services.InTransaction
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction is an open database transaction. Repositories called with
// Context() run their statements inside it.
type Transaction interface {
	Commit() error
	Rollback() error
	Context() context.Context
}

// ProfileRepository handles profile data operations
type ProfileRepository interface {
	// Create creates a new profile
	Create(ctx context.Context, profile *models.Profile) error

	// GetByID retrieves a profile by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// ListWithRoles retrieves all profiles joined with their role, ordered by name
	ListWithRoles(ctx context.Context) ([]*models.ProfileWithRole, error)

	// Update updates a profile's name and email
	Update(ctx context.Context, profile *models.Profile) error
}

// UserRoleRepository handles role assignment data operations
type UserRoleRepository interface {
	// GetRole returns the role assigned to a user, or ErrNotFound
	GetRole(ctx context.Context, userID uuid.UUID) (access.Role, error)

	// Upsert replaces the user's role assignment
	Upsert(ctx context.Context, assignment *models.UserRoleAssignment) error
}

// SiteFilter narrows site listings. Zero values match everything.
type SiteFilter struct {
	Status     models.SiteStatus
	Technology string
}

// SiteRepository handles WtE site data operations
type SiteRepository interface {
	Create(ctx context.Context, site *models.WteSite) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.WteSite, error)
	List(ctx context.Context, filter SiteFilter) ([]*models.WteSite, error)
	Update(ctx context.Context, site *models.WteSite) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WasteFilter narrows waste data listings. Zero values match everything.
type WasteFilter struct {
	Municipality string
	WasteType    string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// WasteDataRepository handles waste collection data operations
type WasteDataRepository interface {
	Create(ctx context.Context, data *models.WasteData) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.WasteData, error)
	List(ctx context.Context, filter WasteFilter) ([]*models.WasteData, error)
	Update(ctx context.Context, data *models.WasteData) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MonitoringRepository handles persisted telemetry samples
type MonitoringRepository interface {
	// Insert stores a telemetry sample
	Insert(ctx context.Context, record *models.MonitoringRecord) error

	// ListRecent returns the newest samples first, optionally for one site
	ListRecent(ctx context.Context, siteID *uuid.UUID, limit int) ([]*models.MonitoringRecord, error)
}

// ScenarioRepository handles saved scenario simulations
type ScenarioRepository interface {
	Create(ctx context.Context, scenario *models.ScenarioSimulation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ScenarioSimulation, error)
	List(ctx context.Context, limit, offset int) ([]*models.ScenarioSimulation, error)
}

// TechnologyRepository handles technology comparison entries
type TechnologyRepository interface {
	Create(ctx context.Context, tech *models.TechnologyComparison) error
	List(ctx context.Context) ([]*models.TechnologyComparison, error)
}

// AuditFilter narrows audit log listings. Zero values match everything.
type AuditFilter struct {
	UserID *uuid.UUID
	Action models.AuditAction
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// AuditRepository handles audit log data operations
type AuditRepository interface {
	// Insert inserts a new audit log entry
	Insert(ctx context.Context, log *models.AuditLog) error

	// List retrieves audit logs newest first
	List(ctx context.Context, filter AuditFilter) ([]*models.AuditLog, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Profiles     ProfileRepository
	UserRoles    UserRoleRepository
	Sites        SiteRepository
	WasteData    WasteDataRepository
	Monitoring   MonitoringRepository
	Scenarios    ScenarioRepository
	Technologies TechnologyRepository
	AuditLogs    AuditRepository
}
