package servicestest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

// MockProfileRepository is a mock implementation of repositories.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) ListWithRoles(ctx context.Context) ([]*models.ProfileWithRole, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]*models.ProfileWithRole), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

// MockUserRoleRepository is a mock implementation of repositories.UserRoleRepository
type MockUserRoleRepository struct {
	mock.Mock
}

func (m *MockUserRoleRepository) GetRole(ctx context.Context, userID uuid.UUID) (access.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(access.Role), args.Error(1)
}

func (m *MockUserRoleRepository) Upsert(ctx context.Context, assignment *models.UserRoleAssignment) error {
	return m.Called(ctx, assignment).Error(0)
}

// MockSiteRepository is a mock implementation of repositories.SiteRepository
type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) Create(ctx context.Context, site *models.WteSite) error {
	return m.Called(ctx, site).Error(0)
}

func (m *MockSiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WteSite, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.WteSite), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSiteRepository) List(ctx context.Context, filter repositories.SiteFilter) ([]*models.WteSite, error) {
	args := m.Called(ctx, filter)
	if s := args.Get(0); s != nil {
		return s.([]*models.WteSite), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSiteRepository) Update(ctx context.Context, site *models.WteSite) error {
	return m.Called(ctx, site).Error(0)
}

func (m *MockSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockWasteDataRepository is a mock implementation of repositories.WasteDataRepository
type MockWasteDataRepository struct {
	mock.Mock
}

func (m *MockWasteDataRepository) Create(ctx context.Context, data *models.WasteData) error {
	return m.Called(ctx, data).Error(0)
}

func (m *MockWasteDataRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WasteData, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*models.WasteData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWasteDataRepository) List(ctx context.Context, filter repositories.WasteFilter) ([]*models.WasteData, error) {
	args := m.Called(ctx, filter)
	if d := args.Get(0); d != nil {
		return d.([]*models.WasteData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWasteDataRepository) Update(ctx context.Context, data *models.WasteData) error {
	return m.Called(ctx, data).Error(0)
}

func (m *MockWasteDataRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockMonitoringRepository is a mock implementation of repositories.MonitoringRepository
type MockMonitoringRepository struct {
	mock.Mock
}

func (m *MockMonitoringRepository) Insert(ctx context.Context, record *models.MonitoringRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockMonitoringRepository) ListRecent(ctx context.Context, siteID *uuid.UUID, limit int) ([]*models.MonitoringRecord, error) {
	args := m.Called(ctx, siteID, limit)
	if r := args.Get(0); r != nil {
		return r.([]*models.MonitoringRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockScenarioRepository is a mock implementation of repositories.ScenarioRepository
type MockScenarioRepository struct {
	mock.Mock
}

func (m *MockScenarioRepository) Create(ctx context.Context, scenario *models.ScenarioSimulation) error {
	return m.Called(ctx, scenario).Error(0)
}

func (m *MockScenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScenarioSimulation, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.ScenarioSimulation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockScenarioRepository) List(ctx context.Context, limit, offset int) ([]*models.ScenarioSimulation, error) {
	args := m.Called(ctx, limit, offset)
	if s := args.Get(0); s != nil {
		return s.([]*models.ScenarioSimulation), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTechnologyRepository is a mock implementation of repositories.TechnologyRepository
type MockTechnologyRepository struct {
	mock.Mock
}

func (m *MockTechnologyRepository) Create(ctx context.Context, tech *models.TechnologyComparison) error {
	return m.Called(ctx, tech).Error(0)
}

func (m *MockTechnologyRepository) List(ctx context.Context) ([]*models.TechnologyComparison, error) {
	args := m.Called(ctx)
	if t := args.Get(0); t != nil {
		return t.([]*models.TechnologyComparison), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuditRepository is a mock implementation of repositories.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Insert(ctx context.Context, log *models.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, filter repositories.AuditFilter) ([]*models.AuditLog, error) {
	args := m.Called(ctx, filter)
	if l := args.Get(0); l != nil {
		return l.([]*models.AuditLog), args.Error(1)
	}
	return nil, args.Error(1)
}

// RecordingAuditor captures audit entries in memory.
type RecordingAuditor struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	Err     error
}

func (r *RecordingAuditor) Record(log *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.entries = append(r.entries, log)
	return nil
}

// Entries returns a copy of the recorded entries.
func (r *RecordingAuditor) Entries() []*models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.AuditLog, len(r.entries))
	copy(out, r.entries)
	return out
}

// Actions returns the recorded actions in order.
func (r *RecordingAuditor) Actions() []models.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}
