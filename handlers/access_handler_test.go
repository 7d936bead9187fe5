package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/identity"
	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/middleware"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/repositories/postgres"
	"github.com/upb/wte-dashboard/backend/services/audit"
)

func TestGetAccessProfileHandler(t *testing.T) {
	env := newTestEnv(t)
	h := GetAccessProfileHandler(env.deps)

	t.Run("viewer sees only the dashboard", func(t *testing.T) {
		rec := serve(h, asUser(newRequest(http.MethodGet, "/api/v1/access/me", nil), access.RoleViewer))
		require.Equal(t, http.StatusOK, rec.Code)

		var profile AccessProfile
		decodeData(t, rec, &profile)
		assert.Equal(t, access.RoleViewer, profile.Role)
		assert.Equal(t, []access.Module{access.ModuleDashboard}, profile.Modules)
		assert.Equal(t, []string{"/"}, profile.Routes)
	})

	t.Run("super admin sees every route", func(t *testing.T) {
		rec := serve(h, asUser(newRequest(http.MethodGet, "/api/v1/access/me", nil), access.RoleSuperAdmin))
		require.Equal(t, http.StatusOK, rec.Code)

		var profile AccessProfile
		decodeData(t, rec, &profile)
		assert.Len(t, profile.Modules, len(access.Modules()))
		assert.Contains(t, profile.Routes, "/wte-monitor")
		assert.Contains(t, profile.Routes, "/users")
	})

	t.Run("no role yields empty lists", func(t *testing.T) {
		rec := serve(h, asUser(newRequest(http.MethodGet, "/api/v1/access/me", nil), access.RoleNone))
		require.Equal(t, http.StatusOK, rec.Code)

		var profile AccessProfile
		decodeData(t, rec, &profile)
		assert.NotNil(t, profile.Modules)
		assert.Empty(t, profile.Modules)
		assert.Empty(t, profile.Routes)
	})

	t.Run("401 without identity", func(t *testing.T) {
		rec := serve(h, newRequest(http.MethodGet, "/api/v1/access/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCheckRouteHandler(t *testing.T) {
	env := newTestEnv(t)
	h := CheckRouteHandler(env.deps)

	tests := []struct {
		name       string
		role       access.Role
		path       string
		wantStatus int
		wantModule access.Module
		wantAllow  bool
	}{
		{"viewer on dashboard", access.RoleViewer, "/", http.StatusOK, access.ModuleDashboard, true},
		{"viewer on users", access.RoleViewer, "/users", http.StatusOK, access.ModuleUserManagement, false},
		{"admin on monitor", access.RoleSuperAdmin, "/wte-monitor", http.StatusOK, access.ModuleWteMonitoring, true},
		{"unknown route", access.RoleSuperAdmin, "/reports", http.StatusNotFound, "", false},
		{"missing path", access.RoleSuperAdmin, "", http.StatusBadRequest, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(http.MethodGet, "/api/v1/access/check", nil)
			q := req.URL.Query()
			if tt.path != "" {
				q.Set("path", tt.path)
			}
			req.URL.RawQuery = q.Encode()

			rec := serve(h, asUser(req, tt.role))
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got RouteAccess
			decodeData(t, rec, &got)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.wantModule, got.Module)
			assert.Equal(t, tt.wantAllow, got.Allowed)
		})
	}
}

func TestGetCurrentUserHandler(t *testing.T) {
	env := newTestEnv(t)

	req := asUser(newRequest(http.MethodGet, "/api/v1/users/me", nil), access.RoleGISPlanner)
	id := middleware.GetIdentityFromContext(req.Context())

	env.profiles.On("GetByID", mock.Anything, id.UserID).Return(nil, repositories.ErrNotFound)
	env.profiles.On("Create", mock.Anything, mock.AnythingOfType("*models.Profile")).Return(nil)

	rec := serve(GetCurrentUserHandler(env.deps), req)
	require.Equal(t, http.StatusOK, rec.Code)

	var user CurrentUser
	decodeData(t, rec, &user)
	assert.Equal(t, id.UserID, user.ID)
	assert.Equal(t, "analyst", user.Name)
	assert.Equal(t, access.RoleGISPlanner, user.Role)
}

func TestAssignRoleHandler(t *testing.T) {
	t.Run("assigns a known role", func(t *testing.T) {
		env := newTestEnv(t)
		userID := uuid.New()

		env.profiles.On("GetByID", mock.Anything, userID).Return(models.NewProfile(userID, "u@example.test", "U"), nil)
		env.roles.On("GetRole", mock.Anything, userID).Return(access.RoleViewer, nil)
		env.roles.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		env.tx.On("Commit").Return(nil)

		req := newRequest(http.MethodPut, "/api/v1/users/"+userID.String()+"/role", map[string]string{"role": "technologist"})
		req = withURLParam(asUser(req, access.RoleSuperAdmin), "id", userID.String())

		rec := serve(AssignRoleHandler(env.deps), req)
		require.Equal(t, http.StatusOK, rec.Code)

		var assignment models.UserRoleAssignment
		decodeData(t, rec, &assignment)
		assert.Equal(t, access.RoleTechnologist, assignment.Role)
		assert.Equal(t, []models.AuditAction{models.AuditActionRoleAssigned}, env.auditor.Actions())
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		env := newTestEnv(t)
		userID := uuid.New()

		req := newRequest(http.MethodPut, "/", map[string]string{"role": "financial_analyst"})
		req = withURLParam(asUser(req, access.RoleSuperAdmin), "id", userID.String())

		rec := serve(AssignRoleHandler(env.deps), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env.roles.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed user id", func(t *testing.T) {
		env := newTestEnv(t)

		req := newRequest(http.MethodPut, "/", map[string]string{"role": "viewer"})
		req = withURLParam(asUser(req, access.RoleSuperAdmin), "id", "42")

		rec := serve(AssignRoleHandler(env.deps), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("404 for a missing profile", func(t *testing.T) {
		env := newTestEnv(t)
		userID := uuid.New()

		env.profiles.On("GetByID", mock.Anything, userID).Return(nil, repositories.ErrNotFound)
		env.tx.On("Rollback").Return(nil)

		req := newRequest(http.MethodPut, "/", map[string]string{"role": "viewer"})
		req = withURLParam(asUser(req, access.RoleSuperAdmin), "id", userID.String())

		rec := serve(AssignRoleHandler(env.deps), req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListUsersHandler(t *testing.T) {
	env := newTestEnv(t)
	env.profiles.On("ListWithRoles", mock.Anything).Return(nil, nil)

	rec := serve(ListUsersHandler(env.deps), asUser(newRequest(http.MethodGet, "/api/v1/users", nil), access.RoleSuperAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestHealthHandlers(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(HealthCheck(env.deps), newRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz without database", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(ReadinessCheck(env.deps), newRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var health HealthResponse
		decodeData(t, rec, &health)
		assert.Equal(t, "not_ready", health.Status)
		assert.Equal(t, "not_initialized", health.Checks["database"])
		assert.Equal(t, "stopped", health.Checks["telemetry"])
	})

	t.Run("readyz with a healthy database", func(t *testing.T) {
		env := newTestEnv(t)
		sqlDB, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer sqlDB.Close()
		env.deps.DB = postgres.Wrap(sqlDB, zap.NewNop())

		dbMock.ExpectPing()
		dbMock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

		rec := serve(ReadinessCheck(env.deps), newRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var health HealthResponse
		decodeData(t, rec, &health)
		assert.Equal(t, "ready", health.Status)
		assert.Equal(t, "healthy", health.Checks["database"])
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("status lists roles and modules", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(StatusHandler(env.deps), newRequest(http.MethodGet, "/api/v1/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var status struct {
			Version     string   `json:"version"`
			Environment string   `json:"environment"`
			Roles       []string `json:"roles"`
			Modules     []string `json:"modules"`
		}
		decodeData(t, rec, &status)
		assert.Equal(t, Version, status.Version)
		assert.Equal(t, "test", status.Environment)
		assert.Len(t, status.Roles, 7)
		assert.Len(t, status.Modules, 14)
	})

	t.Run("status reports role cache and audit queue", func(t *testing.T) {
		env := newTestEnv(t)
		cache := identity.NewRoleCache(50, time.Minute)
		userID := uuid.New()
		cache.Set(userID, access.RoleGISPlanner)
		_, _ = cache.Get(userID)
		_, _ = cache.Get(uuid.New())
		env.deps.RoleCache = cache

		rec := serve(StatusHandler(env.deps), newRequest(http.MethodGet, "/api/v1/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var status struct {
			RoleCache identity.CacheStats `json:"role_cache"`
			Audit     audit.Stats         `json:"audit"`
		}
		decodeData(t, rec, &status)
		assert.Equal(t, identity.CacheStats{Size: 1, MaxSize: 50, Hits: 1, Misses: 1, HitRate: 0.5}, status.RoleCache)
		assert.Equal(t, audit.DefaultConfig().BufferSize, status.Audit.BufferSize)
		assert.Equal(t, audit.DefaultConfig().WorkerCount, status.Audit.WorkerCount)
		assert.False(t, status.Audit.Started)
	})
}
