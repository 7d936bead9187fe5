package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services/scenario"
	"github.com/upb/wte-dashboard/backend/services/servicestest"
	"github.com/upb/wte-dashboard/backend/services/telemetry"
	"github.com/upb/wte-dashboard/backend/services/waste"
)

func score(v float64) *float64 { return &v }

func TestListSitesHandler(t *testing.T) {
	low := models.NewWteSite("Bello", "Bello", 6.33, -75.56, 300, "gasification")
	low.EconomicScore, low.EnvironmentalScore = score(50), score(50)
	high := models.NewWteSite("Itagüí", "Itagüí", 6.17, -75.6, 500, "incineration")
	high.EconomicScore, high.EnvironmentalScore = score(90), score(80)

	t.Run("ranked", func(t *testing.T) {
		env := newTestEnv(t)
		env.sites.On("List", mock.Anything, repositories.SiteFilter{Technology: "gasification"}).
			Return([]*models.WteSite{low, high}, nil)

		req := newRequest(http.MethodGet, "/api/v1/sites?ranked=true&technology=gasification", nil)
		rec := serve(ListSitesHandler(env.deps), asUser(req, access.RoleGISPlanner))
		require.Equal(t, http.StatusOK, rec.Code)

		var got []models.WteSite
		decodeData(t, rec, &got)
		require.Len(t, got, 2)
		assert.Equal(t, "Itagüí", got[0].Name)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		env := newTestEnv(t)
		req := newRequest(http.MethodGet, "/api/v1/sites?status=demolished", nil)
		rec := serve(ListSitesHandler(env.deps), asUser(req, access.RoleGISPlanner))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSiteHandlers_CRUD(t *testing.T) {
	t.Run("create validates coordinates", func(t *testing.T) {
		env := newTestEnv(t)
		body := map[string]interface{}{
			"name":          "Norte",
			"location_name": "Medellín",
			"latitude":      120.0,
			"longitude":     -75.5,
			"capacity":      400,
			"technology":    "gasification",
		}
		rec := serve(CreateSiteHandler(env.deps), asUser(newRequest(http.MethodPost, "/api/v1/sites", body), access.RoleGISPlanner))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env.sites.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create", func(t *testing.T) {
		env := newTestEnv(t)
		env.sites.On("Create", mock.Anything, mock.AnythingOfType("*models.WteSite")).Return(nil)
		body := map[string]interface{}{
			"name":          "Norte",
			"location_name": "Medellín",
			"latitude":      6.3,
			"longitude":     -75.5,
			"capacity":      400,
			"technology":    "gasification",
		}
		rec := serve(CreateSiteHandler(env.deps), asUser(newRequest(http.MethodPost, "/api/v1/sites", body), access.RoleGISPlanner))
		require.Equal(t, http.StatusCreated, rec.Code)

		var site models.WteSite
		decodeData(t, rec, &site)
		assert.Equal(t, models.SiteStatusPlanned, site.Status)
		assert.Equal(t, []models.AuditAction{models.AuditActionSiteCreated}, env.auditor.Actions())
	})

	t.Run("unknown body fields are rejected", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(CreateSiteHandler(env.deps), newRequest(http.MethodPost, "/", `{"name":"x","owner":"y"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get missing site", func(t *testing.T) {
		env := newTestEnv(t)
		id := uuid.New()
		env.sites.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNotFound)

		req := withURLParam(newRequest(http.MethodGet, "/", nil), "id", id.String())
		rec := serve(GetSiteHandler(env.deps), req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		env := newTestEnv(t)
		site := models.NewWteSite("Sur", "Envigado", 6.17, -75.58, 200, "anaerobic")
		env.sites.On("GetByID", mock.Anything, site.ID).Return(site, nil).Maybe()
		env.sites.On("Delete", mock.Anything, site.ID).Return(nil)

		req := withURLParam(asUser(newRequest(http.MethodDelete, "/", nil), access.RoleSuperAdmin), "id", site.ID.String())
		rec := serve(DeleteSiteHandler(env.deps), req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestWasteHandlers(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		env := newTestEnv(t)
		day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		env.waste.On("List", mock.Anything, mock.MatchedBy(func(f repositories.WasteFilter) bool {
			return f.Municipality == "Medellín" && f.From != nil && f.From.Equal(day) && f.Limit == 0
		})).Return([]*models.WasteData{
			models.NewWasteData("Medellín", "organic", 300, "tonnes", day),
			models.NewWasteData("Medellín", "plastic", 100, "tonnes", day),
		}, nil)

		req := newRequest(http.MethodGet, "/api/v1/waste/summary?municipality=Medell%C3%ADn&from=2024-03-01&limit=5", nil)
		rec := serve(WasteSummaryHandler(env.deps), asUser(req, access.RoleMunicipalAnalyst))
		require.Equal(t, http.StatusOK, rec.Code)

		var summary waste.Summary
		decodeData(t, rec, &summary)
		assert.Equal(t, 400.0, summary.TotalQuantity)
		require.Len(t, summary.ByWasteType, 2)
		assert.Equal(t, "organic", summary.ByWasteType[0].WasteType)
	})

	t.Run("bad date", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(ListWasteDataHandler(env.deps), newRequest(http.MethodGet, "/api/v1/waste?from=yesterday", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative limit", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(ListWasteDataHandler(env.deps), newRequest(http.MethodGet, "/api/v1/waste?limit=-1", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reference", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(WasteReferenceHandler(env.deps), newRequest(http.MethodGet, "/api/v1/waste/reference", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var ref waste.Reference
		decodeData(t, rec, &ref)
		assert.NotEmpty(t, ref.Composition)
		require.Len(t, ref.Districts, len(scenario.Presets()))
		assert.Equal(t, "Urban Area A", ref.Districts[0].District)
		assert.Equal(t, 92.0, ref.Districts[0].CollectionEfficiency)
		assert.Equal(t, "good", ref.Districts[0].Band)
	})
}

func TestScenarioHandlers(t *testing.T) {
	t.Run("simulate with defaults", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(SimulateHandler(env.deps), newRequest(http.MethodPost, "/api/v1/scenarios/simulate", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var sim scenario.Simulation
		decodeData(t, rec, &sim)
		assert.Equal(t, scenario.Gasification, sim.Input.Technology)
		assert.Equal(t, 32000.0, sim.Result.EnergyOutput)
		assert.Equal(t, 38400.0, sim.Result.RevenueEstimate)
	})

	t.Run("simulate rejects unknown technology", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(SimulateHandler(env.deps), newRequest(http.MethodPost, "/", map[string]interface{}{"technology": "plasma"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("simulate rejects composition over 100", func(t *testing.T) {
		env := newTestEnv(t)
		body := map[string]interface{}{"organic_percentage": 70, "recyclable_percentage": 40}
		rec := serve(SimulateHandler(env.deps), newRequest(http.MethodPost, "/", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("compare runs every technology", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(CompareScenariosHandler(env.deps), newRequest(http.MethodPost, "/", map[string]interface{}{"waste_volume": 200000}))
		require.Equal(t, http.StatusOK, rec.Code)

		var sims []scenario.Simulation
		decodeData(t, rec, &sims)
		require.Len(t, sims, len(scenario.Catalog()))
	})

	t.Run("catalog", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(ScenarioCatalogHandler(env.deps), newRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var cat ScenarioCatalog
		decodeData(t, rec, &cat)
		assert.Len(t, cat.Technologies, 3)
		assert.Len(t, cat.Comparison, 3)
		assert.NotEmpty(t, cat.Presets)
	})

	t.Run("save", func(t *testing.T) {
		env := newTestEnv(t)
		env.scenarios.On("Create", mock.Anything, mock.AnythingOfType("*models.ScenarioSimulation")).Return(nil)

		body := map[string]interface{}{
			"name":  "Baseline",
			"input": map[string]interface{}{"technology": "anaerobic"},
		}
		rec := serve(SaveScenarioHandler(env.deps), asUser(newRequest(http.MethodPost, "/api/v1/scenarios", body), access.RolePolicyMaker))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []models.AuditAction{models.AuditActionScenarioSaved}, env.auditor.Actions())
	})

	t.Run("get rejects malformed id", func(t *testing.T) {
		env := newTestEnv(t)
		req := withURLParam(newRequest(http.MethodGet, "/", nil), "id", "baseline")
		rec := serve(GetScenarioHandler(env.deps), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMonitoringHandlers(t *testing.T) {
	t.Run("live snapshot", func(t *testing.T) {
		env := newTestEnv(t)
		env.deps.Monitor.Sample(context.Background())

		rec := serve(LiveTelemetryHandler(env.deps), newRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var snap telemetry.Snapshot
		decodeData(t, rec, &snap)
		require.NotNil(t, snap.Current)
		assert.Len(t, snap.Statuses, len(telemetry.Thresholds()))
		assert.Len(t, snap.History, 1)
		assert.False(t, snap.Running)
	})

	t.Run("monitor disabled", func(t *testing.T) {
		env := newTestEnv(t)
		env.deps.Monitor = nil
		rec := serve(LiveTelemetryHandler(env.deps), newRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("stored readings", func(t *testing.T) {
		env := newTestEnv(t)
		repo := new(servicestest.MockMonitoringRepository)
		siteID := uuid.New()
		repo.On("ListRecent", mock.Anything, &siteID, 25).Return([]*models.MonitoringRecord{
			telemetry.ToRecord(telemetry.NewSeededGenerator(3).Next(), &siteID),
		}, nil)
		env.deps.Monitor = telemetry.NewMonitor(telemetry.NewSeededGenerator(1), repo, telemetry.DefaultConfig(), zap.NewNop())

		req := newRequest(http.MethodGet, "/api/v1/monitoring/readings?limit=25&site_id="+siteID.String(), nil)
		rec := serve(StoredReadingsHandler(env.deps), req)
		require.Equal(t, http.StatusOK, rec.Code)

		var records []models.MonitoringRecord
		decodeData(t, rec, &records)
		assert.Len(t, records, 1)
	})

	t.Run("thresholds", func(t *testing.T) {
		env := newTestEnv(t)
		rec := serve(TelemetryThresholdsHandler(env.deps), newRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got []telemetry.Threshold
		decodeData(t, rec, &got)
		assert.Len(t, got, 15)
	})
}

func TestListAuditLogsHandler(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	entry := models.NewAuditLog(models.AuditActionRoleAssigned, "user_role").WithUser(userID)

	env.auditRepo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.AuditFilter) bool {
		return f.UserID != nil && *f.UserID == userID &&
			f.Action == models.AuditActionRoleAssigned &&
			f.Limit == 100
	})).Return([]*models.AuditLog{entry}, nil)

	req := newRequest(http.MethodGet, "/api/v1/logs?action=role_assigned&user_id="+userID.String(), nil)
	rec := serve(ListAuditLogsHandler(env.deps), asUser(req, access.RoleSuperAdmin))
	require.Equal(t, http.StatusOK, rec.Code)

	var logs []models.AuditLog
	decodeData(t, rec, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, entry.ID, logs[0].ID)
}
