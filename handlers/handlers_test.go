package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/config"
	"github.com/upb/wte-dashboard/backend/identity"
	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/middleware"
	"github.com/upb/wte-dashboard/backend/services/audit"
	"github.com/upb/wte-dashboard/backend/services/scenario"
	"github.com/upb/wte-dashboard/backend/services/servicestest"
	"github.com/upb/wte-dashboard/backend/services/sites"
	"github.com/upb/wte-dashboard/backend/services/technologies"
	"github.com/upb/wte-dashboard/backend/services/telemetry"
	"github.com/upb/wte-dashboard/backend/services/users"
	"github.com/upb/wte-dashboard/backend/services/waste"
)

type noopInvalidator struct{}

func (noopInvalidator) InvalidateRole(uuid.UUID) {}

// testEnv wires real services over repository mocks
type testEnv struct {
	deps      *app.Dependencies
	profiles  *servicestest.MockProfileRepository
	roles     *servicestest.MockUserRoleRepository
	sites     *servicestest.MockSiteRepository
	waste     *servicestest.MockWasteDataRepository
	techs     *servicestest.MockTechnologyRepository
	scenarios *servicestest.MockScenarioRepository
	auditRepo *servicestest.MockAuditRepository
	auditor   *servicestest.RecordingAuditor
	txMgr     *servicestest.MockTransactionManager
	tx        *servicestest.MockTransaction
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	env := &testEnv{
		profiles:  new(servicestest.MockProfileRepository),
		roles:     new(servicestest.MockUserRoleRepository),
		sites:     new(servicestest.MockSiteRepository),
		waste:     new(servicestest.MockWasteDataRepository),
		techs:     new(servicestest.MockTechnologyRepository),
		scenarios: new(servicestest.MockScenarioRepository),
		auditRepo: new(servicestest.MockAuditRepository),
		auditor:   &servicestest.RecordingAuditor{},
	}
	env.txMgr, env.tx = servicestest.NewTx(context.Background())

	env.deps = &app.Dependencies{
		Config:       &config.Config{Environment: "test"},
		Logger:       logger,
		Access:       access.Default,
		Audit:        audit.NewService(env.auditRepo, logger, audit.DefaultConfig()),
		Sites:        sites.NewService(env.sites, env.auditor, logger),
		Waste:        waste.NewService(env.waste, env.auditor, logger),
		Technologies: technologies.NewService(env.techs, env.auditor, logger),
		Scenarios:    scenario.NewService(env.scenarios, env.auditor, logger),
		Users:        users.NewService(env.profiles, env.roles, env.txMgr, noopInvalidator{}, env.auditor, logger),
		Monitor:      telemetry.NewMonitor(telemetry.NewSeededGenerator(7), nil, telemetry.DefaultConfig(), logger),
	}
	return env
}

func newRequest(method, target string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, _ := json.Marshal(b)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func asUser(req *http.Request, role access.Role) *http.Request {
	id := &identity.Identity{
		UserID: uuid.New(),
		Email:  "analyst@example.test",
		Role:   role,
	}
	return req.WithContext(middleware.WithIdentity(req.Context(), id))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// decodeData unwraps the {"data": ...} envelope
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}
