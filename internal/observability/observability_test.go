package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("json info", func(t *testing.T) {
		logger, err := NewLogger("info", "json")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("console debug", func(t *testing.T) {
		logger, err := NewLogger("DEBUG", "console")
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(-1))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewLogger("loud", "json")
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewLogger("info", "xml")
		assert.Error(t, err)
	})
}

func TestRecordAccessDecision(t *testing.T) {
	before := testutil.ToFloat64(AccessDecisions.WithLabelValues("viewer", "userManagement", "denied"))
	RecordAccessDecision("viewer", "userManagement", false)
	after := testutil.ToFloat64(AccessDecisions.WithLabelValues("viewer", "userManagement", "denied"))
	assert.Equal(t, before+1, after)

	RecordAccessDecision("", "logs", false)
	assert.GreaterOrEqual(t, testutil.ToFloat64(AccessDecisions.WithLabelValues("none", "logs", "denied")), 1.0)
}

func TestMetricsMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/api/v1/sites/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("/api/v1/sites/{id}", "GET", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sites/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(RequestCounter.WithLabelValues("/api/v1/sites/{id}", "GET", "418")))
}

func TestHandler(t *testing.T) {
	RecordAccessDecision("super_admin", "dashboard", true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "wte_dashboard_access_decisions_total"))
}
