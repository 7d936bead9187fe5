package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/services/audit"
	"github.com/upb/wte-dashboard/backend/utils"
)

// Version is the API version reported by /api/v1/status
var Version = "0.1.0"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck returns a simple health check handler
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}, deps.Logger)
	}
}

// ReadinessCheck reports whether the database and the telemetry monitor are usable
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true

		// Check database
		switch {
		case deps.DB == nil:
			checks["database"] = "not_initialized"
			ready = false
		default:
			if err := deps.DB.HealthCheck(ctx); err != nil {
				deps.Logger.Warn("database health check failed", zap.Error(err))
				checks["database"] = "unhealthy"
				ready = false
			} else {
				checks["database"] = "healthy"
			}
		}

		// A stopped monitor only degrades the live view
		switch {
		case deps.Monitor == nil:
			checks["telemetry"] = "disabled"
		case deps.Monitor.Running():
			checks["telemetry"] = "running"
		default:
			checks["telemetry"] = "stopped"
		}

		response := HealthResponse{
			Status:    "ready",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Checks:    checks,
		}
		status := http.StatusOK
		if !ready {
			response.Status = "not_ready"
			status = http.StatusServiceUnavailable
		}

		if err := utils.WriteJSON(w, status, utils.SuccessResponse{Data: response}); err != nil {
			deps.Logger.Error("failed to write readiness response", zap.Error(err))
		}
	}
}

// StatusHandler returns application status information
func StatusHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		environment := ""
		if deps.Config != nil {
			environment = deps.Config.Environment
		}
		writeOK(w, map[string]interface{}{
			"version":     Version,
			"environment": environment,
			"roles":       access.Roles(),
			"modules":     access.Modules(),
			"telemetry":   deps.Monitor != nil && deps.Monitor.Running(),
			"role_cache":  deps.RoleCache.Stats(),
			"audit":       auditStats(deps.Audit),
		}, deps.Logger)
	}
}

func auditStats(s *audit.Service) audit.Stats {
	if s == nil {
		return audit.Stats{}
	}
	return s.GetStats()
}
