package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/services"
	"github.com/upb/wte-dashboard/backend/services/telemetry"
	"github.com/upb/wte-dashboard/backend/utils"
)

func monitorDisabled(w http.ResponseWriter, deps *app.Dependencies) {
	if err := utils.WriteServiceUnavailable(w, services.ErrMonitorStopped.Message); err != nil {
		deps.Logger.Error("failed to write response", zap.Error(err))
	}
}

// LiveTelemetryHandler handles GET /api/v1/monitoring/live
func LiveTelemetryHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Monitor == nil {
			monitorDisabled(w, deps)
			return
		}
		writeOK(w, deps.Monitor.Snapshot(), deps.Logger)
	}
}

// TelemetryHistoryHandler handles GET /api/v1/monitoring/history
func TelemetryHistoryHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Monitor == nil {
			monitorDisabled(w, deps)
			return
		}
		writeOK(w, deps.Monitor.History(), deps.Logger)
	}
}

// TelemetryAlertsHandler handles GET /api/v1/monitoring/alerts
func TelemetryAlertsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Monitor == nil {
			monitorDisabled(w, deps)
			return
		}
		writeOK(w, deps.Monitor.RecentAlerts(), deps.Logger)
	}
}

// TelemetryThresholdsHandler handles GET /api/v1/monitoring/thresholds
func TelemetryThresholdsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, telemetry.Thresholds(), deps.Logger)
	}
}

// StoredReadingsHandler handles GET /api/v1/monitoring/readings
func StoredReadingsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Monitor == nil {
			monitorDisabled(w, deps)
			return
		}

		siteID, err := optionalUUIDQuery(r, "site_id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}
		limit, err := intQuery(r, "limit", 0)
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		records, err := deps.Monitor.Stored(r.Context(), siteID, limit)
		if err != nil {
			HandleServiceError(w, services.WrapInternal("failed to list telemetry samples", err), deps.Logger)
			return
		}
		writeOK(w, records, deps.Logger)
	}
}
