package handlers

import (
	"net/http"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services"
)

// ListAuditLogsHandler handles GET /api/v1/logs
func ListAuditLogsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := repositories.AuditFilter{
			Action: models.AuditAction(r.URL.Query().Get("action")),
		}

		var err error
		if filter.UserID, err = optionalUUIDQuery(r, "user_id"); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}
		if filter.From, err = timeQuery(r, "from"); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}
		if filter.To, err = timeQuery(r, "to"); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}
		if filter.Limit, err = intQuery(r, "limit", 0); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}
		if filter.Offset, err = intQuery(r, "offset", 0); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		logs, err := deps.Audit.List(r.Context(), filter)
		if err != nil {
			HandleServiceError(w, services.WrapInternal("failed to list audit logs", err), deps.Logger)
			return
		}
		writeOK(w, logs, deps.Logger)
	}
}
