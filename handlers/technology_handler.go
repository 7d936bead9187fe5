package handlers

import (
	"net/http"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/services/technologies"
	"github.com/upb/wte-dashboard/backend/utils"
)

// ListTechnologiesHandler handles GET /api/v1/technologies
func ListTechnologiesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Technologies.List(r.Context())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, list, deps.Logger)
	}
}

// CreateTechnologyHandler handles POST /api/v1/technologies
func CreateTechnologyHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req technologies.CreateRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		tech, err := deps.Technologies.Create(r.Context(), actorFrom(r), req)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeCreated(w, tech, deps.Logger)
	}
}
