package handlers

import (
	"net/http"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services/sites"
	"github.com/upb/wte-dashboard/backend/utils"
)

// ListSitesHandler handles GET /api/v1/sites.
// ?ranked=true returns the suggestion ranking instead of name order.
func ListSitesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := repositories.SiteFilter{
			Status:     models.SiteStatus(q.Get("status")),
			Technology: q.Get("technology"),
		}

		list := deps.Sites.List
		if boolQuery(r, "ranked") {
			list = deps.Sites.Suggestions
		}

		result, err := list(r.Context(), filter)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, result, deps.Logger)
	}
}

// GetSiteHandler handles GET /api/v1/sites/{id}
func GetSiteHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		site, err := deps.Sites.Get(r.Context(), id)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, site, deps.Logger)
	}
}

// CreateSiteHandler handles POST /api/v1/sites
func CreateSiteHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sites.CreateRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		site, err := deps.Sites.Create(r.Context(), actorFrom(r), req)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeCreated(w, site, deps.Logger)
	}
}

// UpdateSiteHandler handles PATCH /api/v1/sites/{id}
func UpdateSiteHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		var req sites.UpdateRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		site, err := deps.Sites.Update(r.Context(), actorFrom(r), id, req)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, site, deps.Logger)
	}
}

// DeleteSiteHandler handles DELETE /api/v1/sites/{id}
func DeleteSiteHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		if err := deps.Sites.Delete(r.Context(), actorFrom(r), id); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		utils.WriteNoContent(w)
	}
}
