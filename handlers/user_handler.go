package handlers

import (
	"net/http"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/services/users"
	"github.com/upb/wte-dashboard/backend/utils"
)

// CurrentUser is the signed-in user's profile and role
type CurrentUser struct {
	models.Profile
	Role access.Role `json:"role"`
}

// GetCurrentUserHandler handles GET /api/v1/users/me.
// The profile is created on first sign-in.
func GetCurrentUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := currentIdentity(w, r, deps.Logger)
		if id == nil {
			return
		}

		profile, err := deps.Users.Provision(r.Context(), id.UserID, id.Email)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		writeOK(w, CurrentUser{Profile: *profile, Role: id.Role}, deps.Logger)
	}
}

// ListUsersHandler handles GET /api/v1/users
func ListUsersHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Users.List(r.Context())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, list, deps.Logger)
	}
}

// UpdateUserHandler handles PUT /api/v1/users/{id}
func UpdateUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuidParam(r, "id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		var req users.UpdateProfileRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		profile, err := deps.Users.UpdateName(r.Context(), actorFrom(r), userID, req.Name)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, profile, deps.Logger)
	}
}

// AssignRoleHandler handles PUT /api/v1/users/{id}/role
func AssignRoleHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuidParam(r, "id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		var req users.AssignRoleRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		// validated by the dashboard_role tag
		role, _ := access.ParseRole(req.Role)
		assignment, err := deps.Users.AssignRole(r.Context(), actorFrom(r), userID, role)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, assignment, deps.Logger)
	}
}
