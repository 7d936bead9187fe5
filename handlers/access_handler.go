package handlers

import (
	"net/http"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/services"
)

// AccessProfile is what the caller's role unlocks
type AccessProfile struct {
	Role    access.Role     `json:"role"`
	Modules []access.Module `json:"modules"`
	Routes  []string        `json:"routes"`
}

// RouteAccess answers whether the caller may open one route
type RouteAccess struct {
	Path    string        `json:"path"`
	Module  access.Module `json:"module"`
	Allowed bool          `json:"allowed"`
}

// GetAccessProfileHandler handles GET /api/v1/access/me
func GetAccessProfileHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := currentIdentity(w, r, deps.Logger)
		if id == nil {
			return
		}

		writeOK(w, AccessProfile{
			Role:    id.Role,
			Modules: deps.Access.AccessibleModules(id.Role),
			Routes:  deps.Access.AccessibleRoutes(id.Role),
		}, deps.Logger)
	}
}

// CheckRouteHandler handles GET /api/v1/access/check?path=
func CheckRouteHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := currentIdentity(w, r, deps.Logger)
		if id == nil {
			return
		}

		path := r.URL.Query().Get("path")
		if path == "" {
			HandleServiceError(w, services.NewDomainError(services.ErrorTypeValidation, "path query parameter is required", nil), deps.Logger)
			return
		}

		module, ok := deps.Access.ModuleByRoute(path)
		if !ok {
			HandleServiceError(w, services.NewDomainError(services.ErrorTypeNotFound, services.ErrRouteNotFound.Message, nil).
				WithDetail("path", path), deps.Logger)
			return
		}

		writeOK(w, RouteAccess{
			Path:    path,
			Module:  module,
			Allowed: deps.Access.HasAccess(id.Role, module),
		}, deps.Logger)
	}
}
