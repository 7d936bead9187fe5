package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/handlers"
	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/internal/observability"
	dashmw "github.com/upb/wte-dashboard/backend/middleware"
	"github.com/upb/wte-dashboard/backend/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(dashmw.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(observability.MetricsMiddleware)

	// CORS middleware
	origins := []string{"http://localhost:*", "https://*"}
	if deps.Config != nil && len(deps.Config.Server.AllowedOrigins) > 0 {
		origins = deps.Config.Server.AllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))
	if deps.Config == nil || deps.Config.Observability.MetricsEnabled {
		r.Handle("/metrics", observability.Handler())
	}

	auth := deps.AuthMiddleware

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/status", handlers.StatusHandler(deps))

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)

			// Navigation
			r.Get("/access/me", handlers.GetAccessProfileHandler(deps))
			r.Get("/access/check", handlers.CheckRouteHandler(deps))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", handlers.GetCurrentUserHandler(deps))

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireModule(access.ModuleUserManagement))
					r.Get("/", handlers.ListUsersHandler(deps))
					r.Put("/{id}", handlers.UpdateUserHandler(deps))
					r.Put("/{id}/role", handlers.AssignRoleHandler(deps))
				})
			})

			r.Route("/sites", func(r chi.Router) {
				r.Use(auth.RequireModule(access.ModuleSiteSuggestions))
				r.Get("/", handlers.ListSitesHandler(deps))
				r.Post("/", handlers.CreateSiteHandler(deps))
				r.Get("/{id}", handlers.GetSiteHandler(deps))
				r.Patch("/{id}", handlers.UpdateSiteHandler(deps))
				r.Delete("/{id}", handlers.DeleteSiteHandler(deps))
			})

			// Analysts read waste data; writes need the data management module
			r.Route("/waste", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(auth.RequireModule(access.ModuleWasteAnalysis))
					r.Get("/", handlers.ListWasteDataHandler(deps))
					r.Get("/summary", handlers.WasteSummaryHandler(deps))
					r.Get("/reference", handlers.WasteReferenceHandler(deps))
					r.Get("/{id}", handlers.GetWasteDataHandler(deps))
				})
				r.Group(func(r chi.Router) {
					r.Use(auth.RequireModule(access.ModuleDataManagement))
					r.Post("/", handlers.CreateWasteDataHandler(deps))
					r.Patch("/{id}", handlers.UpdateWasteDataHandler(deps))
					r.Delete("/{id}", handlers.DeleteWasteDataHandler(deps))
				})
			})

			r.Route("/technologies", func(r chi.Router) {
				r.Use(auth.RequireModule(access.ModuleTechnologyComparison))
				r.Get("/", handlers.ListTechnologiesHandler(deps))
				r.Post("/", handlers.CreateTechnologyHandler(deps))
			})

			r.Route("/scenarios", func(r chi.Router) {
				r.Use(auth.RequireModule(access.ModuleScenarioSimulation))
				r.Post("/simulate", handlers.SimulateHandler(deps))
				r.Post("/compare", handlers.CompareScenariosHandler(deps))
				r.Get("/catalog", handlers.ScenarioCatalogHandler(deps))
				r.Get("/presets", handlers.ListPresetsHandler(deps))
				r.Get("/", handlers.ListScenariosHandler(deps))
				r.Post("/", handlers.SaveScenarioHandler(deps))
				r.Get("/{id}", handlers.GetScenarioHandler(deps))
			})

			r.Route("/monitoring", func(r chi.Router) {
				r.Use(auth.RequireModule(access.ModuleWteMonitoring))
				r.Get("/live", handlers.LiveTelemetryHandler(deps))
				r.Get("/history", handlers.TelemetryHistoryHandler(deps))
				r.Get("/alerts", handlers.TelemetryAlertsHandler(deps))
				r.Get("/thresholds", handlers.TelemetryThresholdsHandler(deps))
				r.Get("/readings", handlers.StoredReadingsHandler(deps))
			})

			r.Route("/logs", func(r chi.Router) {
				r.Use(auth.RequireModule(access.ModuleLogs))
				r.Get("/", handlers.ListAuditLogsHandler(deps))
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})

	return r
}
