package handlers

import (
	"net/http"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/services/scenario"
	"github.com/upb/wte-dashboard/backend/utils"
)

// ScenarioCatalog is the static data behind the simulator screen
type ScenarioCatalog struct {
	Technologies []scenario.Technology      `json:"technologies"`
	Comparison   []scenario.ComparisonPoint `json:"comparison"`
	Presets      []scenario.DistrictPreset  `json:"presets"`
}

// decodeInput reads a simulation input. An empty body runs the defaults.
func decodeInput(r *http.Request) (scenario.Input, error) {
	var in scenario.Input
	if r.ContentLength == 0 {
		return in, nil
	}
	err := utils.DecodeJSON(r, &in)
	return in, err
}

// SimulateHandler handles POST /api/v1/scenarios/simulate
func SimulateHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeInput(r)
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		sim, err := scenario.Simulate(in)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, sim, deps.Logger)
	}
}

// CompareScenariosHandler handles POST /api/v1/scenarios/compare.
// The input's technology is ignored; every catalog technology is run.
func CompareScenariosHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeInput(r)
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		sims, err := scenario.CompareAll(in)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, sims, deps.Logger)
	}
}

// ScenarioCatalogHandler handles GET /api/v1/scenarios/catalog
func ScenarioCatalogHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, ScenarioCatalog{
			Technologies: scenario.Catalog(),
			Comparison:   scenario.ComparisonChart(),
			Presets:      scenario.Presets(),
		}, deps.Logger)
	}
}

// ListPresetsHandler handles GET /api/v1/scenarios/presets
func ListPresetsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, scenario.Presets(), deps.Logger)
	}
}

// ListScenariosHandler handles GET /api/v1/scenarios
func ListScenariosHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := intQuery(r, "limit", 0)
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}
		offset, err := intQuery(r, "offset", 0)
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		list, err := deps.Scenarios.List(r.Context(), limit, offset)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, list, deps.Logger)
	}
}

// GetScenarioHandler handles GET /api/v1/scenarios/{id}
func GetScenarioHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		sc, err := deps.Scenarios.Get(r.Context(), id)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, sc, deps.Logger)
	}
}

// SaveScenarioHandler handles POST /api/v1/scenarios
func SaveScenarioHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scenario.SaveRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		sc, err := deps.Scenarios.Save(r.Context(), actorFrom(r), req)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeCreated(w, sc, deps.Logger)
	}
}
