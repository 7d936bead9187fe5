package handlers

import (
	"net/http"

	"github.com/upb/wte-dashboard/backend/app"
	"github.com/upb/wte-dashboard/backend/repositories"
	"github.com/upb/wte-dashboard/backend/services/waste"
	"github.com/upb/wte-dashboard/backend/utils"
)

// wasteFilter reads municipality, waste_type, from, to, limit and offset
func wasteFilter(r *http.Request) (repositories.WasteFilter, error) {
	q := r.URL.Query()
	filter := repositories.WasteFilter{
		Municipality: q.Get("municipality"),
		WasteType:    q.Get("waste_type"),
	}

	var err error
	if filter.From, err = timeQuery(r, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = timeQuery(r, "to"); err != nil {
		return filter, err
	}
	if filter.Limit, err = intQuery(r, "limit", 0); err != nil {
		return filter, err
	}
	if filter.Offset, err = intQuery(r, "offset", 0); err != nil {
		return filter, err
	}
	return filter, nil
}

// ListWasteDataHandler handles GET /api/v1/waste
func ListWasteDataHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := wasteFilter(r)
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		records, err := deps.Waste.List(r.Context(), filter)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, records, deps.Logger)
	}
}

// WasteSummaryHandler handles GET /api/v1/waste/summary
func WasteSummaryHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := wasteFilter(r)
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		summary, err := deps.Waste.Summary(r.Context(), filter)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, summary, deps.Logger)
	}
}

// WasteReferenceHandler handles GET /api/v1/waste/reference
func WasteReferenceHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, waste.ReferenceData(), deps.Logger)
	}
}

// GetWasteDataHandler handles GET /api/v1/waste/{id}
func GetWasteDataHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		record, err := deps.Waste.Get(r.Context(), id)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, record, deps.Logger)
	}
}

// CreateWasteDataHandler handles POST /api/v1/waste
func CreateWasteDataHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req waste.CreateRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		record, err := deps.Waste.Create(r.Context(), actorFrom(r), req)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeCreated(w, record, deps.Logger)
	}
}

// UpdateWasteDataHandler handles PATCH /api/v1/waste/{id}
func UpdateWasteDataHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		var req waste.UpdateRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		record, err := deps.Waste.Update(r.Context(), actorFrom(r), id, req)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		writeOK(w, record, deps.Logger)
	}
}

// DeleteWasteDataHandler handles DELETE /api/v1/waste/{id}
func DeleteWasteDataHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		if err := deps.Waste.Delete(r.Context(), actorFrom(r), id); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}
		utils.WriteNoContent(w)
	}
}
