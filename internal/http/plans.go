package http

import (
	"net/http"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/plans"
)

type planCreatePayload struct {
	Name        string         `json:"name"`
	Slug        string         `json:"slug,omitempty"`
	Description string         `json:"description,omitempty"`
	Position    *int           `json:"position,omitempty"`
	Status      string         `json:"status,omitempty"`
	Prices      map[string]any `json:"prices,omitempty"`
}

type planSortPayload struct {
	Pairs []plans.SortPair `json:"pairs"`
}

func (api *AdminAPI) registerPlanRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "plans")
	mux.HandleFunc("GET "+root, api.handlePlanList)
	mux.HandleFunc("POST "+root, api.handlePlanCreate)
	mux.HandleFunc("POST "+root+"/sort", api.handlePlanSort)
	mux.HandleFunc("GET "+root+"/{id}", api.handlePlanGet)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handlePlanDelete)
	mux.HandleFunc("GET "+root+"/{id}/features", api.handlePlanFeatureList)
	mux.HandleFunc("GET "+root+"/{id}/features/{code}", api.handlePlanFeatureGet)
}

func (api *AdminAPI) handlePlanList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.plans == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	records, err := api.plans.ListPlans(r.Context())
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handlePlanCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.plans == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload planCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.plans.CreatePlan(r.Context(), plans.CreatePlanInput{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
		Position:    payload.Position,
		Status:      domain.Status(payload.Status),
		Prices:      payload.Prices,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handlePlanSort(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.plans == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload planSortPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := api.plans.SortPlans(r.Context(), payload.Pairs); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handlePlanGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.plans == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.plans.GetPlan(r.Context(), id)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePlanDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.plans == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.plans.DeletePlan(r.Context(), id); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handlePlanFeatureList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.plans == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	records, err := api.plans.ListFeatures(r.Context(), id)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handlePlanFeatureGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.plans == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.plans.GetFeature(r.Context(), id, r.PathValue("code"))
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
