package http

import (
	"net/http"

	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/sections"
)

type sectionCreatePayload struct {
	Type     string         `json:"type"`
	Position *int           `json:"position,omitempty"`
	Content  map[string]any `json:"content,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
	Form     map[string]any `json:"form,omitempty"`
}

type sectionUpdatePayload struct {
	Content   map[string]any `json:"content,omitempty"`
	Settings  map[string]any `json:"settings,omitempty"`
	Form      map[string]any `json:"form,omitempty"`
	Published *bool          `json:"published,omitempty"`
}

type sectionSortPayload struct {
	Pairs []sections.SortPair `json:"pairs"`
}

type sectionGeneratePayload struct {
	Category string `json:"category,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
	Image    bool   `json:"image,omitempty"`
}

type itemCreatePayload struct {
	Content  map[string]any `json:"content,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
	Position *int           `json:"position,omitempty"`
}

type itemUpdatePayload struct {
	Content  map[string]any `json:"content,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

func (api *AdminAPI) registerSectionRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	pagesRoot := joinPath(base, "pages")
	mux.HandleFunc("GET "+pagesRoot+"/{id}/sections", api.handleSectionList)
	mux.HandleFunc("POST "+pagesRoot+"/{id}/sections", api.handleSectionCreate)

	root := joinPath(base, "sections")
	mux.HandleFunc("POST "+root+"/sort", api.handleSectionSort)
	mux.HandleFunc("GET "+root+"/types", api.handleSectionTypes)
	mux.HandleFunc("GET "+root+"/{id}", api.handleSectionGet)
	mux.HandleFunc("PUT "+root+"/{id}", api.handleSectionUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleSectionDelete)
	mux.HandleFunc("POST "+root+"/{id}/duplicate", api.handleSectionDuplicate)
	mux.HandleFunc("POST "+root+"/{id}/generate", api.handleSectionGenerate)
	mux.HandleFunc("POST "+root+"/{id}/items", api.handleItemCreate)
	mux.HandleFunc("POST "+root+"/{id}/items/sort", api.handleItemSort)

	itemsRoot := joinPath(base, "items")
	mux.HandleFunc("PUT "+itemsRoot+"/{id}", api.handleItemUpdate)
	mux.HandleFunc("DELETE "+itemsRoot+"/{id}", api.handleItemDelete)
}

func (api *AdminAPI) handleSectionList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	pageID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	records, err := api.sections.ListByPage(r.Context(), pageID)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleSectionCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	pageID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload sectionCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.sections.Create(r.Context(), sections.CreateInput{
		PageID:   pageID,
		Type:     payload.Type,
		Position: payload.Position,
		Content:  payload.Content,
		Settings: payload.Settings,
		Form:     payload.Form,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleSectionTypes(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, api.sections.Registry().List())
}

func (api *AdminAPI) handleSectionGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.sections.Get(r.Context(), id)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSectionUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload sectionUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.sections.Update(r.Context(), sections.UpdateInput{
		SectionID: id,
		Content:   payload.Content,
		Settings:  payload.Settings,
		Form:      payload.Form,
		Published: payload.Published,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSectionSort(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload sectionSortPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := api.sections.Sort(r.Context(), payload.Pairs); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleSectionDuplicate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.sections.Duplicate(r.Context(), id)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleSectionGenerate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.generation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload sectionGeneratePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	genCtx := generation.Context{Category: payload.Category, Prompt: payload.Prompt}
	record, err := api.generation.GenerateText(r.Context(), id, genCtx)
	if err != nil {
		api.writeError(w, err)
		return
	}
	if payload.Image {
		record, err = api.generation.GenerateImage(r.Context(), id, genCtx)
		if err != nil {
			api.writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSectionDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.sections.Delete(r.Context(), id); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	sectionID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload itemCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.sections.AddItem(r.Context(), sections.AddItemInput{
		SectionID: sectionID,
		Content:   payload.Content,
		Settings:  payload.Settings,
		Position:  payload.Position,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleItemSort(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, err := parseUUID(r.PathValue("id")); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload sectionSortPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := api.sections.SortItems(r.Context(), payload.Pairs); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleItemUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload itemUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.sections.UpdateItem(r.Context(), sections.UpdateItemInput{
		ItemID:   id,
		Content:  payload.Content,
		Settings: payload.Settings,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sections == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.sections.DeleteItem(r.Context(), id); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
