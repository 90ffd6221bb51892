package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/sites"
)

type siteCreatePayload struct {
	OwnerID  string         `json:"owner_id"`
	Address  string         `json:"address"`
	Name     string         `json:"name"`
	Settings map[string]any `json:"settings,omitempty"`
	Header   map[string]any `json:"header,omitempty"`
	Footer   map[string]any `json:"footer,omitempty"`
	SEO      map[string]any `json:"seo,omitempty"`
}

type siteUpdatePayload struct {
	Name     *string        `json:"name,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
	Header   map[string]any `json:"header,omitempty"`
	Footer   map[string]any `json:"footer,omitempty"`
	SEO      map[string]any `json:"seo,omitempty"`
}

type siteGeneratePayload struct {
	OwnerID  string   `json:"owner_id"`
	Address  string   `json:"address"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Sections []string `json:"sections,omitempty"`
}

type pageCreatePayload struct {
	Name string         `json:"name"`
	Slug string         `json:"slug,omitempty"`
	SEO  map[string]any `json:"seo,omitempty"`
}

type pageUpdatePayload struct {
	Name      *string        `json:"name,omitempty"`
	Published *bool          `json:"published,omitempty"`
	SEO       map[string]any `json:"seo,omitempty"`
}

type sortPayload struct {
	Pairs []sites.SortPair `json:"pairs"`
}

func (api *AdminAPI) registerSiteRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "sites")
	mux.HandleFunc("GET "+root, api.handleSiteList)
	mux.HandleFunc("POST "+root, api.handleSiteCreate)
	mux.HandleFunc("POST "+root+"/generate", api.handleSiteGenerate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleSiteGet)
	mux.HandleFunc("PUT "+root+"/{id}", api.handleSiteUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleSiteDelete)
	mux.HandleFunc("POST "+root+"/{id}/publish", api.handleSitePublish)
	mux.HandleFunc("GET "+root+"/{id}/pages", api.handlePageList)
	mux.HandleFunc("POST "+root+"/{id}/pages", api.handlePageCreate)
	mux.HandleFunc("POST "+root+"/{id}/pages/sort", api.handlePageSort)

	pagesRoot := joinPath(base, "pages")
	mux.HandleFunc("GET "+pagesRoot+"/{id}", api.handlePageGet)
	mux.HandleFunc("PUT "+pagesRoot+"/{id}", api.handlePageUpdate)
	mux.HandleFunc("DELETE "+pagesRoot+"/{id}", api.handlePageDelete)
	mux.HandleFunc("POST "+pagesRoot+"/{id}/default", api.handlePageSetDefault)
}

func (api *AdminAPI) handleSiteList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	ownerID, err := parseUUID(r.URL.Query().Get("owner_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "owner_id query parameter required"})
		return
	}
	records, err := api.sites.ListSites(r.Context(), ownerID)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleSiteCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload siteCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	ownerID, err := parseUUID(payload.OwnerID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid owner_id"})
		return
	}
	record, err := api.sites.CreateSite(r.Context(), sites.CreateSiteInput{
		OwnerID:  ownerID,
		Address:  payload.Address,
		Name:     payload.Name,
		Settings: payload.Settings,
		Header:   payload.Header,
		Footer:   payload.Footer,
		SEO:      payload.SEO,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleSiteGenerate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload siteGeneratePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	ownerID, err := parseUUID(payload.OwnerID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid owner_id"})
		return
	}
	record, err := api.sites.GenerateSite(r.Context(), sites.GenerateSiteInput{
		OwnerID:  ownerID,
		Address:  payload.Address,
		Name:     payload.Name,
		Category: payload.Category,
		Sections: payload.Sections,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleSiteGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if address := strings.TrimSpace(r.URL.Query().Get("by_address")); address != "" {
		record, err := api.sites.GetSiteByAddress(r.Context(), address)
		if err != nil {
			api.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.sites.GetSite(r.Context(), id)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSiteUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload siteUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.sites.UpdateSite(r.Context(), sites.UpdateSiteInput{
		SiteID:   id,
		Name:     payload.Name,
		Settings: payload.Settings,
		Header:   payload.Header,
		Footer:   payload.Footer,
		SEO:      payload.SEO,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSitePublish(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload struct {
		Published *bool `json:"published"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	published := true
	if payload.Published != nil {
		published = *payload.Published
	}
	record, err := api.sites.PublishSite(r.Context(), id, published)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSiteDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.sites.DeleteSite(r.Context(), id); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	siteID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	records, err := api.sites.ListPages(r.Context(), siteID)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	siteID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload pageCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.sites.CreatePage(r.Context(), sites.CreatePageInput{
		SiteID: siteID,
		Name:   payload.Name,
		Slug:   payload.Slug,
		SEO:    payload.SEO,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handlePageSort(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	siteID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload sortPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := api.sites.SortPages(r.Context(), siteID, payload.Pairs); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.sites.GetPage(r.Context(), id)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.sites.UpdatePage(r.Context(), sites.UpdatePageInput{
		PageID:    id,
		Name:      payload.Name,
		Published: payload.Published,
		SEO:       payload.SEO,
	})
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePageSetDefault(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.sites.SetDefaultPage(r.Context(), id)
	if err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.sites == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.sites.DeletePage(r.Context(), id); err != nil {
		api.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
