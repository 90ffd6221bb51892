package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/plans"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

type testServices struct {
	siteSvc    sites.Service
	sectionSvc sections.Service
	planSvc    plans.Service
}

type testSeeder struct {
	sections sections.Service
}

func (s *testSeeder) Seed(ctx context.Context, pageID uuid.UUID, typeKey string) error {
	_, err := s.sections.Create(ctx, sections.CreateInput{PageID: pageID, Type: typeKey})
	return err
}

func setupAdminAPI(t *testing.T) (*http.ServeMux, testServices) {
	t.Helper()

	sectionRepo, itemRepo := sections.NewMemoryRepositories()
	sectionSvc := sections.NewService(sections.NewDefaultRegistry(), sectionRepo, itemRepo)
	siteSvc := sites.NewService(sites.NewMemorySiteRepository(), sites.NewMemoryPageRepository(),
		sites.WithSectionSeeder(&testSeeder{sections: sectionSvc}),
	)
	planSvc := plans.NewService(plans.NewMemoryPlanRepository(), plans.NewMemoryPlanFeatureRepository())
	genSvc := generation.NewService(sectionRepo,
		generation.WithTextProvider(&generation.StaticTextProvider{
			Result: generation.CompletionResult{Fields: map[string]any{"title": "Generated Title"}},
		}),
		generation.WithImageProvider(&generation.StaticImageProvider{
			Result: generation.ImageResult{URL: "https://images.example.com/a.jpg", Alt: "a"},
		}),
	)

	api := NewAdminAPI(
		WithSiteService(siteSvc),
		WithSectionService(sectionSvc),
		WithPlanService(planSvc),
		WithGenerationService(genSvc),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return mux, testServices{siteSvc: siteSvc, sectionSvc: sectionSvc, planSvc: planSvc}
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createTestSite(t *testing.T, mux *http.ServeMux, owner uuid.UUID, address string) sites.Site {
	t.Helper()
	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites", map[string]any{
		"owner_id": owner.String(),
		"address":  address,
		"name":     "Test Site",
	}, http.StatusCreated)
	var site sites.Site
	decodeJSONBody(t, rec, &site)
	return site
}

func createTestPage(t *testing.T, mux *http.ServeMux, siteID uuid.UUID, name string) sites.Page {
	t.Helper()
	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites/"+siteID.String()+"/pages", map[string]any{
		"name": name,
	}, http.StatusCreated)
	var page sites.Page
	decodeJSONBody(t, rec, &page)
	return page
}

func TestAdminAPI_SiteLifecycle(t *testing.T) {
	mux, _ := setupAdminAPI(t)
	owner := uuid.New()

	site := createTestSite(t, mux, owner, "my-shop")
	if site.ID == uuid.Nil {
		t.Fatalf("expected created site id")
	}
	if site.Address != "my-shop" {
		t.Fatalf("expected address my-shop got %q", site.Address)
	}

	listResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites?owner_id="+owner.String(), nil, http.StatusOK)
	var list []*sites.Site
	decodeJSONBody(t, listResp, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 site got %d", len(list))
	}

	getResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/"+site.ID.String(), nil, http.StatusOK)
	var fetched sites.Site
	decodeJSONBody(t, getResp, &fetched)
	if fetched.ID != site.ID {
		t.Fatalf("expected fetched id %s got %s", site.ID, fetched.ID)
	}

	name := "Renamed Shop"
	updateResp := doJSONRequest(t, mux, http.MethodPut, "/admin/api/sites/"+site.ID.String(), map[string]any{
		"name": name,
	}, http.StatusOK)
	var updated sites.Site
	decodeJSONBody(t, updateResp, &updated)
	if updated.Name != name {
		t.Fatalf("expected renamed site got %q", updated.Name)
	}

	publishResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites/"+site.ID.String()+"/publish", map[string]any{
		"published": true,
	}, http.StatusOK)
	var published sites.Site
	decodeJSONBody(t, publishResp, &published)
	if !published.Published {
		t.Fatalf("expected published site")
	}

	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/sites/"+site.ID.String(), nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/"+site.ID.String(), nil, http.StatusNotFound)
}

func TestAdminAPI_SiteAddressConflict(t *testing.T) {
	mux, _ := setupAdminAPI(t)

	createTestSite(t, mux, uuid.New(), "taken")
	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites", map[string]any{
		"owner_id": uuid.New().String(),
		"address":  "taken",
		"name":     "Other",
	}, http.StatusConflict)

	var resp errorResponse
	decodeJSONBody(t, rec, &resp)
	if resp.Error != "conflict" {
		t.Fatalf("expected conflict error got %q", resp.Error)
	}
}

func TestAdminAPI_PageLifecycle(t *testing.T) {
	mux, _ := setupAdminAPI(t)
	site := createTestSite(t, mux, uuid.New(), "pages-site")

	home := createTestPage(t, mux, site.ID, "Home")
	if !home.Default {
		t.Fatalf("expected first page to be default")
	}
	about := createTestPage(t, mux, site.ID, "About")

	listResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/"+site.ID.String()+"/pages", nil, http.StatusOK)
	var pages []*sites.Page
	decodeJSONBody(t, listResp, &pages)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages got %d", len(pages))
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites/"+site.ID.String()+"/pages/sort", map[string]any{
		"pairs": []map[string]any{
			{"id": about.ID.String(), "position": 0},
			{"id": home.ID.String(), "position": 1},
		},
	}, http.StatusNoContent)

	defaultResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/pages/"+about.ID.String()+"/default", nil, http.StatusOK)
	var promoted sites.Page
	decodeJSONBody(t, defaultResp, &promoted)
	if !promoted.Default {
		t.Fatalf("expected promoted default page")
	}

	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/pages/"+about.ID.String(), nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/pages/"+about.ID.String(), nil, http.StatusNotFound)
}

func TestAdminAPI_SectionLifecycle(t *testing.T) {
	mux, _ := setupAdminAPI(t)
	site := createTestSite(t, mux, uuid.New(), "sections-site")
	page := createTestPage(t, mux, site.ID, "Home")

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/pages/"+page.ID.String()+"/sections", map[string]any{
		"type": "banner",
	}, http.StatusCreated)
	var section sections.Section
	decodeJSONBody(t, createResp, &section)
	if section.Type != "banner" {
		t.Fatalf("expected banner section got %q", section.Type)
	}
	if section.Content["title"] != "Heading" {
		t.Fatalf("expected skeleton content got %#v", section.Content)
	}

	typesResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/sections/types", nil, http.StatusOK)
	var types []sections.Type
	decodeJSONBody(t, typesResp, &types)
	if len(types) == 0 {
		t.Fatalf("expected registered section types")
	}

	updateResp := doJSONRequest(t, mux, http.MethodPut, "/admin/api/sections/"+section.ID.String(), map[string]any{
		"content": map[string]any{"title": "Edited"},
	}, http.StatusOK)
	var updated sections.Section
	decodeJSONBody(t, updateResp, &updated)
	if updated.Content["title"] != "Edited" {
		t.Fatalf("expected edited content got %#v", updated.Content)
	}

	dupResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections/"+section.ID.String()+"/duplicate", nil, http.StatusCreated)
	var clone sections.Section
	decodeJSONBody(t, dupResp, &clone)
	if clone.ID == section.ID {
		t.Fatalf("expected fresh id for duplicate")
	}

	listResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/pages/"+page.ID.String()+"/sections", nil, http.StatusOK)
	var records []*sections.Section
	decodeJSONBody(t, listResp, &records)
	if len(records) != 2 {
		t.Fatalf("expected 2 sections got %d", len(records))
	}

	doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections/sort", map[string]any{
		"pairs": []map[string]any{
			{"id": clone.ID.String(), "position": 0},
			{"id": section.ID.String(), "position": 1},
		},
	}, http.StatusNoContent)

	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/sections/"+clone.ID.String(), nil, http.StatusNoContent)
}

func TestAdminAPI_SectionUnknownType(t *testing.T) {
	mux, _ := setupAdminAPI(t)
	site := createTestSite(t, mux, uuid.New(), "unknown-type")
	page := createTestPage(t, mux, site.ID, "Home")

	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/pages/"+page.ID.String()+"/sections", map[string]any{
		"type": "carousel",
	}, http.StatusBadRequest)

	var resp errorResponse
	decodeJSONBody(t, rec, &resp)
	if resp.Error != "bad_request" {
		t.Fatalf("expected bad_request got %q", resp.Error)
	}
}

func TestAdminAPI_SectionInvalidContent(t *testing.T) {
	mux, _ := setupAdminAPI(t)
	site := createTestSite(t, mux, uuid.New(), "invalid-content")
	page := createTestPage(t, mux, site.ID, "Home")

	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/pages/"+page.ID.String()+"/sections", map[string]any{
		"type":    "banner",
		"content": map[string]any{"title": 42},
	}, http.StatusUnprocessableEntity)

	var resp errorResponse
	decodeJSONBody(t, rec, &resp)
	if resp.Error != "validation_failed" {
		t.Fatalf("expected validation_failed got %q", resp.Error)
	}
	if len(resp.Issues) == 0 {
		t.Fatalf("expected validation issues in response")
	}
}

func TestAdminAPI_SectionGenerate(t *testing.T) {
	mux, _ := setupAdminAPI(t)
	site := createTestSite(t, mux, uuid.New(), "generate-site")
	page := createTestPage(t, mux, site.ID, "Home")

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/pages/"+page.ID.String()+"/sections", map[string]any{
		"type": "banner",
	}, http.StatusCreated)
	var section sections.Section
	decodeJSONBody(t, createResp, &section)

	genResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections/"+section.ID.String()+"/generate", map[string]any{
		"category": "bakery",
		"image":    true,
	}, http.StatusOK)
	var generated sections.Section
	decodeJSONBody(t, genResp, &generated)
	if generated.Content["title"] != "Generated Title" {
		t.Fatalf("expected generated copy got %#v", generated.Content)
	}
	if generated.Generation != "generated" {
		t.Fatalf("expected generated state got %q", generated.Generation)
	}
	if generated.ImageGeneration != "generated" {
		t.Fatalf("expected generated image state got %q", generated.ImageGeneration)
	}
}

func TestAdminAPI_SectionItems(t *testing.T) {
	mux, _ := setupAdminAPI(t)
	site := createTestSite(t, mux, uuid.New(), "items-site")
	page := createTestPage(t, mux, site.ID, "Home")

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/pages/"+page.ID.String()+"/sections", map[string]any{
		"type": "faq",
	}, http.StatusCreated)
	var section sections.Section
	decodeJSONBody(t, createResp, &section)

	itemResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sections/"+section.ID.String()+"/items", map[string]any{
		"content": map[string]any{"question": "Do you ship?", "answer": "Yes"},
	}, http.StatusCreated)
	var item sections.SectionItem
	decodeJSONBody(t, itemResp, &item)
	if item.SectionID != section.ID {
		t.Fatalf("expected item bound to section")
	}

	updateResp := doJSONRequest(t, mux, http.MethodPut, "/admin/api/items/"+item.ID.String(), map[string]any{
		"content": map[string]any{"question": "Do you ship worldwide?", "answer": "Yes"},
	}, http.StatusOK)
	var updated sections.SectionItem
	decodeJSONBody(t, updateResp, &updated)
	if updated.Content["question"] != "Do you ship worldwide?" {
		t.Fatalf("unexpected item content %#v", updated.Content)
	}

	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/items/"+item.ID.String(), nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodPut, "/admin/api/items/"+item.ID.String(), map[string]any{"content": map[string]any{}}, http.StatusNotFound)
}

func TestAdminAPI_SiteGenerate(t *testing.T) {
	mux, _ := setupAdminAPI(t)
	owner := uuid.New()

	rec := doJSONRequest(t, mux, http.MethodPost, "/admin/api/sites/generate", map[string]any{
		"owner_id": owner.String(),
		"address":  "corner-bakery",
		"name":     "Corner Bakery",
		"category": "bakery",
		"sections": []string{"banner", "text"},
	}, http.StatusCreated)
	var site sites.Site
	decodeJSONBody(t, rec, &site)
	if site.Address != "corner-bakery" {
		t.Fatalf("expected generated site got %+v", site)
	}

	pagesResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites/"+site.ID.String()+"/pages", nil, http.StatusOK)
	var pages []*sites.Page
	decodeJSONBody(t, pagesResp, &pages)
	if len(pages) != 1 || pages[0].Slug != "home" {
		t.Fatalf("expected generated home page got %+v", pages)
	}

	sectionsResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/pages/"+pages[0].ID.String()+"/sections", nil, http.StatusOK)
	var records []*sections.Section
	decodeJSONBody(t, sectionsResp, &records)
	if len(records) != 2 {
		t.Fatalf("expected 2 seeded sections got %d", len(records))
	}
}

func TestAdminAPI_PlanLifecycleAndFeatures(t *testing.T) {
	mux, _ := setupAdminAPI(t)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/admin/api/plans", map[string]any{
		"name":   "Free",
		"status": "published",
	}, http.StatusCreated)
	var plan plans.Plan
	decodeJSONBody(t, createResp, &plan)
	if plan.Slug != "free" {
		t.Fatalf("expected slug free got %q", plan.Slug)
	}

	featureResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/plans/"+plan.ID.String()+"/features/consume.sites", nil, http.StatusOK)
	var feature plans.PlanFeature
	decodeJSONBody(t, featureResp, &feature)
	if feature.Code != "consume.sites" || feature.Limit != 1 {
		t.Fatalf("expected catalog feature got %+v", feature)
	}

	listResp := doJSONRequest(t, mux, http.MethodGet, "/admin/api/plans/"+plan.ID.String()+"/features", nil, http.StatusOK)
	var features []*plans.PlanFeature
	decodeJSONBody(t, listResp, &features)
	if len(features) != 1 {
		t.Fatalf("expected 1 materialized feature got %d", len(features))
	}

	doJSONRequest(t, mux, http.MethodGet, "/admin/api/plans/"+plan.ID.String()+"/features/consume.widgets", nil, http.StatusBadRequest)

	doJSONRequest(t, mux, http.MethodDelete, "/admin/api/plans/"+plan.ID.String(), nil, http.StatusNoContent)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/plans/"+plan.ID.String(), nil, http.StatusNotFound)
}

func TestAdminAPI_SiteListRequiresOwner(t *testing.T) {
	mux, _ := setupAdminAPI(t)
	doJSONRequest(t, mux, http.MethodGet, "/admin/api/sites", nil, http.StatusBadRequest)
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		base   string
		suffix string
		want   string
	}{
		{"", "", "/"},
		{"/admin/api", "", "/admin/api"},
		{"admin/api/", "sites", "/admin/api/sites"},
		{"", "sites", "/sites"},
	}
	for _, tc := range cases {
		if got := joinPath(tc.base, tc.suffix); got != tc.want {
			t.Fatalf("joinPath(%q, %q) = %q, want %q", tc.base, tc.suffix, got, tc.want)
		}
	}
}

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Trace(string, ...any) {}
func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Fatal(string, ...any) {}

func (l *recordingLogger) Error(msg string, _ ...any) {
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func TestAdminAPILogsServerErrors(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	api := NewAdminAPI(WithLogger(logger))

	rec := httptest.NewRecorder()
	api.writeError(rec, errors.New("storage offline"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if len(logger.errors) != 1 {
		t.Fatalf("expected one logged failure, got %d", len(logger.errors))
	}

	rec = httptest.NewRecorder()
	api.writeError(rec, sections.ErrTypeUnknown)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(logger.errors) != 1 {
		t.Fatalf("expected client errors to go unlogged, got %d entries", len(logger.errors))
	}
}
