package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/plans"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// AdminAPI registers the builder's admin endpoints: sites, pages, sections,
// plans, and content generation. The route table is closed; requests outside
// it fall through to the mux's 404/405 handling.
type AdminAPI struct {
	basePath   string
	logger     interfaces.Logger
	sites      sites.Service
	sections   sections.Service
	plans      plans.Service
	generation generation.Service
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithLogger injects the logger used for request failures. Defaults to a
// no-op logger.
func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// WithSiteService wires the site service.
func WithSiteService(service sites.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.sites = service
		}
	}
}

// WithSectionService wires the section service.
func WithSectionService(service sections.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.sections = service
		}
	}
}

// WithPlanService wires the plan service.
func WithPlanService(service plans.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.plans = service
		}
	}
}

// WithGenerationService wires the content generation service.
func WithGenerationService(service generation.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.generation = service
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerSiteRoutes(mux, base)
	api.registerSectionRoutes(mux, base)
	api.registerPlanRoutes(mux, base)

	return nil
}
