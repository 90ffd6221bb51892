package sitebuilder

import (
	nethttp "net/http"

	"github.com/goliatone/go-sitebuilder/internal/di"
	"github.com/goliatone/go-sitebuilder/internal/generation"
	builderhttp "github.com/goliatone/go-sitebuilder/internal/http"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/plans"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// SiteService exports the site and page service contract.
type SiteService = sites.Service

// SectionService exports the section composition service contract.
type SectionService = sections.Service

// PlanService exports the plan and feature service contract.
type PlanService = plans.Service

// GenerationService exports the AI generation service contract.
type GenerationService = generation.Service

// Registry exports the section type registry.
type Registry = sections.Registry

// SectionType exports the registry type descriptor.
type SectionType = sections.Type

// Logger exports the logging contract host applications can satisfy.
type Logger = interfaces.Logger

// Module represents the top level site builder runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a builder module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Sites returns the site and page service.
func (m *Module) Sites() SiteService {
	return m.container.SiteService()
}

// Sections returns the section composition service.
func (m *Module) Sections() SectionService {
	return m.container.SectionService()
}

// Plans returns the plan and feature service.
func (m *Module) Plans() PlanService {
	return m.container.PlanService()
}

// Generation returns the AI content generation service.
func (m *Module) Generation() GenerationService {
	return m.container.GenerationService()
}

// SectionTypes returns the registry the module was built with.
func (m *Module) SectionTypes() *Registry {
	return m.container.Registry()
}

// RegisterAdminRoutes mounts the admin API on the provided mux.
func (m *Module) RegisterAdminRoutes(mux *nethttp.ServeMux, opts ...builderhttp.AdminOption) error {
	options := append([]builderhttp.AdminOption{
		builderhttp.WithLogger(logging.HTTPLogger(m.container.LoggerProvider())),
		builderhttp.WithSiteService(m.Sites()),
		builderhttp.WithSectionService(m.Sections()),
		builderhttp.WithPlanService(m.Plans()),
		builderhttp.WithGenerationService(m.Generation()),
	}, opts...)
	return builderhttp.NewAdminAPI(options...).Register(mux)
}
