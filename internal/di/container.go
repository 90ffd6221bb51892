package di

import (
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/logging/gologger"
	"github.com/goliatone/go-sitebuilder/internal/plans"
	"github.com/goliatone/go-sitebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// ErrBunStorageRequiresDB reports a bun storage provider configured without a
// database connection.
var ErrBunStorageRequiresDB = errors.New("di: bun storage provider requires a database connection")

// ErrStorageProviderUnknown reports an unsupported storage provider name.
var ErrStorageProviderUnknown = errors.New("di: storage provider is invalid")

// PlanResolver maps an account owner to the plan governing their limits.
type PlanResolver func(ownerID uuid.UUID) (uuid.UUID, error)

// Container wires module dependencies. Defaults bind in-memory repositories;
// WithBunDB switches the whole graph onto a database.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	registry *sections.Registry

	siteRepo    sites.SiteRepository
	pageRepo    sites.PageRepository
	sectionRepo sections.SectionRepository
	itemRepo    sections.SectionItemRepository
	planRepo    plans.PlanRepository
	featureRepo plans.PlanFeatureRepository

	textProvider  generation.TextProvider
	imageProvider generation.ImageProvider
	planResolver  PlanResolver

	siteSvc    sites.Service
	sectionSvc sections.Service
	planSvc    plans.Service
	genSvc     generation.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies the database connection required by the bun storage
// provider. Supplying one also moves every repository onto the database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache wiring.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider built from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithRegistry overrides the default section type registry.
func WithRegistry(registry *sections.Registry) Option {
	return func(c *Container) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithTextProvider overrides the configured text generation provider.
func WithTextProvider(provider generation.TextProvider) Option {
	return func(c *Container) {
		c.textProvider = provider
	}
}

// WithImageProvider overrides the configured image search provider.
func WithImageProvider(provider generation.ImageProvider) Option {
	return func(c *Container) {
		c.imageProvider = provider
	}
}

// WithPlanResolver wires owner-to-plan resolution for limit enforcement.
// Without one, limit checks allow everything.
func WithPlanResolver(resolver PlanResolver) Option {
	return func(c *Container) {
		c.planResolver = resolver
	}
}

// WithSiteService overrides the default site service binding.
func WithSiteService(svc sites.Service) Option {
	return func(c *Container) {
		c.siteSvc = svc
	}
}

// WithSectionService overrides the default section service binding.
func WithSectionService(svc sections.Service) Option {
	return func(c *Container) {
		c.sectionSvc = svc
	}
}

// WithPlanService overrides the default plan service binding.
func WithPlanService(svc plans.Service) Option {
	return func(c *Container) {
		c.planSvc = svc
	}
}

// WithGenerationService overrides the default generation service binding.
func WithGenerationService(svc generation.Service) Option {
	return func(c *Container) {
		c.genSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	memorySectionRepo, memoryItemRepo := sections.NewMemoryRepositories()

	c := &Container{
		Config:      cfg,
		cacheTTL:    cacheTTL,
		registry:    sections.NewDefaultRegistry(),
		siteRepo:    sites.NewMemorySiteRepository(),
		pageRepo:    sites.NewMemoryPageRepository(),
		sectionRepo: memorySectionRepo,
		itemRepo:    memoryItemRepo,
		planRepo:    plans.NewMemoryPlanRepository(),
		featureRepo: plans.NewMemoryPlanFeatureRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Provider)) {
	case "", "memory":
	case "bun":
		if c.bunDB == nil {
			return nil, ErrBunStorageRequiresDB
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureProviders()
	c.configureServices()

	return c, nil
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}
	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), "gologger") {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
		}
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Features.Cache {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.siteRepo = sites.NewBunSiteRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.pageRepo = sites.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.sectionRepo = sections.NewBunSectionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.itemRepo = sections.NewBunSectionItemRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.planRepo = plans.NewBunPlanRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.featureRepo = plans.NewBunPlanFeatureRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureProviders() {
	if !c.Config.Features.Generation {
		return
	}

	gen := c.Config.Generation
	if c.textProvider == nil {
		switch strings.ToLower(strings.TrimSpace(gen.Provider)) {
		case "openai":
			c.textProvider = generation.NewOpenAIProvider(generation.OpenAIConfig{
				APIKey:  gen.APIKey,
				Model:   gen.Model,
				BaseURL: gen.BaseURL,
				Timeout: gen.Timeout,
			})
		}
	}
	if c.imageProvider == nil {
		switch strings.ToLower(strings.TrimSpace(gen.ImageProvider)) {
		case "unsplash":
			c.imageProvider = generation.NewUnsplashProvider(generation.UnsplashConfig{
				AccessKey: gen.ImageKey,
				BaseURL:   gen.ImageBaseURL,
				Timeout:   gen.Timeout,
			})
		}
	}
}

func (c *Container) configureServices() {
	if c.planSvc == nil {
		c.planSvc = plans.NewService(c.planRepo, c.featureRepo,
			plans.WithLogger(logging.PlansLogger(c.loggerProvider)),
		)
	}

	if c.sectionSvc == nil {
		c.sectionSvc = sections.NewService(c.registry, c.sectionRepo, c.itemRepo,
			sections.WithPageResolver(&pageResolverAdapter{container: c}),
			sections.WithLogger(logging.SectionsLogger(c.loggerProvider)),
		)
	}

	if c.siteSvc == nil {
		siteOpts := []sites.ServiceOption{
			sites.WithSectionPurger(&sectionPurgerAdapter{container: c}),
			sites.WithSectionSeeder(&sectionSeederAdapter{container: c}),
			sites.WithLogger(logging.SitesLogger(c.loggerProvider)),
		}
		if c.Config.Features.Limits && c.planResolver != nil {
			siteOpts = append(siteOpts, sites.WithLimitGate(&limitGateAdapter{container: c}))
		}
		c.siteSvc = sites.NewService(c.siteRepo, c.pageRepo, siteOpts...)
	}

	if c.genSvc == nil {
		genOpts := []generation.ServiceOption{
			generation.WithLogger(logging.GenerationLogger(c.loggerProvider)),
		}
		if c.textProvider != nil {
			genOpts = append(genOpts, generation.WithTextProvider(c.textProvider))
		}
		if c.imageProvider != nil {
			genOpts = append(genOpts, generation.WithImageProvider(c.imageProvider))
		}
		c.genSvc = generation.NewService(c.sectionRepo, genOpts...)
	}
}

// Registry exposes the configured section type registry.
func (c *Container) Registry() *sections.Registry {
	return c.registry
}

// LoggerProvider exposes the configured logger provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// SiteService returns the configured site service.
func (c *Container) SiteService() sites.Service {
	return c.siteSvc
}

// SectionService returns the configured section service.
func (c *Container) SectionService() sections.Service {
	return c.sectionSvc
}

// PlanService returns the configured plan service.
func (c *Container) PlanService() plans.Service {
	return c.planSvc
}

// GenerationService returns the configured generation service.
func (c *Container) GenerationService() generation.Service {
	return c.genSvc
}

// SectionRepository exposes the configured section repository.
func (c *Container) SectionRepository() sections.SectionRepository {
	return c.sectionRepo
}

// PageRepository exposes the configured page repository.
func (c *Container) PageRepository() sites.PageRepository {
	return c.pageRepo
}
