package sites

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Service exposes site and page composition capabilities.
type Service interface {
	CreateSite(ctx context.Context, input CreateSiteInput) (*Site, error)
	GetSite(ctx context.Context, id uuid.UUID) (*Site, error)
	GetSiteByAddress(ctx context.Context, address string) (*Site, error)
	ListSites(ctx context.Context, ownerID uuid.UUID) ([]*Site, error)
	UpdateSite(ctx context.Context, input UpdateSiteInput) (*Site, error)
	PublishSite(ctx context.Context, id uuid.UUID, published bool) (*Site, error)
	DeleteSite(ctx context.Context, id uuid.UUID) error

	CreatePage(ctx context.Context, input CreatePageInput) (*Page, error)
	GetPage(ctx context.Context, id uuid.UUID) (*Page, error)
	ListPages(ctx context.Context, siteID uuid.UUID) ([]*Page, error)
	UpdatePage(ctx context.Context, input UpdatePageInput) (*Page, error)
	SetDefaultPage(ctx context.Context, pageID uuid.UUID) (*Page, error)
	SortPages(ctx context.Context, siteID uuid.UUID, pairs []SortPair) error
	DeletePage(ctx context.Context, id uuid.UUID) error

	GenerateSite(ctx context.Context, input GenerateSiteInput) (*Site, error)

	// PageExists satisfies the sections module's page resolver.
	PageExists(ctx context.Context, pageID uuid.UUID) (bool, error)
}

// CreateSiteInput captures site creation attributes.
type CreateSiteInput struct {
	OwnerID  uuid.UUID
	Address  string
	Name     string
	Settings map[string]any
	Header   map[string]any
	Footer   map[string]any
	SEO      map[string]any
}

// UpdateSiteInput carries an autosave payload for a site. Nil maps leave the
// stored value untouched.
type UpdateSiteInput struct {
	SiteID   uuid.UUID
	Name     *string
	Settings map[string]any
	Header   map[string]any
	Footer   map[string]any
	SEO      map[string]any
}

// CreatePageInput captures page creation attributes.
type CreatePageInput struct {
	SiteID uuid.UUID
	Name   string
	Slug   string
	SEO    map[string]any
}

// UpdatePageInput carries mutable page fields.
type UpdatePageInput struct {
	PageID    uuid.UUID
	Name      *string
	Published *bool
	SEO       map[string]any
}

// GenerateSiteInput drives the landing page generator: a new site with one
// default page seeded with the requested section types.
type GenerateSiteInput struct {
	OwnerID  uuid.UUID
	Address  string
	Name     string
	Category string
	Sections []string
}

// SectionSeeder materializes a default section of the given type on a page.
// The sections module satisfies it.
type SectionSeeder interface {
	Seed(ctx context.Context, pageID uuid.UUID, typeKey string) error
}

// LimitError reports a plan feature limit rejection. Callers surface it as an
// upgrade prompt rather than a hard failure.
type LimitError struct {
	Code  string
	Limit int
	Used  int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("plan limit reached for %s: %d of %d used", e.Code, e.Used, e.Limit)
}

var (
	ErrOwnerRequired    = errors.New("sites: owner id required")
	ErrSiteIDRequired   = errors.New("sites: site id required")
	ErrPageIDRequired   = errors.New("sites: page id required")
	ErrNameRequired     = errors.New("sites: name required")
	ErrAddressRequired  = errors.New("sites: address required")
	ErrAddressInvalid   = errors.New("sites: address is not a valid slug")
	ErrAddressTaken     = errors.New("sites: address already in use")
	ErrEmptySortBatch   = errors.New("sites: sort batch is empty")
	ErrPositionInvalid  = errors.New("sites: position cannot be negative")
	ErrPageOutsideScope = errors.New("sites: page does not belong to site")
)

const (
	featureSites = "consume.sites"
	featurePages = "consume.pages"
)

type IDGenerator func() uuid.UUID

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLimitGate wires plan feature limit checks on create operations.
func WithLimitGate(gate LimitGate) ServiceOption {
	return func(s *service) {
		if gate != nil {
			s.limits = gate
		}
	}
}

// WithSectionPurger wires the cascade that removes sections on page deletion.
func WithSectionPurger(purger SectionPurger) ServiceOption {
	return func(s *service) {
		if purger != nil {
			s.purger = purger
		}
	}
}

// WithSectionSeeder wires the landing page generator's section factory.
func WithSectionSeeder(seeder SectionSeeder) ServiceOption {
	return func(s *service) {
		if seeder != nil {
			s.seeder = seeder
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	sites  SiteRepository
	pages  PageRepository
	limits LimitGate
	purger SectionPurger
	seeder SectionSeeder
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

func NewService(siteRepo SiteRepository, pageRepo PageRepository, opts ...ServiceOption) Service {
	s := &service{
		sites:  siteRepo,
		pages:  pageRepo,
		limits: openGate{},
		purger: noopPurger{},
		seeder: noopSeeder{},
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type openGate struct{}

func (openGate) Allow(context.Context, uuid.UUID, string, int) error { return nil }

type noopPurger struct{}

func (noopPurger) PurgePage(context.Context, uuid.UUID) error { return nil }

type noopSeeder struct{}

func (noopSeeder) Seed(context.Context, uuid.UUID, string) error { return nil }

func (s *service) CreateSite(ctx context.Context, input CreateSiteInput) (*Site, error) {
	if input.OwnerID == uuid.Nil {
		return nil, ErrOwnerRequired
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	address, err := normalizeAddress(input.Address)
	if err != nil {
		return nil, err
	}

	existing, err := s.sites.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.limits.Allow(ctx, input.OwnerID, featureSites, len(existing)); err != nil {
		return nil, err
	}

	if _, err := s.sites.GetByAddress(ctx, address); err == nil {
		return nil, ErrAddressTaken
	} else if !isNotFound(err) {
		return nil, err
	}

	now := s.now()
	site := &Site{
		ID:        s.id(),
		OwnerID:   input.OwnerID,
		Address:   address,
		Name:      strings.TrimSpace(input.Name),
		Settings:  cloneMap(input.Settings),
		Header:    cloneMap(input.Header),
		Footer:    cloneMap(input.Footer),
		SEO:       cloneMap(input.SEO),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.sites.Create(ctx, site)
	if err != nil {
		return nil, err
	}
	s.logger.Info("site created", "site_id", created.ID.String(), "address", created.Address)
	return created, nil
}

func (s *service) GetSite(ctx context.Context, id uuid.UUID) (*Site, error) {
	if id == uuid.Nil {
		return nil, ErrSiteIDRequired
	}
	return s.sites.GetByID(ctx, id)
}

func (s *service) GetSiteByAddress(ctx context.Context, address string) (*Site, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrAddressRequired
	}
	return s.sites.GetByAddress(ctx, address)
}

func (s *service) ListSites(ctx context.Context, ownerID uuid.UUID) ([]*Site, error) {
	if ownerID == uuid.Nil {
		return nil, ErrOwnerRequired
	}
	return s.sites.ListByOwner(ctx, ownerID)
}

func (s *service) UpdateSite(ctx context.Context, input UpdateSiteInput) (*Site, error) {
	if input.SiteID == uuid.Nil {
		return nil, ErrSiteIDRequired
	}

	site, err := s.sites.GetByID(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameRequired
		}
		site.Name = strings.TrimSpace(*input.Name)
	}
	if input.Settings != nil {
		site.Settings = cloneMap(input.Settings)
	}
	if input.Header != nil {
		site.Header = cloneMap(input.Header)
	}
	if input.Footer != nil {
		site.Footer = cloneMap(input.Footer)
	}
	if input.SEO != nil {
		site.SEO = cloneMap(input.SEO)
	}
	site.UpdatedAt = s.now()

	return s.sites.Update(ctx, site)
}

func (s *service) PublishSite(ctx context.Context, id uuid.UUID, published bool) (*Site, error) {
	if id == uuid.Nil {
		return nil, ErrSiteIDRequired
	}
	site, err := s.sites.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	site.Published = published
	site.UpdatedAt = s.now()
	return s.sites.Update(ctx, site)
}

func (s *service) DeleteSite(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrSiteIDRequired
	}
	if _, err := s.sites.GetByID(ctx, id); err != nil {
		return err
	}

	pages, err := s.pages.ListBySite(ctx, id)
	if err != nil {
		return err
	}
	for _, page := range pages {
		if err := s.purger.PurgePage(ctx, page.ID); err != nil {
			return err
		}
	}
	if err := s.pages.DeleteBySite(ctx, id); err != nil {
		return err
	}
	if err := s.sites.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("site deleted", "site_id", id.String())
	return nil
}

func (s *service) CreatePage(ctx context.Context, input CreatePageInput) (*Page, error) {
	if input.SiteID == uuid.Nil {
		return nil, ErrSiteIDRequired
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	site, err := s.sites.GetByID(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.pages.ListBySite(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	if err := s.limits.Allow(ctx, site.OwnerID, featurePages, len(siblings)); err != nil {
		return nil, err
	}

	pageSlug, err := s.uniquePageSlug(input.Slug, input.Name, siblings)
	if err != nil {
		return nil, err
	}

	now := s.now()
	page := &Page{
		ID:        s.id(),
		SiteID:    site.ID,
		Name:      strings.TrimSpace(input.Name),
		Slug:      pageSlug,
		Default:   len(siblings) == 0,
		Published: true,
		Position:  nextPagePosition(siblings),
		SEO:       cloneMap(input.SEO),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.pages.Create(ctx, page)
}

func (s *service) GetPage(ctx context.Context, id uuid.UUID) (*Page, error) {
	if id == uuid.Nil {
		return nil, ErrPageIDRequired
	}
	return s.pages.GetByID(ctx, id)
}

func (s *service) ListPages(ctx context.Context, siteID uuid.UUID) ([]*Page, error) {
	if siteID == uuid.Nil {
		return nil, ErrSiteIDRequired
	}
	return s.pages.ListBySite(ctx, siteID)
}

func (s *service) UpdatePage(ctx context.Context, input UpdatePageInput) (*Page, error) {
	if input.PageID == uuid.Nil {
		return nil, ErrPageIDRequired
	}

	page, err := s.pages.GetByID(ctx, input.PageID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameRequired
		}
		page.Name = strings.TrimSpace(*input.Name)
	}
	if input.Published != nil {
		page.Published = *input.Published
	}
	if input.SEO != nil {
		page.SEO = cloneMap(input.SEO)
	}
	page.UpdatedAt = s.now()

	return s.pages.Update(ctx, page)
}

func (s *service) SetDefaultPage(ctx context.Context, pageID uuid.UUID) (*Page, error) {
	if pageID == uuid.Nil {
		return nil, ErrPageIDRequired
	}

	page, err := s.pages.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page.Default {
		return page, nil
	}

	siblings, err := s.pages.ListBySite(ctx, page.SiteID)
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if sibling.Default && sibling.ID != page.ID {
			sibling.Default = false
			sibling.UpdatedAt = s.now()
			if _, err := s.pages.Update(ctx, sibling); err != nil {
				return nil, err
			}
		}
	}

	page.Default = true
	page.UpdatedAt = s.now()
	return s.pages.Update(ctx, page)
}

func (s *service) SortPages(ctx context.Context, siteID uuid.UUID, pairs []SortPair) error {
	if siteID == uuid.Nil {
		return ErrSiteIDRequired
	}
	if len(pairs) == 0 {
		return ErrEmptySortBatch
	}

	siblings, err := s.pages.ListBySite(ctx, siteID)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(siblings))
	for _, page := range siblings {
		known[page.ID] = true
	}

	for _, pair := range pairs {
		if pair.ID == uuid.Nil {
			return ErrPageIDRequired
		}
		if pair.Position < 0 {
			return ErrPositionInvalid
		}
		if !known[pair.ID] {
			return ErrPageOutsideScope
		}
	}

	return s.pages.UpdatePositions(ctx, pairs)
}

func (s *service) DeletePage(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrPageIDRequired
	}
	if _, err := s.pages.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.purger.PurgePage(ctx, id); err != nil {
		return err
	}
	return s.pages.Delete(ctx, id)
}

func (s *service) GenerateSite(ctx context.Context, input GenerateSiteInput) (*Site, error) {
	site, err := s.CreateSite(ctx, CreateSiteInput{
		OwnerID: input.OwnerID,
		Address: input.Address,
		Name:    input.Name,
		Settings: map[string]any{
			"category": strings.TrimSpace(input.Category),
		},
	})
	if err != nil {
		return nil, err
	}

	page, err := s.CreatePage(ctx, CreatePageInput{
		SiteID: site.ID,
		Name:   "Home",
		Slug:   "home",
	})
	if err != nil {
		return nil, err
	}

	for _, typeKey := range input.Sections {
		if err := s.seeder.Seed(ctx, page.ID, typeKey); err != nil {
			return nil, err
		}
	}

	return s.sites.GetByID(ctx, site.ID)
}

func (s *service) PageExists(ctx context.Context, pageID uuid.UUID) (bool, error) {
	if pageID == uuid.Nil {
		return false, nil
	}
	if _, err := s.pages.GetByID(ctx, pageID); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// uniquePageSlug normalizes the requested slug (falling back to the page
// name) and suffixes -2, -3, ... until it is unique within the site.
func (s *service) uniquePageSlug(requested, name string, siblings []*Page) (string, error) {
	source := strings.TrimSpace(requested)
	if source == "" {
		source = name
	}
	base, err := slug.Normalize(source)
	if err != nil || base == "" {
		return "", ErrAddressInvalid
	}

	taken := make(map[string]bool, len(siblings))
	for _, sibling := range siblings {
		taken[sibling.Slug] = true
	}

	candidate := base
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return candidate, nil
}

func normalizeAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return "", ErrAddressRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", ErrAddressInvalid
	}
	return normalized, nil
}

func nextPagePosition(siblings []*Page) int {
	next := 0
	for _, sibling := range siblings {
		if sibling.Position >= next {
			next = sibling.Position + 1
		}
	}
	return next
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
