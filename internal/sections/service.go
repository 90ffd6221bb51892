package sections

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/validation"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Service exposes section composition capabilities: materializing sections
// from registry skeletons, editing, reordering, duplication, and item
// management.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Section, error)
	Get(ctx context.Context, id uuid.UUID) (*Section, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error)
	Update(ctx context.Context, input UpdateInput) (*Section, error)
	Duplicate(ctx context.Context, sectionID uuid.UUID) (*Section, error)
	Sort(ctx context.Context, pairs []SortPair) error
	Delete(ctx context.Context, sectionID uuid.UUID) error

	AddItem(ctx context.Context, input AddItemInput) (*SectionItem, error)
	UpdateItem(ctx context.Context, input UpdateItemInput) (*SectionItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	SortItems(ctx context.Context, pairs []SortPair) error

	Registry() *Registry
}

// CreateInput materializes a new section from a type's skeleton.
type CreateInput struct {
	PageID   uuid.UUID
	Type     string
	Position *int
	Content  map[string]any
	Settings map[string]any
	Form     map[string]any
}

// UpdateInput carries an autosave payload. Nil maps leave the stored value
// untouched; non-nil maps overwrite the whole object (last write wins).
type UpdateInput struct {
	SectionID uuid.UUID
	Content   map[string]any
	Settings  map[string]any
	Form      map[string]any
	Published *bool
}

// AddItemInput appends a repeatable sub-element to a section.
type AddItemInput struct {
	SectionID uuid.UUID
	Content   map[string]any
	Settings  map[string]any
	Position  *int
}

// UpdateItemInput overwrites an item's payload, autosave style.
type UpdateItemInput struct {
	ItemID   uuid.UUID
	Content  map[string]any
	Settings map[string]any
}

var (
	ErrTypeUnknown       = errors.New("sections: unknown section type")
	ErrPageRequired      = errors.New("sections: page id required")
	ErrSectionIDRequired = errors.New("sections: section id required")
	ErrItemIDRequired    = errors.New("sections: item id required")
	ErrPositionInvalid   = errors.New("sections: position cannot be negative")
	ErrEmptySortBatch    = errors.New("sections: sort batch is empty")
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

// WithPageResolver wires the page existence check used on create.
func WithPageResolver(resolver PageResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.pages = resolver
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
	registry *Registry
	sections SectionRepository
	items    SectionItemRepository
	pages    PageResolver
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
}

func NewService(registry *Registry, sectionRepo SectionRepository, itemRepo SectionItemRepository, opts ...ServiceOption) Service {
	s := &service{
		registry: registry,
		sections: sectionRepo,
		items:    itemRepo,
		pages:    allowAllPages{},
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// allowAllPages is the default resolver for hosts that manage pages outside
// this module.
type allowAllPages struct{}

func (allowAllPages) PageExists(context.Context, uuid.UUID) (bool, error) { return true, nil }

func (s *service) Registry() *Registry {
	return s.registry
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Section, error) {
	if input.PageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	sectionType, ok := s.registry.Get(input.Type)
	if !ok {
		return nil, ErrTypeUnknown
	}
	if input.Position != nil && *input.Position < 0 {
		return nil, ErrPositionInvalid
	}

	exists, err := s.pages.PageExists(ctx, input.PageID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotFoundError{Resource: "page", Key: input.PageID.String()}
	}

	content := mergeMaps(sectionType.Skeleton.Content, input.Content)
	if err := validation.ValidatePayload(sectionType.Schema, content); err != nil {
		return nil, err
	}

	position := 0
	if input.Position != nil {
		position = *input.Position
	} else {
		existing, err := s.sections.ListByPage(ctx, input.PageID)
		if err != nil {
			return nil, err
		}
		position = nextPosition(existing)
	}

	now := s.now()
	section := &Section{
		ID:              s.id(),
		PageID:          input.PageID,
		Type:            sectionType.Key,
		Content:         content,
		Settings:        mergeMaps(sectionType.Skeleton.Settings, input.Settings),
		Form:            mergeMaps(sectionType.Skeleton.Form, input.Form),
		Position:        position,
		Published:       true,
		Generation:      domain.GenerationPending,
		ImageGeneration: domain.GenerationPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]*SectionItem, 0, len(sectionType.Skeleton.Items))
	for i, skeleton := range sectionType.Skeleton.Items {
		items = append(items, &SectionItem{
			ID:        s.id(),
			SectionID: section.ID,
			Content:   cloneMap(skeleton.Content),
			Settings:  cloneMap(skeleton.Settings),
			Position:  i,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	created, err := s.sections.Create(ctx, section, items)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("section created", "section_id", created.ID.String(), "type", created.Type)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Section, error) {
	if id == uuid.Nil {
		return nil, ErrSectionIDRequired
	}
	return s.sections.GetByID(ctx, id)
}

func (s *service) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error) {
	if pageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	return s.sections.ListByPage(ctx, pageID)
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*Section, error) {
	if input.SectionID == uuid.Nil {
		return nil, ErrSectionIDRequired
	}

	section, err := s.sections.GetByID(ctx, input.SectionID)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		sectionType, ok := s.registry.Get(section.Type)
		if !ok {
			return nil, ErrTypeUnknown
		}
		if err := validation.ValidatePayload(sectionType.Schema, input.Content); err != nil {
			return nil, err
		}
		section.Content = cloneMap(input.Content)
	}
	if input.Settings != nil {
		section.Settings = cloneMap(input.Settings)
	}
	if input.Form != nil {
		section.Form = cloneMap(input.Form)
	}
	if input.Published != nil {
		section.Published = *input.Published
	}
	section.UpdatedAt = s.now()

	return s.sections.Update(ctx, section)
}

func (s *service) Duplicate(ctx context.Context, sectionID uuid.UUID) (*Section, error) {
	if sectionID == uuid.Nil {
		return nil, ErrSectionIDRequired
	}

	source, err := s.sections.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.sections.ListByPage(ctx, source.PageID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	clone := cloneSection(source)
	clone.ID = s.id()
	clone.Position = nextPosition(siblings)
	clone.CreatedAt = now
	clone.UpdatedAt = now

	items := make([]*SectionItem, 0, len(source.Items))
	for _, item := range source.Items {
		itemClone := cloneItem(item)
		itemClone.ID = s.id()
		itemClone.SectionID = clone.ID
		itemClone.CreatedAt = now
		itemClone.UpdatedAt = now
		items = append(items, itemClone)
	}
	clone.Items = nil

	return s.sections.Create(ctx, clone, items)
}

func (s *service) Sort(ctx context.Context, pairs []SortPair) error {
	if err := validateSortPairs(pairs); err != nil {
		return err
	}
	return s.sections.UpdatePositions(ctx, pairs)
}

func (s *service) Delete(ctx context.Context, sectionID uuid.UUID) error {
	if sectionID == uuid.Nil {
		return ErrSectionIDRequired
	}
	if err := s.sections.Delete(ctx, sectionID); err != nil {
		return err
	}
	s.logger.Debug("section deleted", "section_id", sectionID.String())
	return nil
}

func (s *service) AddItem(ctx context.Context, input AddItemInput) (*SectionItem, error) {
	if input.SectionID == uuid.Nil {
		return nil, ErrSectionIDRequired
	}
	if input.Position != nil && *input.Position < 0 {
		return nil, ErrPositionInvalid
	}

	section, err := s.sections.GetByID(ctx, input.SectionID)
	if err != nil {
		return nil, err
	}

	position := 0
	if input.Position != nil {
		position = *input.Position
	} else {
		position = nextItemPosition(section.Items)
	}

	now := s.now()
	item := &SectionItem{
		ID:        s.id(),
		SectionID: section.ID,
		Content:   cloneMap(input.Content),
		Settings:  cloneMap(input.Settings),
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if item.Content == nil {
		item.Content = map[string]any{}
	}

	return s.items.Create(ctx, item)
}

func (s *service) UpdateItem(ctx context.Context, input UpdateItemInput) (*SectionItem, error) {
	if input.ItemID == uuid.Nil {
		return nil, ErrItemIDRequired
	}

	item, err := s.items.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		item.Content = cloneMap(input.Content)
	}
	if input.Settings != nil {
		item.Settings = cloneMap(input.Settings)
	}
	item.UpdatedAt = s.now()

	return s.items.Update(ctx, item)
}

func (s *service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return ErrItemIDRequired
	}
	return s.items.Delete(ctx, itemID)
}

func (s *service) SortItems(ctx context.Context, pairs []SortPair) error {
	if err := validateSortPairs(pairs); err != nil {
		return err
	}
	return s.items.UpdatePositions(ctx, pairs)
}

func validateSortPairs(pairs []SortPair) error {
	if len(pairs) == 0 {
		return ErrEmptySortBatch
	}
	for _, pair := range pairs {
		if pair.ID == uuid.Nil {
			return ErrSectionIDRequired
		}
		if pair.Position < 0 {
			return ErrPositionInvalid
		}
	}
	return nil
}

func nextPosition(siblings []*Section) int {
	next := 0
	for _, sibling := range siblings {
		if sibling.Position >= next {
			next = sibling.Position + 1
		}
	}
	return next
}

func nextItemPosition(items []*SectionItem) int {
	next := 0
	for _, item := range items {
		if item.Position >= next {
			next = item.Position + 1
		}
	}
	return next
}
