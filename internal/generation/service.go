package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Service drives one-shot content generation for sections. A section that
// reached the generated state is never regenerated; a failed attempt may be
// retried.
type Service interface {
	GenerateText(ctx context.Context, sectionID uuid.UUID, genCtx Context) (*sections.Section, error)
	GenerateImage(ctx context.Context, sectionID uuid.UUID, genCtx Context) (*sections.Section, error)
}

// SectionStore is the slice of the section repository generation needs.
type SectionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*sections.Section, error)
	Update(ctx context.Context, section *sections.Section) (*sections.Section, error)
}

var (
	ErrSectionIDRequired = errors.New("generation: section id required")
	ErrProviderFailed    = errors.New("generation: provider call failed")
)

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithTextProvider(provider TextProvider) ServiceOption {
	return func(s *service) {
		if provider != nil {
			s.text = provider
		}
	}
}

func WithImageProvider(provider ImageProvider) ServiceOption {
	return func(s *service) {
		if provider != nil {
			s.images = provider
		}
	}
}

func WithAdapters(set *AdapterSet) ServiceOption {
	return func(s *service) {
		if set != nil {
			s.adapters = set
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
	store    SectionStore
	text     TextProvider
	images   ImageProvider
	adapters *AdapterSet
	now      func() time.Time
	logger   interfaces.Logger
}

func NewService(store SectionStore, opts ...ServiceOption) Service {
	s := &service{
		store:    store,
		text:     NewNoOpTextProvider(),
		images:   NewNoOpImageProvider(),
		adapters: NewAdapterSet(),
		now:      time.Now,
		logger:   logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) GenerateText(ctx context.Context, sectionID uuid.UUID, genCtx Context) (*sections.Section, error) {
	if sectionID == uuid.Nil {
		return nil, ErrSectionIDRequired
	}

	section, err := s.store.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section.Generation == domain.GenerationGenerated {
		s.logger.Debug("text generation skipped, already generated", "section_id", sectionID.String())
		return section, nil
	}

	result, err := s.text.Complete(ctx, CompletionRequest{
		SectionType: section.Type,
		Category:    genCtx.Category,
		Prompt:      BuildPrompt(section.Type, genCtx),
	})
	if err != nil {
		return nil, s.recordFailure(ctx, section, "text", err)
	}

	s.adapters.For(section.Type).Apply(section, result)
	section.Generation = domain.GenerationGenerated
	section.UpdatedAt = s.now()

	updated, err := s.store.Update(ctx, section)
	if err != nil {
		return nil, err
	}
	s.logger.Info("text generated", "section_id", sectionID.String(), "type", section.Type)
	return updated, nil
}

func (s *service) GenerateImage(ctx context.Context, sectionID uuid.UUID, genCtx Context) (*sections.Section, error) {
	if sectionID == uuid.Nil {
		return nil, ErrSectionIDRequired
	}

	section, err := s.store.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section.ImageGeneration == domain.GenerationGenerated {
		s.logger.Debug("image generation skipped, already generated", "section_id", sectionID.String())
		return section, nil
	}

	image, err := s.images.Search(ctx, imageQuery(section, genCtx))
	if err != nil {
		return nil, s.recordImageFailure(ctx, section, err)
	}

	ApplyImage(section, image)
	section.ImageGeneration = domain.GenerationGenerated
	section.UpdatedAt = s.now()

	updated, err := s.store.Update(ctx, section)
	if err != nil {
		return nil, err
	}
	s.logger.Info("image generated", "section_id", sectionID.String(), "type", section.Type)
	return updated, nil
}

// recordFailure marks the section failed without touching content. The state
// stays retryable.
func (s *service) recordFailure(ctx context.Context, section *sections.Section, kind string, cause error) error {
	section.Generation = domain.GenerationFailed
	section.UpdatedAt = s.now()
	if _, err := s.store.Update(ctx, section); err != nil {
		s.logger.Error("failed to record generation failure", "section_id", section.ID.String(), "error", err.Error())
	}
	s.logger.Warn("generation failed", "section_id", section.ID.String(), "kind", kind, "error", cause.Error())
	return fmt.Errorf("%w: %v", ErrProviderFailed, cause)
}

func (s *service) recordImageFailure(ctx context.Context, section *sections.Section, cause error) error {
	section.ImageGeneration = domain.GenerationFailed
	section.UpdatedAt = s.now()
	if _, err := s.store.Update(ctx, section); err != nil {
		s.logger.Error("failed to record generation failure", "section_id", section.ID.String(), "error", err.Error())
	}
	s.logger.Warn("image generation failed", "section_id", section.ID.String(), "error", cause.Error())
	return fmt.Errorf("%w: %v", ErrProviderFailed, cause)
}

func imageQuery(section *sections.Section, genCtx Context) string {
	if title, ok := section.Content["title"].(string); ok && strings.TrimSpace(title) != "" {
		return title
	}
	if strings.TrimSpace(genCtx.Category) != "" {
		return genCtx.Category
	}
	return "business"
}
