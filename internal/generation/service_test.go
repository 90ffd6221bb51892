package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/sections"
)

func newGenerationFixture(t *testing.T, opts ...ServiceOption) (Service, sections.Service) {
	t.Helper()

	sectionRepo, itemRepo := sections.NewMemoryRepositories()
	sectionSvc := sections.NewService(sections.NewDefaultRegistry(), sectionRepo, itemRepo)

	base := []ServiceOption{
		WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }),
	}
	genSvc := NewService(sectionRepo, append(base, opts...)...)
	return genSvc, sectionSvc
}

func createBanner(t *testing.T, sectionSvc sections.Service) *sections.Section {
	t.Helper()

	section, err := sectionSvc.Create(context.Background(), sections.CreateInput{
		PageID: uuid.New(),
		Type:   "banner",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	return section
}

func TestGenerateTextAppliesProviderFields(t *testing.T) {
	t.Parallel()

	provider := &StaticTextProvider{Result: CompletionResult{Fields: map[string]any{
		"title":    "Fresh Bread Daily",
		"subtitle": "Baked before sunrise",
	}}}
	genSvc, sectionSvc := newGenerationFixture(t, WithTextProvider(provider))
	section := createBanner(t, sectionSvc)

	generated, err := genSvc.GenerateText(context.Background(), section.ID, Context{Category: "bakery"})
	if err != nil {
		t.Fatalf("generate text: %v", err)
	}
	if generated.Content["title"] != "Fresh Bread Daily" {
		t.Fatalf("expected provider copy, got %#v", generated.Content)
	}
	if generated.Content["subtitle"] != "Baked before sunrise" {
		t.Fatalf("expected provider subtitle, got %#v", generated.Content)
	}
	if generated.Generation != domain.GenerationGenerated {
		t.Fatalf("expected generated state, got %q", generated.Generation)
	}
	if provider.Calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.Calls)
	}
}

func TestGenerateTextIsOneShot(t *testing.T) {
	t.Parallel()

	provider := &StaticTextProvider{Result: CompletionResult{Fields: map[string]any{"title": "First"}}}
	genSvc, sectionSvc := newGenerationFixture(t, WithTextProvider(provider))
	section := createBanner(t, sectionSvc)
	ctx := context.Background()

	if _, err := genSvc.GenerateText(ctx, section.ID, Context{}); err != nil {
		t.Fatalf("generate text: %v", err)
	}

	provider.Result = CompletionResult{Fields: map[string]any{"title": "Second"}}
	again, err := genSvc.GenerateText(ctx, section.ID, Context{})
	if err != nil {
		t.Fatalf("generate text: %v", err)
	}
	if again.Content["title"] != "First" {
		t.Fatalf("generated section must not be regenerated, got %#v", again.Content)
	}
	if provider.Calls != 1 {
		t.Fatalf("expected provider untouched on second call, got %d calls", provider.Calls)
	}
}

func TestGenerateTextFailureIsRetryable(t *testing.T) {
	t.Parallel()

	provider := &StaticTextProvider{Err: errors.New("upstream timeout")}
	genSvc, sectionSvc := newGenerationFixture(t, WithTextProvider(provider))
	section := createBanner(t, sectionSvc)
	ctx := context.Background()

	_, err := genSvc.GenerateText(ctx, section.ID, Context{})
	if !errors.Is(err, ErrProviderFailed) {
		t.Fatalf("expected ErrProviderFailed, got %v", err)
	}

	stored, err := sectionSvc.Get(ctx, section.ID)
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if stored.Generation != domain.GenerationFailed {
		t.Fatalf("expected failed state, got %q", stored.Generation)
	}
	if stored.Content["title"] != "Heading" {
		t.Fatalf("failed attempt must not touch content, got %#v", stored.Content)
	}

	provider.Err = nil
	provider.Result = CompletionResult{Fields: map[string]any{"title": "Recovered"}}
	recovered, err := genSvc.GenerateText(ctx, section.ID, Context{})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if recovered.Generation != domain.GenerationGenerated {
		t.Fatalf("expected retry to succeed, got %q", recovered.Generation)
	}
	if recovered.Content["title"] != "Recovered" {
		t.Fatalf("expected retried copy, got %#v", recovered.Content)
	}
}

func TestGenerateTextKeepsSkeletonForAbsentFields(t *testing.T) {
	t.Parallel()

	provider := &StaticTextProvider{Result: CompletionResult{Fields: map[string]any{"subtitle": "Only a subtitle"}}}
	genSvc, sectionSvc := newGenerationFixture(t, WithTextProvider(provider))
	section := createBanner(t, sectionSvc)

	generated, err := genSvc.GenerateText(context.Background(), section.ID, Context{})
	if err != nil {
		t.Fatalf("generate text: %v", err)
	}
	if generated.Content["title"] != "Heading" {
		t.Fatalf("absent field must leave skeleton copy, got %#v", generated.Content)
	}
	if generated.Content["subtitle"] != "Only a subtitle" {
		t.Fatalf("expected provided subtitle, got %#v", generated.Content)
	}
}

func TestGenerateImage(t *testing.T) {
	t.Parallel()

	provider := &StaticImageProvider{Result: ImageResult{
		URL:    "https://images.example.com/bread.jpg",
		Alt:    "sourdough loaf",
		Credit: "Jo Photographer",
	}}
	genSvc, sectionSvc := newGenerationFixture(t, WithImageProvider(provider))
	section := createBanner(t, sectionSvc)
	ctx := context.Background()

	generated, err := genSvc.GenerateImage(ctx, section.ID, Context{Category: "bakery"})
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if generated.ImageGeneration != domain.GenerationGenerated {
		t.Fatalf("expected generated image state, got %q", generated.ImageGeneration)
	}
	image, ok := generated.Content["image"].(map[string]any)
	if !ok {
		t.Fatalf("expected image object in content, got %#v", generated.Content["image"])
	}
	if image["url"] != "https://images.example.com/bread.jpg" {
		t.Fatalf("unexpected image payload %#v", image)
	}

	if _, err := genSvc.GenerateImage(ctx, section.ID, Context{}); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if provider.Calls != 1 {
		t.Fatalf("expected image generation to be one-shot, got %d calls", provider.Calls)
	}
}

func TestGenerateImageFailure(t *testing.T) {
	t.Parallel()

	provider := &StaticImageProvider{Err: errors.New("quota exceeded")}
	genSvc, sectionSvc := newGenerationFixture(t, WithImageProvider(provider))
	section := createBanner(t, sectionSvc)
	ctx := context.Background()

	_, err := genSvc.GenerateImage(ctx, section.ID, Context{})
	if !errors.Is(err, ErrProviderFailed) {
		t.Fatalf("expected ErrProviderFailed, got %v", err)
	}

	stored, err := sectionSvc.Get(ctx, section.ID)
	if err != nil {
		t.Fatalf("get section: %v", err)
	}
	if stored.ImageGeneration != domain.GenerationFailed {
		t.Fatalf("expected failed image state, got %q", stored.ImageGeneration)
	}
	if stored.Generation != domain.GenerationPending {
		t.Fatalf("image failure must not touch text state, got %q", stored.Generation)
	}
	if _, ok := stored.Content["image"]; ok {
		t.Fatalf("failed image generation must not write content")
	}
}

func TestGenerateRequiresSectionID(t *testing.T) {
	t.Parallel()

	genSvc, _ := newGenerationFixture(t)
	if _, err := genSvc.GenerateText(context.Background(), uuid.Nil, Context{}); !errors.Is(err, ErrSectionIDRequired) {
		t.Fatalf("expected ErrSectionIDRequired, got %v", err)
	}
	if _, err := genSvc.GenerateImage(context.Background(), uuid.Nil, Context{}); !errors.Is(err, ErrSectionIDRequired) {
		t.Fatalf("expected ErrSectionIDRequired, got %v", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt("banner", Context{Category: "bakery", Prompt: "warm neighborhood tone"})
	if prompt == "" {
		t.Fatalf("expected a prompt")
	}
	for _, fragment := range []string{"bakery", "warm neighborhood tone"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected prompt to include %q, got %q", fragment, prompt)
		}
	}

	fallback := BuildPrompt("unknown-type", Context{Category: "bakery"})
	if fallback == "" {
		t.Fatalf("expected fallback prompt for unknown type")
	}
}
