package generation

import (
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/sections"
)

// Adapter writes a provider result into a section's content. Implementations
// only touch keys the provider actually produced; absent fields leave the
// existing copy alone.
type Adapter interface {
	Type() string
	Apply(section *sections.Section, out CompletionResult)
}

// AdapterSet resolves adapters by section type, falling back to the headline
// adapter for unregistered types.
type AdapterSet struct {
	adapters map[string]Adapter
	fallback Adapter
}

// NewAdapterSet builds the default adapter wiring.
func NewAdapterSet() *AdapterSet {
	set := &AdapterSet{
		adapters: map[string]Adapter{},
		fallback: headlineAdapter{typeKey: ""},
	}
	for _, typeKey := range []string{"banner", "text", "cards", "pricing", "faq", "review", "logos", "list", "gallery"} {
		set.Register(headlineAdapter{typeKey: typeKey})
	}
	set.Register(buttonAdapter{})
	return set
}

// Register adds or replaces the adapter for its type.
func (s *AdapterSet) Register(adapter Adapter) {
	s.adapters[strings.ToLower(adapter.Type())] = adapter
}

// For returns the adapter for a section type.
func (s *AdapterSet) For(typeKey string) Adapter {
	if adapter, ok := s.adapters[strings.ToLower(strings.TrimSpace(typeKey))]; ok {
		return adapter
	}
	return s.fallback
}

// headlineAdapter writes title and subtitle copy.
type headlineAdapter struct {
	typeKey string
}

func (a headlineAdapter) Type() string { return a.typeKey }

func (a headlineAdapter) Apply(section *sections.Section, out CompletionResult) {
	if section.Content == nil {
		section.Content = map[string]any{}
	}
	setField(section.Content, "title", out.Field("title"))
	setField(section.Content, "subtitle", out.Field("subtitle"))
}

// buttonAdapter also carries call-to-action copy when the provider offers it.
type buttonAdapter struct{}

func (buttonAdapter) Type() string { return "button" }

func (buttonAdapter) Apply(section *sections.Section, out CompletionResult) {
	if section.Content == nil {
		section.Content = map[string]any{}
	}
	setField(section.Content, "title", out.Field("title"))
	setField(section.Content, "label", out.Field("label"))
}

// ApplyImage writes an image result under the section's image key.
func ApplyImage(section *sections.Section, image ImageResult) {
	if image.URL == "" {
		return
	}
	if section.Content == nil {
		section.Content = map[string]any{}
	}
	section.Content["image"] = map[string]any{
		"url":    image.URL,
		"alt":    image.Alt,
		"credit": image.Credit,
	}
}

func setField(content map[string]any, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	content[key] = value
}
