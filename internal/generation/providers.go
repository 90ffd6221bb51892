package generation

import "context"

// Context carries the per-site hints a generation call is grounded on.
type Context struct {
	Category string
	Prompt   string
}

// CompletionRequest is the prompt sent to a text provider.
type CompletionRequest struct {
	SectionType string
	Category    string
	Prompt      string
}

// CompletionResult holds the fields a provider produced. Adapters extract
// the keys they know about and ignore the rest.
type CompletionResult struct {
	Fields map[string]any
}

// Field returns the named field as a string, empty when absent or not a string.
func (r CompletionResult) Field(name string) string {
	if r.Fields == nil {
		return ""
	}
	value, ok := r.Fields[name].(string)
	if !ok {
		return ""
	}
	return value
}

// ImageResult is one image returned by an image provider.
type ImageResult struct {
	URL    string
	Alt    string
	Credit string
}

// TextProvider produces copy for a section.
type TextProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResult, error)
}

// ImageProvider finds an image matching a query.
type ImageProvider interface {
	Search(ctx context.Context, query string) (ImageResult, error)
}

type noopTextProvider struct{}

// NewNoOpTextProvider returns a provider that produces no fields. Sections
// keep their skeleton copy.
func NewNoOpTextProvider() TextProvider { return noopTextProvider{} }

func (noopTextProvider) Complete(context.Context, CompletionRequest) (CompletionResult, error) {
	return CompletionResult{}, nil
}

type noopImageProvider struct{}

// NewNoOpImageProvider returns a provider that finds nothing.
func NewNoOpImageProvider() ImageProvider { return noopImageProvider{} }

func (noopImageProvider) Search(context.Context, string) (ImageResult, error) {
	return ImageResult{}, nil
}

// StaticTextProvider always returns the configured fields. Used in tests and
// offline environments.
type StaticTextProvider struct {
	Result CompletionResult
	Err    error
	Calls  int
}

func (p *StaticTextProvider) Complete(context.Context, CompletionRequest) (CompletionResult, error) {
	p.Calls++
	if p.Err != nil {
		return CompletionResult{}, p.Err
	}
	return p.Result, nil
}

// StaticImageProvider always returns the configured image.
type StaticImageProvider struct {
	Result ImageResult
	Err    error
	Calls  int
}

func (p *StaticImageProvider) Search(context.Context, string) (ImageResult, error) {
	p.Calls++
	if p.Err != nil {
		return ImageResult{}, p.Err
	}
	return p.Result, nil
}
