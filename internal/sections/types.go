package sections

import (
	"maps"

	"github.com/google/uuid"
)

// ItemSkeleton declares the default payload for one repeatable sub-element
// created alongside a new section (a slide, a logo, a pricing tier).
type ItemSkeleton struct {
	Content  map[string]any `json:"content,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

// Skeleton is the default content/settings/form/items payload used to
// initialize a new section of a given type.
type Skeleton struct {
	Content  map[string]any `json:"content,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
	Form     map[string]any `json:"form,omitempty"`
	Items    []ItemSkeleton `json:"items,omitempty"`
}

// Type describes a section kind known to the builder: display metadata, the
// UI components that edit and render it, an optional JSON schema for its
// content payload, and the skeleton new sections start from.
type Type struct {
	ID            uuid.UUID      `json:"id"`
	Key           string         `json:"key"`
	Name          string         `json:"name"`
	Icon          string         `json:"icon,omitempty"`
	EditComponent string         `json:"edit_component,omitempty"`
	ViewComponent string         `json:"view_component,omitempty"`
	Schema        map[string]any `json:"schema,omitempty"`
	Skeleton      Skeleton       `json:"skeleton"`
}

func cloneSkeleton(s Skeleton) Skeleton {
	out := Skeleton{
		Content:  cloneMap(s.Content),
		Settings: cloneMap(s.Settings),
		Form:     cloneMap(s.Form),
	}
	if len(s.Items) > 0 {
		out.Items = make([]ItemSkeleton, len(s.Items))
		for i, item := range s.Items {
			out.Items[i] = ItemSkeleton{
				Content:  cloneMap(item.Content),
				Settings: cloneMap(item.Settings),
			}
		}
	}
	return out
}

func cloneType(t Type) Type {
	out := t
	out.Schema = cloneMap(t.Schema)
	out.Skeleton = cloneSkeleton(t.Skeleton)
	return out
}

// cloneMap deep-copies nested maps and slices so registry skeletons and
// persisted payloads never share storage.
func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = cloneMap(typed)
		case []any:
			out[key] = cloneSlice(typed)
		default:
			out[key] = value
		}
	}
	return out
}

func cloneSlice(input []any) []any {
	if input == nil {
		return nil
	}
	out := make([]any, len(input))
	for i, value := range input {
		switch typed := value.(type) {
		case map[string]any:
			out[i] = cloneMap(typed)
		case []any:
			out[i] = cloneSlice(typed)
		default:
			out[i] = value
		}
	}
	return out
}

func mergeMaps(base, override map[string]any) map[string]any {
	if len(override) == 0 {
		return cloneMap(base)
	}
	if len(base) == 0 {
		return cloneMap(override)
	}
	out := cloneMap(base)
	maps.Copy(out, cloneMap(override))
	return out
}
