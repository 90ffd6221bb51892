package sections

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/internal/domain"
)

// Section is one content block of a page, typed by a registry key. Content,
// settings, and form carry the type-specific JSON payloads.
type Section struct {
	bun.BaseModel `bun:"table:sections,alias:s"`

	ID              uuid.UUID              `bun:",pk,type:uuid" json:"id"`
	PageID          uuid.UUID              `bun:"page_id,notnull,type:uuid" json:"page_id"`
	Type            string                 `bun:"type,notnull" json:"type"`
	Content         map[string]any         `bun:"content,type:jsonb,notnull,default:'{}'" json:"content"`
	Settings        map[string]any         `bun:"settings,type:jsonb" json:"settings,omitempty"`
	Form            map[string]any         `bun:"form,type:jsonb" json:"form,omitempty"`
	Position        int                    `bun:"position,notnull,default:0" json:"position"`
	Published       bool                   `bun:"published,notnull,default:true" json:"published"`
	Generation      domain.GenerationState `bun:"generation_state,notnull,default:'pending'" json:"generation_state"`
	ImageGeneration domain.GenerationState `bun:"image_generation_state,notnull,default:'pending'" json:"image_generation_state"`
	DeletedAt       *time.Time             `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt       time.Time              `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time              `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Items []*SectionItem `bun:"rel:has-many,join:id=section_id" json:"items,omitempty"`
}

// SectionItem is a repeatable sub-element within a section: one slide, one
// logo, one pricing tier.
type SectionItem struct {
	bun.BaseModel `bun:"table:section_items,alias:si"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	SectionID uuid.UUID      `bun:"section_id,notnull,type:uuid" json:"section_id"`
	Content   map[string]any `bun:"content,type:jsonb,notnull,default:'{}'" json:"content"`
	Settings  map[string]any `bun:"settings,type:jsonb" json:"settings,omitempty"`
	Position  int            `bun:"position,notnull,default:0" json:"position"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func cloneSection(s *Section) *Section {
	if s == nil {
		return nil
	}
	out := *s
	out.Content = cloneMap(s.Content)
	out.Settings = cloneMap(s.Settings)
	out.Form = cloneMap(s.Form)
	if s.DeletedAt != nil {
		deleted := *s.DeletedAt
		out.DeletedAt = &deleted
	}
	if len(s.Items) > 0 {
		out.Items = make([]*SectionItem, len(s.Items))
		for i, item := range s.Items {
			out.Items[i] = cloneItem(item)
		}
	}
	return &out
}

func cloneItem(item *SectionItem) *SectionItem {
	if item == nil {
		return nil
	}
	out := *item
	out.Content = cloneMap(item.Content)
	out.Settings = cloneMap(item.Settings)
	return &out
}
