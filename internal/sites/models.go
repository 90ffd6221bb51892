package sites

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Site is a tenant-owned container for pages. Settings, header, footer, and
// seo carry free-form JSON payloads consumed by the renderer.
type Site struct {
	bun.BaseModel `bun:"table:sites,alias:st"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	OwnerID   uuid.UUID      `bun:"owner_id,notnull,type:uuid" json:"owner_id"`
	Address   string         `bun:"address,notnull,unique" json:"address"`
	Name      string         `bun:"name,notnull" json:"name"`
	Settings  map[string]any `bun:"settings,type:jsonb" json:"settings,omitempty"`
	Header    map[string]any `bun:"header,type:jsonb" json:"header,omitempty"`
	Footer    map[string]any `bun:"footer,type:jsonb" json:"footer,omitempty"`
	SEO       map[string]any `bun:"seo,type:jsonb" json:"seo,omitempty"`
	Published bool           `bun:"published,notnull,default:false" json:"published"`
	DeletedAt *time.Time     `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Pages []*Page `bun:"rel:has-many,join:id=site_id" json:"pages,omitempty"`
}

// Page is one ordered page of a site. Slug is unique within the site; the
// default page answers the site root.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	SiteID    uuid.UUID      `bun:"site_id,notnull,type:uuid" json:"site_id"`
	Name      string         `bun:"name,notnull" json:"name"`
	Slug      string         `bun:"slug,notnull" json:"slug"`
	Default   bool           `bun:"is_default,notnull,default:false" json:"default"`
	Published bool           `bun:"published,notnull,default:true" json:"published"`
	Position  int            `bun:"position,notnull,default:0" json:"position"`
	SEO       map[string]any `bun:"seo,type:jsonb" json:"seo,omitempty"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func cloneSite(s *Site) *Site {
	if s == nil {
		return nil
	}
	out := *s
	out.Settings = cloneMap(s.Settings)
	out.Header = cloneMap(s.Header)
	out.Footer = cloneMap(s.Footer)
	out.SEO = cloneMap(s.SEO)
	if s.DeletedAt != nil {
		deleted := *s.DeletedAt
		out.DeletedAt = &deleted
	}
	if len(s.Pages) > 0 {
		out.Pages = make([]*Page, len(s.Pages))
		for i, page := range s.Pages {
			out.Pages[i] = clonePage(page)
		}
	}
	return &out
}

func clonePage(p *Page) *Page {
	if p == nil {
		return nil
	}
	out := *p
	out.SEO = cloneMap(p.SEO)
	return &out
}

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
