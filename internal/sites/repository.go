package sites

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewSiteModelRepository(db *bun.DB) repository.Repository[*Site] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Site]{
		NewRecord: func() *Site { return &Site{} },
		GetID: func(s *Site) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Site, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "address"
		},
		GetIdentifierValue: func(s *Site) string {
			return s.Address
		},
	})
}

func NewPageModelRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord: func() *Page { return &Page{} },
		GetID: func(p *Page) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Page, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Page) string {
			return p.Slug
		},
	})
}
