package sections

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewSectionModelRepository(db *bun.DB) repository.Repository[*Section] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Section]{
		NewRecord: func() *Section { return &Section{} },
		GetID: func(s *Section) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Section, id uuid.UUID) {
			s.ID = id
		},
	})
}

func NewSectionItemModelRepository(db *bun.DB) repository.Repository[*SectionItem] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*SectionItem]{
		NewRecord: func() *SectionItem { return &SectionItem{} },
		GetID: func(i *SectionItem) uuid.UUID {
			return i.ID
		},
		SetID: func(i *SectionItem, id uuid.UUID) {
			i.ID = id
		},
	})
}
