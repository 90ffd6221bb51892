package plans

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewPlanModelRepository(db *bun.DB) repository.Repository[*Plan] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Plan]{
		NewRecord: func() *Plan { return &Plan{} },
		GetID: func(p *Plan) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Plan, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Plan) string {
			return p.Slug
		},
	})
}

func NewPlanFeatureModelRepository(db *bun.DB) repository.Repository[*PlanFeature] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PlanFeature]{
		NewRecord: func() *PlanFeature { return &PlanFeature{} },
		GetID: func(f *PlanFeature) uuid.UUID {
			return f.ID
		},
		SetID: func(f *PlanFeature, id uuid.UUID) {
			f.ID = id
		},
	})
}
