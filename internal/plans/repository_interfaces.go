package plans

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SortPair assigns a position to a plan.
type SortPair struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// PlanRepository persists plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) (*Plan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	GetBySlug(ctx context.Context, slug string) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
	Update(ctx context.Context, plan *Plan) (*Plan, error)
	UpdatePositions(ctx context.Context, pairs []SortPair) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlanFeatureRepository persists plan feature rows.
type PlanFeatureRepository interface {
	Create(ctx context.Context, feature *PlanFeature) (*PlanFeature, error)
	GetByPlanAndCode(ctx context.Context, planID uuid.UUID, code string) (*PlanFeature, error)
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]*PlanFeature, error)
	Update(ctx context.Context, feature *PlanFeature) (*PlanFeature, error)
	DeleteByPlan(ctx context.Context, planID uuid.UUID) error
}

// NotFoundError indicates a missing plan or feature.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}
