package plans

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryPlanRepository is an in-memory PlanRepository for tests and examples.
type MemoryPlanRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Plan
	bySlug map[string]uuid.UUID
}

func NewMemoryPlanRepository() *MemoryPlanRepository {
	return &MemoryPlanRepository{
		byID:   map[uuid.UUID]*Plan{},
		bySlug: map[string]uuid.UUID{},
	}
}

var _ PlanRepository = (*MemoryPlanRepository)(nil)

func (r *MemoryPlanRepository) Create(_ context.Context, plan *Plan) (*Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clonePlan(plan)
	r.byID[stored.ID] = stored
	r.bySlug[strings.ToLower(stored.Slug)] = stored.ID
	return clonePlan(stored), nil
}

func (r *MemoryPlanRepository) GetByID(_ context.Context, id uuid.UUID) (*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "plan", Key: id.String()}
	}
	return clonePlan(plan), nil
}

func (r *MemoryPlanRepository) GetBySlug(_ context.Context, slug string) (*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlug[strings.ToLower(slug)]
	if !ok {
		return nil, &NotFoundError{Resource: "plan", Key: slug}
	}
	return clonePlan(r.byID[id]), nil
}

func (r *MemoryPlanRepository) List(_ context.Context) ([]*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Plan, 0, len(r.byID))
	for _, plan := range r.byID {
		out = append(out, clonePlan(plan))
	}
	sortPlans(out)
	return out, nil
}

func (r *MemoryPlanRepository) Update(_ context.Context, plan *Plan) (*Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[plan.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "plan", Key: plan.ID.String()}
	}
	if !strings.EqualFold(current.Slug, plan.Slug) {
		delete(r.bySlug, strings.ToLower(current.Slug))
		r.bySlug[strings.ToLower(plan.Slug)] = plan.ID
	}

	stored := clonePlan(plan)
	r.byID[stored.ID] = stored
	return clonePlan(stored), nil
}

// UpdatePositions applies the whole batch or none of it.
func (r *MemoryPlanRepository) UpdatePositions(_ context.Context, pairs []SortPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, pair := range pairs {
		if _, ok := r.byID[pair.ID]; !ok {
			return &NotFoundError{Resource: "plan", Key: pair.ID.String()}
		}
	}
	for _, pair := range pairs {
		r.byID[pair.ID].Position = pair.Position
	}
	return nil
}

func (r *MemoryPlanRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.byID[id]
	if !ok {
		return &NotFoundError{Resource: "plan", Key: id.String()}
	}
	delete(r.bySlug, strings.ToLower(plan.Slug))
	delete(r.byID, id)
	return nil
}

// MemoryPlanFeatureRepository is an in-memory PlanFeatureRepository.
type MemoryPlanFeatureRepository struct {
	mu       sync.RWMutex
	features map[uuid.UUID]*PlanFeature
}

func NewMemoryPlanFeatureRepository() *MemoryPlanFeatureRepository {
	return &MemoryPlanFeatureRepository{features: map[uuid.UUID]*PlanFeature{}}
}

var _ PlanFeatureRepository = (*MemoryPlanFeatureRepository)(nil)

func (r *MemoryPlanFeatureRepository) Create(_ context.Context, feature *PlanFeature) (*PlanFeature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneFeature(feature)
	r.features[stored.ID] = stored
	return cloneFeature(stored), nil
}

func (r *MemoryPlanFeatureRepository) GetByPlanAndCode(_ context.Context, planID uuid.UUID, code string) (*PlanFeature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, feature := range r.features {
		if feature.PlanID == planID && feature.Code == code {
			return cloneFeature(feature), nil
		}
	}
	return nil, &NotFoundError{Resource: "plan_feature", Key: planID.String() + "/" + code}
}

func (r *MemoryPlanFeatureRepository) ListByPlan(_ context.Context, planID uuid.UUID) ([]*PlanFeature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*PlanFeature{}
	for _, feature := range r.features {
		if feature.PlanID == planID {
			out = append(out, cloneFeature(feature))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *MemoryPlanFeatureRepository) Update(_ context.Context, feature *PlanFeature) (*PlanFeature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.features[feature.ID]; !ok {
		return nil, &NotFoundError{Resource: "plan_feature", Key: feature.ID.String()}
	}
	stored := cloneFeature(feature)
	r.features[stored.ID] = stored
	return cloneFeature(stored), nil
}

func (r *MemoryPlanFeatureRepository) DeleteByPlan(_ context.Context, planID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, feature := range r.features {
		if feature.PlanID == planID {
			delete(r.features, id)
		}
	}
	return nil
}

func sortPlans(plans []*Plan) {
	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].Position != plans[j].Position {
			return plans[i].Position < plans[j].Position
		}
		if !plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].CreatedAt.Before(plans[j].CreatedAt)
		}
		return plans[i].ID.String() < plans[j].ID.String()
	})
}
