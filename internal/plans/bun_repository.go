package plans

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPlanRepository implements PlanRepository on bun with optional caching.
type BunPlanRepository struct {
	db   *bun.DB
	repo repository.Repository[*Plan]
}

// NewBunPlanRepository creates a plan repository without caching.
func NewBunPlanRepository(db *bun.DB) *BunPlanRepository {
	return NewBunPlanRepositoryWithCache(db, nil, nil)
}

// NewBunPlanRepositoryWithCache creates a plan repository with caching services.
func NewBunPlanRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPlanRepository {
	return &BunPlanRepository{
		db:   db,
		repo: wrapWithCache(NewPlanModelRepository(db), cacheService, keySerializer),
	}
}

var _ PlanRepository = (*BunPlanRepository)(nil)

func (r *BunPlanRepository) Create(ctx context.Context, plan *Plan) (*Plan, error) {
	record, err := r.repo.Create(ctx, plan)
	if err != nil {
		return nil, mapRepositoryError(err, "plan", plan.ID.String())
	}
	return record, nil
}

func (r *BunPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "plan", id.String())
	}
	return record, nil
}

func (r *BunPlanRepository) GetBySlug(ctx context.Context, slug string) (*Plan, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "plan", slug)
	}
	return record, nil
}

func (r *BunPlanRepository) List(ctx context.Context) ([]*Plan, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC, ?TableAlias.created_at ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "plan", "list")
	}
	return records, nil
}

func (r *BunPlanRepository) Update(ctx context.Context, plan *Plan) (*Plan, error) {
	updated, err := r.repo.Update(ctx, plan,
		repository.UpdateByID(plan.ID.String()),
		repository.UpdateColumns(
			"name",
			"slug",
			"description",
			"position",
			"status",
			"prices",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "plan", plan.ID.String())
	}
	return updated, nil
}

// UpdatePositions applies the whole batch in one transaction; a missing id
// rolls the batch back.
func (r *BunPlanRepository) UpdatePositions(ctx context.Context, pairs []SortPair) error {
	if r.db == nil {
		return fmt.Errorf("plan repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, pair := range pairs {
			res, err := tx.NewUpdate().
				Model((*Plan)(nil)).
				Set("position = ?", pair.Position).
				Where("?TableAlias.id = ?", pair.ID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("update plan position: %w", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return &NotFoundError{Resource: "plan", Key: pair.ID.String()}
			}
		}
		return nil
	})
}

// Delete removes the plan and cascades its features in one transaction.
func (r *BunPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("plan repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*PlanFeature)(nil)).
			Where("?TableAlias.plan_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete plan features: %w", err)
		}
		res, err := tx.NewDelete().
			Model((*Plan)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete plan: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return &NotFoundError{Resource: "plan", Key: id.String()}
		}
		return nil
	})
}

// BunPlanFeatureRepository implements PlanFeatureRepository on bun with
// optional caching.
type BunPlanFeatureRepository struct {
	db   *bun.DB
	repo repository.Repository[*PlanFeature]
}

// NewBunPlanFeatureRepository creates a feature repository without caching.
func NewBunPlanFeatureRepository(db *bun.DB) *BunPlanFeatureRepository {
	return NewBunPlanFeatureRepositoryWithCache(db, nil, nil)
}

// NewBunPlanFeatureRepositoryWithCache creates a feature repository with caching services.
func NewBunPlanFeatureRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPlanFeatureRepository {
	return &BunPlanFeatureRepository{
		db:   db,
		repo: wrapWithCache(NewPlanFeatureModelRepository(db), cacheService, keySerializer),
	}
}

var _ PlanFeatureRepository = (*BunPlanFeatureRepository)(nil)

func (r *BunPlanFeatureRepository) Create(ctx context.Context, feature *PlanFeature) (*PlanFeature, error) {
	record, err := r.repo.Create(ctx, feature)
	if err != nil {
		return nil, mapRepositoryError(err, "plan_feature", feature.ID.String())
	}
	return record, nil
}

func (r *BunPlanFeatureRepository) GetByPlanAndCode(ctx context.Context, planID uuid.UUID, code string) (*PlanFeature, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.plan_id = ?", planID).
				Where("?TableAlias.code = ?", code)
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "plan_feature", planID.String()+"/"+code)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "plan_feature", Key: planID.String() + "/" + code}
	}
	return records[0], nil
}

func (r *BunPlanFeatureRepository) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*PlanFeature, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.plan_id = ?", planID).
				OrderExpr("?TableAlias.code ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "plan_feature", planID.String())
	}
	return records, nil
}

func (r *BunPlanFeatureRepository) Update(ctx context.Context, feature *PlanFeature) (*PlanFeature, error) {
	updated, err := r.repo.Update(ctx, feature,
		repository.UpdateByID(feature.ID.String()),
		repository.UpdateColumns("name", "description", "type", "enabled", "feature_limit", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "plan_feature", feature.ID.String())
	}
	return updated, nil
}

func (r *BunPlanFeatureRepository) DeleteByPlan(ctx context.Context, planID uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("plan feature repository: database not configured")
	}
	if _, err := r.db.NewDelete().
		Model((*PlanFeature)(nil)).
		Where("?TableAlias.plan_id = ?", planID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete plan features: %w", err)
	}
	return nil
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}
