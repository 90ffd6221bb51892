package sections

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

// BunSectionRepository implements SectionRepository on bun with optional caching.
type BunSectionRepository struct {
	db   *bun.DB
	repo repository.Repository[*Section]
}

// NewBunSectionRepository creates a section repository without caching.
func NewBunSectionRepository(db *bun.DB) *BunSectionRepository {
	return NewBunSectionRepositoryWithCache(db, nil, nil)
}

// NewBunSectionRepositoryWithCache creates a section repository with caching services.
func NewBunSectionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunSectionRepository {
	return &BunSectionRepository{
		db:   db,
		repo: wrapWithCache(NewSectionModelRepository(db), cacheService, keySerializer),
	}
}

var _ SectionRepository = (*BunSectionRepository)(nil)

// Create persists the section and its initial items in one transaction.
func (r *BunSectionRepository) Create(ctx context.Context, section *Section, items []*SectionItem) (*Section, error) {
	if r.db == nil {
		return nil, fmt.Errorf("section repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(section).Exec(ctx); err != nil {
			return fmt.Errorf("insert section: %w", err)
		}
		for _, item := range items {
			item.SectionID = section.ID
			if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
				return fmt.Errorf("insert section item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, section.ID)
}

func (r *BunSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "section", id.String())
	}

	items := []*SectionItem{}
	if err := r.db.NewSelect().
		Model(&items).
		Where("?TableAlias.section_id = ?", id).
		OrderExpr("?TableAlias.position ASC, ?TableAlias.created_at ASC, ?TableAlias.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("load section items: %w", err)
	}
	record.Items = items
	return record, nil
}

func (r *BunSectionRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				Relation("Items").
				OrderExpr("?TableAlias.position ASC, ?TableAlias.created_at ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "section", pageID.String())
	}
	for _, record := range records {
		sortItems(record.Items)
	}
	return records, nil
}

func (r *BunSectionRepository) Update(ctx context.Context, section *Section) (*Section, error) {
	_, err := r.repo.Update(ctx, section,
		repository.UpdateByID(section.ID.String()),
		repository.UpdateColumns(
			"content",
			"settings",
			"form",
			"position",
			"published",
			"generation_state",
			"image_generation_state",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "section", section.ID.String())
	}
	return r.GetByID(ctx, section.ID)
}

// UpdatePositions applies the whole batch in one transaction; a missing id
// rolls the batch back.
func (r *BunSectionRepository) UpdatePositions(ctx context.Context, pairs []SortPair) error {
	if r.db == nil {
		return fmt.Errorf("section repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, pair := range pairs {
			res, err := tx.NewUpdate().
				Model((*Section)(nil)).
				Set("position = ?", pair.Position).
				Where("?TableAlias.id = ?", pair.ID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("update section position: %w", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return &NotFoundError{Resource: "section", Key: pair.ID.String()}
			}
		}
		return nil
	})
}

// Delete removes the section and cascades its items in one transaction.
func (r *BunSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("section repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*SectionItem)(nil)).
			Where("?TableAlias.section_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete section items: %w", err)
		}
		res, err := tx.NewDelete().
			Model((*Section)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete section: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return &NotFoundError{Resource: "section", Key: id.String()}
		}
		return nil
	})
}

// BunSectionItemRepository implements SectionItemRepository on bun with optional caching.
type BunSectionItemRepository struct {
	db   *bun.DB
	repo repository.Repository[*SectionItem]
}

// NewBunSectionItemRepository creates an item repository without caching.
func NewBunSectionItemRepository(db *bun.DB) *BunSectionItemRepository {
	return NewBunSectionItemRepositoryWithCache(db, nil, nil)
}

// NewBunSectionItemRepositoryWithCache creates an item repository with caching services.
func NewBunSectionItemRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunSectionItemRepository {
	return &BunSectionItemRepository{
		db:   db,
		repo: wrapWithCache(NewSectionItemModelRepository(db), cacheService, keySerializer),
	}
}

var _ SectionItemRepository = (*BunSectionItemRepository)(nil)

func (r *BunSectionItemRepository) Create(ctx context.Context, item *SectionItem) (*SectionItem, error) {
	record, err := r.repo.Create(ctx, item)
	if err != nil {
		return nil, mapRepositoryError(err, "section_item", item.ID.String())
	}
	return record, nil
}

func (r *BunSectionItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*SectionItem, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "section_item", id.String())
	}
	return record, nil
}

func (r *BunSectionItemRepository) ListBySection(ctx context.Context, sectionID uuid.UUID) ([]*SectionItem, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.section_id = ?", sectionID).
				OrderExpr("?TableAlias.position ASC, ?TableAlias.created_at ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "section_item", sectionID.String())
	}
	return records, nil
}

func (r *BunSectionItemRepository) Update(ctx context.Context, item *SectionItem) (*SectionItem, error) {
	updated, err := r.repo.Update(ctx, item,
		repository.UpdateByID(item.ID.String()),
		repository.UpdateColumns("content", "settings", "position", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "section_item", item.ID.String())
	}
	return updated, nil
}

func (r *BunSectionItemRepository) UpdatePositions(ctx context.Context, pairs []SortPair) error {
	if r.db == nil {
		return fmt.Errorf("section item repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, pair := range pairs {
			res, err := tx.NewUpdate().
				Model((*SectionItem)(nil)).
				Set("position = ?", pair.Position).
				Where("?TableAlias.id = ?", pair.ID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("update section item position: %w", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return &NotFoundError{Resource: "section_item", Key: pair.ID.String()}
			}
		}
		return nil
	})
}

func (r *BunSectionItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &SectionItem{ID: id}); err != nil {
		return mapRepositoryError(err, "section_item", id.String())
	}
	return nil
}

func (r *BunSectionItemRepository) DeleteBySection(ctx context.Context, sectionID uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("section item repository: database not configured")
	}
	if _, err := r.db.NewDelete().
		Model((*SectionItem)(nil)).
		Where("?TableAlias.section_id = ?", sectionID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete section items: %w", err)
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
