package sites

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunSiteRepository implements SiteRepository on bun with optional caching.
type BunSiteRepository struct {
	db   *bun.DB
	repo repository.Repository[*Site]
}

// NewBunSiteRepository creates a site repository without caching.
func NewBunSiteRepository(db *bun.DB) *BunSiteRepository {
	return NewBunSiteRepositoryWithCache(db, nil, nil)
}

// NewBunSiteRepositoryWithCache creates a site repository with caching services.
func NewBunSiteRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunSiteRepository {
	return &BunSiteRepository{
		db:   db,
		repo: wrapWithCache(NewSiteModelRepository(db), cacheService, keySerializer),
	}
}

var _ SiteRepository = (*BunSiteRepository)(nil)

func (r *BunSiteRepository) Create(ctx context.Context, site *Site) (*Site, error) {
	record, err := r.repo.Create(ctx, site)
	if err != nil {
		return nil, mapRepositoryError(err, "site", site.Address)
	}
	return record, nil
}

func (r *BunSiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*Site, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "site", id.String())
	}
	return record, nil
}

func (r *BunSiteRepository) GetByAddress(ctx context.Context, address string) (*Site, error) {
	normalized := strings.ToLower(strings.TrimSpace(address))
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("lower(?TableAlias.address) = ?", normalized)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "site", address)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "site", Key: address}
	}
	return records[0], nil
}

func (r *BunSiteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Site, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.owner_id = ?", ownerID).
				OrderExpr("?TableAlias.created_at ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "site", ownerID.String())
	}
	return records, nil
}

func (r *BunSiteRepository) Update(ctx context.Context, site *Site) (*Site, error) {
	updated, err := r.repo.Update(ctx, site,
		repository.UpdateByID(site.ID.String()),
		repository.UpdateColumns(
			"address",
			"name",
			"settings",
			"header",
			"footer",
			"seo",
			"published",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "site", site.ID.String())
	}
	return updated, nil
}

func (r *BunSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Site{ID: id}); err != nil {
		return mapRepositoryError(err, "site", id.String())
	}
	return nil
}

// BunPageRepository implements PageRepository on bun with optional caching.
type BunPageRepository struct {
	db   *bun.DB
	repo repository.Repository[*Page]
}

// NewBunPageRepository creates a page repository without caching.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache creates a page repository with caching services.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageRepository {
	return &BunPageRepository{
		db:   db,
		repo: wrapWithCache(NewPageModelRepository(db), cacheService, keySerializer),
	}
}

var _ PageRepository = (*BunPageRepository)(nil)

func (r *BunPageRepository) Create(ctx context.Context, page *Page) (*Page, error) {
	record, err := r.repo.Create(ctx, page)
	if err != nil {
		return nil, mapRepositoryError(err, "page", page.Slug)
	}
	return record, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return record, nil
}

func (r *BunPageRepository) ListBySite(ctx context.Context, siteID uuid.UUID) ([]*Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.site_id = ?", siteID).
				OrderExpr("?TableAlias.position ASC, ?TableAlias.created_at ASC, ?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page", siteID.String())
	}
	return records, nil
}

func (r *BunPageRepository) Update(ctx context.Context, page *Page) (*Page, error) {
	updated, err := r.repo.Update(ctx, page,
		repository.UpdateByID(page.ID.String()),
		repository.UpdateColumns(
			"name",
			"slug",
			"is_default",
			"published",
			"position",
			"seo",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page", page.ID.String())
	}
	return updated, nil
}

// UpdatePositions applies the whole batch in one transaction; a missing id
// rolls the batch back.
func (r *BunPageRepository) UpdatePositions(ctx context.Context, pairs []SortPair) error {
	if r.db == nil {
		return fmt.Errorf("page repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, pair := range pairs {
			res, err := tx.NewUpdate().
				Model((*Page)(nil)).
				Set("position = ?", pair.Position).
				Where("?TableAlias.id = ?", pair.ID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("update page position: %w", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return &NotFoundError{Resource: "page", Key: pair.ID.String()}
			}
		}
		return nil
	})
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Page{ID: id}); err != nil {
		return mapRepositoryError(err, "page", id.String())
	}
	return nil
}

func (r *BunPageRepository) DeleteBySite(ctx context.Context, siteID uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("page repository: database not configured")
	}
	if _, err := r.db.NewDelete().
		Model((*Page)(nil)).
		Where("?TableAlias.site_id = ?", siteID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete site pages: %w", err)
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
