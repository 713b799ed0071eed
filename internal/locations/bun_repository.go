package locations

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

// BunRepository implements Repository backed by bun with optional caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Location]
}

// NewBunRepository constructs a location repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a location repository with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewLocationRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunRepository) Create(ctx context.Context, record *Location) (*Location, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Location) (*Location, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"page_group_slug",
			"name",
			"region",
			"city",
			"line1",
			"line2",
			"postal_code",
			"slug_region",
			"slug_city",
			"slug_line1",
			"data",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "location", record.ID.String())
	}
	return updated, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "location", id.String())
	}
	return result, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slugRegion, slugCity, slugLine1 string) (*Location, error) {
	key := slugKey(slugRegion, slugCity, slugLine1)
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug_region = ?", slugRegion).
				Where("?TableAlias.slug_city = ?", slugCity).
				Where("?TableAlias.slug_line1 = ?", slugLine1)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "location", key)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "location", Key: key}
	}
	return records[0], nil
}

func (r *BunRepository) ListByGroup(ctx context.Context, pageGroupSlug string) ([]*Location, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_group_slug = ?", pageGroupSlug).
				Order("created_at ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) ListByCitySlug(ctx context.Context, slugRegion, slugCity string) ([]*Location, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug_region = ?", slugRegion).
				Where("?TableAlias.slug_city = ?", slugCity).
				Order("created_at ASC")
		}),
	)
	return records, err
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

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
