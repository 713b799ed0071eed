package catalog

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

// BunArticleRepository implements ArticleRepository backed by bun with
// optional caching.
type BunArticleRepository struct {
	repo repository.Repository[*Article]
}

// NewBunArticleRepository constructs an article repository without caching.
func NewBunArticleRepository(db *bun.DB) *BunArticleRepository {
	return NewBunArticleRepositoryWithCache(db, nil, nil)
}

// NewBunArticleRepositoryWithCache constructs an article repository with optional caching.
func NewBunArticleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunArticleRepository {
	base := NewArticleRepository(db)
	return &BunArticleRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunArticleRepository) Create(ctx context.Context, record *Article) (*Article, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunArticleRepository) Update(ctx context.Context, record *Article) (*Article, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"category",
			"content",
			"image_url",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "article", record.ID.String())
	}
	return updated, nil
}

func (r *BunArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "article", id.String())
	}
	return result, nil
}

func (r *BunArticleRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Article, error) {
	if len(ids) == 0 {
		return []*Article{}, nil
	}
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id IN (?)", bun.In(ids))
		}),
	)
	return records, err
}

func (r *BunArticleRepository) List(ctx context.Context) ([]*Article, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at ASC")
		}),
	)
	return records, err
}

func (r *BunArticleRepository) ListByCategory(ctx context.Context, category string) ([]*Article, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.category = ?", category).
				Order("created_at ASC")
		}),
	)
	return records, err
}

// BunProductRepository implements ProductRepository backed by bun with
// optional caching.
type BunProductRepository struct {
	repo repository.Repository[*Product]
}

// NewBunProductRepository constructs a product repository without caching.
func NewBunProductRepository(db *bun.DB) *BunProductRepository {
	return NewBunProductRepositoryWithCache(db, nil, nil)
}

// NewBunProductRepositoryWithCache constructs a product repository with optional caching.
func NewBunProductRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunProductRepository {
	base := NewProductRepository(db)
	return &BunProductRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunProductRepository) Create(ctx context.Context, record *Product) (*Product, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunProductRepository) Update(ctx context.Context, record *Product) (*Product, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"name",
			"category",
			"price",
			"description",
			"image_url",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "product", record.ID.String())
	}
	return updated, nil
}

func (r *BunProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "product", id.String())
	}
	return result, nil
}

func (r *BunProductRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error) {
	if len(ids) == 0 {
		return []*Product{}, nil
	}
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id IN (?)", bun.In(ids))
		}),
	)
	return records, err
}

func (r *BunProductRepository) List(ctx context.Context) ([]*Product, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at ASC")
		}),
	)
	return records, err
}

func (r *BunProductRepository) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.category = ?", category).
				Order("created_at ASC")
		}),
	)
	return records, err
}

// BunPromotionRepository implements PromotionRepository backed by bun with
// optional caching.
type BunPromotionRepository struct {
	repo repository.Repository[*Promotion]
}

// NewBunPromotionRepository constructs a promotion repository without caching.
func NewBunPromotionRepository(db *bun.DB) *BunPromotionRepository {
	return NewBunPromotionRepositoryWithCache(db, nil, nil)
}

// NewBunPromotionRepositoryWithCache constructs a promotion repository with optional caching.
func NewBunPromotionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPromotionRepository {
	base := NewPromotionRepository(db)
	return &BunPromotionRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunPromotionRepository) Create(ctx context.Context, record *Promotion) (*Promotion, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunPromotionRepository) Update(ctx context.Context, record *Promotion) (*Promotion, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"category",
			"description",
			"image_url",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "promotion", record.ID.String())
	}
	return updated, nil
}

func (r *BunPromotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "promotion", id.String())
	}
	return result, nil
}

func (r *BunPromotionRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Promotion, error) {
	if len(ids) == 0 {
		return []*Promotion{}, nil
	}
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id IN (?)", bun.In(ids))
		}),
	)
	return records, err
}

func (r *BunPromotionRepository) List(ctx context.Context) ([]*Promotion, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at ASC")
		}),
	)
	return records, err
}

func (r *BunPromotionRepository) ListByCategory(ctx context.Context, category string) ([]*Promotion, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.category = ?", category).
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
