package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryArticleRepository is an in-memory ArticleRepository for tests and
// lightweight runtimes. Listing follows insertion order.
type MemoryArticleRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Article
	order   []uuid.UUID
}

// NewMemoryArticleRepository builds an empty in-memory article repository.
func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{records: map[uuid.UUID]*Article{}}
}

func (r *MemoryArticleRepository) Create(_ context.Context, record *Article) (*Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneArticle(record)
	r.records[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneArticle(clone), nil
}

func (r *MemoryArticleRepository) Update(_ context.Context, record *Article) (*Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "article", Key: record.ID.String()}
	}
	clone := cloneArticle(record)
	r.records[clone.ID] = clone
	return cloneArticle(clone), nil
}

func (r *MemoryArticleRepository) GetByID(_ context.Context, id uuid.UUID) (*Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: id.String()}
	}
	return cloneArticle(record), nil
}

func (r *MemoryArticleRepository) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Article{}
	for _, id := range ids {
		if record, ok := r.records[id]; ok {
			out = append(out, cloneArticle(record))
		}
	}
	return out, nil
}

func (r *MemoryArticleRepository) List(_ context.Context) ([]*Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Article, 0, len(r.order))
	for _, id := range r.order {
		if record, ok := r.records[id]; ok {
			out = append(out, cloneArticle(record))
		}
	}
	return out, nil
}

func (r *MemoryArticleRepository) ListByCategory(_ context.Context, category string) ([]*Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Article{}
	for _, id := range r.order {
		if record, ok := r.records[id]; ok && record.Category == category {
			out = append(out, cloneArticle(record))
		}
	}
	return out, nil
}

// Delete removes an article row. Used by the relationship integrity manager;
// not part of the catalog Service surface.
func (r *MemoryArticleRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return &NotFoundError{Resource: "article", Key: id.String()}
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryProductRepository is an in-memory ProductRepository for tests and
// lightweight runtimes.
type MemoryProductRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Product
	order   []uuid.UUID
}

// NewMemoryProductRepository builds an empty in-memory product repository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{records: map[uuid.UUID]*Product{}}
}

func (r *MemoryProductRepository) Create(_ context.Context, record *Product) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneProduct(record)
	r.records[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneProduct(clone), nil
}

func (r *MemoryProductRepository) Update(_ context.Context, record *Product) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "product", Key: record.ID.String()}
	}
	clone := cloneProduct(record)
	r.records[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *MemoryProductRepository) GetByID(_ context.Context, id uuid.UUID) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "product", Key: id.String()}
	}
	return cloneProduct(record), nil
}

func (r *MemoryProductRepository) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Product{}
	for _, id := range ids {
		if record, ok := r.records[id]; ok {
			out = append(out, cloneProduct(record))
		}
	}
	return out, nil
}

func (r *MemoryProductRepository) List(_ context.Context) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Product, 0, len(r.order))
	for _, id := range r.order {
		if record, ok := r.records[id]; ok {
			out = append(out, cloneProduct(record))
		}
	}
	return out, nil
}

func (r *MemoryProductRepository) ListByCategory(_ context.Context, category string) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Product{}
	for _, id := range r.order {
		if record, ok := r.records[id]; ok && record.Category == category {
			out = append(out, cloneProduct(record))
		}
	}
	return out, nil
}

// Delete removes a product row. Used by the relationship integrity manager.
func (r *MemoryProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return &NotFoundError{Resource: "product", Key: id.String()}
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryPromotionRepository is an in-memory PromotionRepository for tests and
// lightweight runtimes.
type MemoryPromotionRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Promotion
	order   []uuid.UUID
}

// NewMemoryPromotionRepository builds an empty in-memory promotion repository.
func NewMemoryPromotionRepository() *MemoryPromotionRepository {
	return &MemoryPromotionRepository{records: map[uuid.UUID]*Promotion{}}
}

func (r *MemoryPromotionRepository) Create(_ context.Context, record *Promotion) (*Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := clonePromotion(record)
	r.records[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return clonePromotion(clone), nil
}

func (r *MemoryPromotionRepository) Update(_ context.Context, record *Promotion) (*Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "promotion", Key: record.ID.String()}
	}
	clone := clonePromotion(record)
	r.records[clone.ID] = clone
	return clonePromotion(clone), nil
}

func (r *MemoryPromotionRepository) GetByID(_ context.Context, id uuid.UUID) (*Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "promotion", Key: id.String()}
	}
	return clonePromotion(record), nil
}

func (r *MemoryPromotionRepository) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Promotion{}
	for _, id := range ids {
		if record, ok := r.records[id]; ok {
			out = append(out, clonePromotion(record))
		}
	}
	return out, nil
}

func (r *MemoryPromotionRepository) List(_ context.Context) ([]*Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Promotion, 0, len(r.order))
	for _, id := range r.order {
		if record, ok := r.records[id]; ok {
			out = append(out, clonePromotion(record))
		}
	}
	return out, nil
}

func (r *MemoryPromotionRepository) ListByCategory(_ context.Context, category string) ([]*Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Promotion{}
	for _, id := range r.order {
		if record, ok := r.records[id]; ok && record.Category == category {
			out = append(out, clonePromotion(record))
		}
	}
	return out, nil
}

// Delete removes a promotion row. Used by the relationship integrity manager.
func (r *MemoryPromotionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return &NotFoundError{Resource: "promotion", Key: id.String()}
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneArticle(record *Article) *Article {
	if record == nil {
		return nil
	}
	clone := *record
	clone.Content = clonePtr(record.Content)
	clone.ImageURL = clonePtr(record.ImageURL)
	return &clone
}

func cloneProduct(record *Product) *Product {
	if record == nil {
		return nil
	}
	clone := *record
	clone.Price = clonePtr(record.Price)
	clone.Description = clonePtr(record.Description)
	clone.ImageURL = clonePtr(record.ImageURL)
	return &clone
}

func clonePromotion(record *Promotion) *Promotion {
	if record == nil {
		return nil
	}
	clone := *record
	clone.Description = clonePtr(record.Description)
	clone.ImageURL = clonePtr(record.ImageURL)
	return &clone
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
