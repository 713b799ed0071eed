package relations

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-multisite/internal/catalog"
	"github.com/goliatone/go-multisite/internal/locations"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository for tests and lightweight
// runtimes. It holds the entity memory repositories so that DeleteEntity can
// remove the entity row and its link rows under one lock, mirroring the
// transactional cascade of the bun repository.
type MemoryRepository struct {
	mu    sync.Mutex
	links map[string][]*Link

	locations  *locations.MemoryRepository
	articles   *catalog.MemoryArticleRepository
	products   *catalog.MemoryProductRepository
	promotions *catalog.MemoryPromotionRepository
}

// NewMemoryRepository builds an in-memory repository over the given entity
// stores.
func NewMemoryRepository(
	locationRepo *locations.MemoryRepository,
	articleRepo *catalog.MemoryArticleRepository,
	productRepo *catalog.MemoryProductRepository,
	promotionRepo *catalog.MemoryPromotionRepository,
) *MemoryRepository {
	return &MemoryRepository{
		links:      map[string][]*Link{},
		locations:  locationRepo,
		articles:   articleRepo,
		products:   productRepo,
		promotions: promotionRepo,
	}
}

func (r *MemoryRepository) CreateLink(_ context.Context, link *Link) (*Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *link
	r.links[link.Relation.Name] = append(r.links[link.Relation.Name], &clone)
	out := clone
	return &out, nil
}

func (r *MemoryRepository) DeleteLink(_ context.Context, rel *Relation, leftID, rightID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.links[rel.Name]
	for i, row := range rows {
		if row.LeftID == leftID && row.RightID == rightID {
			r.links[rel.Name] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Resource: rel.Name, Key: leftID.String() + "/" + rightID.String()}
}

func (r *MemoryRepository) HasLink(_ context.Context, rel *Relation, leftID, rightID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.links[rel.Name] {
		if row.LeftID == leftID && row.RightID == rightID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) ListRelated(_ context.Context, rel *Relation, from EntityKind, id uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []uuid.UUID{}
	for _, row := range r.links[rel.Name] {
		switch from {
		case rel.Left:
			if row.LeftID == id {
				out = append(out, row.RightID)
			}
		case rel.Right:
			if row.RightID == id {
				out = append(out, row.LeftID)
			}
		}
	}
	return out, nil
}

func (r *MemoryRepository) Exists(ctx context.Context, kind EntityKind, id uuid.UUID) (bool, error) {
	var err error
	switch kind {
	case KindLocation:
		_, err = r.locations.GetByID(ctx, id)
	case KindArticle:
		_, err = r.articles.GetByID(ctx, id)
	case KindProduct:
		_, err = r.products.GetByID(ctx, id)
	case KindPromotion:
		_, err = r.promotions.GetByID(ctx, id)
	default:
		return false, &NotFoundError{Resource: string(kind), Key: id.String()}
	}

	if err != nil {
		if isEntityNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *MemoryRepository) DeleteEntity(ctx context.Context, kind EntityKind, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	switch kind {
	case KindLocation:
		err = r.locations.Delete(ctx, id)
	case KindArticle:
		err = r.articles.Delete(ctx, id)
	case KindProduct:
		err = r.products.Delete(ctx, id)
	case KindPromotion:
		err = r.promotions.Delete(ctx, id)
	default:
		return &NotFoundError{Resource: string(kind), Key: id.String()}
	}
	if err != nil {
		if isEntityNotFound(err) {
			return &NotFoundError{Resource: string(kind), Key: id.String()}
		}
		return err
	}

	for _, rel := range CascadesFor(kind) {
		kept := r.links[rel.Name][:0]
		for _, row := range r.links[rel.Name] {
			if (rel.Left == kind && row.LeftID == id) || (rel.Right == kind && row.RightID == id) {
				continue
			}
			kept = append(kept, row)
		}
		r.links[rel.Name] = kept
	}
	return nil
}

func isEntityNotFound(err error) bool {
	var locationMiss *locations.NotFoundError
	var catalogMiss *catalog.NotFoundError
	return errors.As(err, &locationMiss) || errors.As(err, &catalogMiss)
}
