package catalog

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewArticleRepository builds the generic bun-backed repository for articles.
func NewArticleRepository(db *bun.DB) repository.Repository[*Article] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Article]{
		NewRecord: func() *Article { return &Article{} },
		GetID: func(a *Article) uuid.UUID {
			return a.ID
		},
		SetID: func(a *Article, id uuid.UUID) {
			a.ID = id
		},
	})
}

// NewProductRepository builds the generic bun-backed repository for products.
func NewProductRepository(db *bun.DB) repository.Repository[*Product] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(p *Product) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Product, id uuid.UUID) {
			p.ID = id
		},
	})
}

// NewPromotionRepository builds the generic bun-backed repository for promotions.
func NewPromotionRepository(db *bun.DB) repository.Repository[*Promotion] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Promotion]{
		NewRecord: func() *Promotion { return &Promotion{} },
		GetID: func(p *Promotion) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Promotion, id uuid.UUID) {
			p.ID = id
		},
	})
}
