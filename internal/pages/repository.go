package pages

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPageRepository builds the generic bun-backed repository for pages.
func NewPageRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord: func() *Page { return &Page{} },
		GetID: func(p *Page) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Page, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(p *Page) string {
			return p.Path
		},
	})
}

// NewGroupRepository builds the generic bun-backed repository for page groups.
func NewGroupRepository(db *bun.DB) repository.Repository[*PageGroup] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageGroup]{
		NewRecord: func() *PageGroup { return &PageGroup{} },
		GetID: func(g *PageGroup) uuid.UUID {
			return g.ID
		},
		SetID: func(g *PageGroup, id uuid.UUID) {
			g.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(g *PageGroup) string {
			return g.Slug
		},
	})
}
