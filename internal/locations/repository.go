package locations

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewLocationRepository builds the generic bun-backed repository for locations.
func NewLocationRepository(db *bun.DB) repository.Repository[*Location] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Location]{
		NewRecord: func() *Location { return &Location{} },
		GetID: func(l *Location) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Location, id uuid.UUID) {
			l.ID = id
		},
	})
}
