package locations

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
// Listing operations iterate in insertion order, which is the repository
// order the directory contract exposes.
type MemoryRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*Location
	order     []uuid.UUID
	slugIndex map[string]uuid.UUID
}

// NewMemoryRepository creates an empty in-memory location repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:   make(map[uuid.UUID]*Location),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied location.
func (m *MemoryRepository) Create(_ context.Context, record *Location) (*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneLocation(record)
	m.records[copied.ID] = copied
	m.order = append(m.order, copied.ID)
	m.slugIndex[slugKey(copied.SlugRegion, copied.SlugCity, copied.SlugLine1)] = copied.ID
	return cloneLocation(copied), nil
}

// Update replaces the stored record.
func (m *MemoryRepository) Update(_ context.Context, record *Location) (*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "location", Key: record.ID.String()}
	}
	delete(m.slugIndex, slugKey(existing.SlugRegion, existing.SlugCity, existing.SlugLine1))

	copied := cloneLocation(record)
	m.records[copied.ID] = copied
	m.slugIndex[slugKey(copied.SlugRegion, copied.SlugCity, copied.SlugLine1)] = copied.ID
	return cloneLocation(copied), nil
}

// GetByID retrieves a location by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "location", Key: id.String()}
	}
	return cloneLocation(rec), nil
}

// GetBySlug retrieves a location by its full slug triple.
func (m *MemoryRepository) GetBySlug(_ context.Context, slugRegion, slugCity, slugLine1 string) (*Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := slugKey(slugRegion, slugCity, slugLine1)
	id, ok := m.slugIndex[key]
	if !ok {
		return nil, &NotFoundError{Resource: "location", Key: key}
	}
	return cloneLocation(m.records[id]), nil
}

// ListByGroup returns locations whose group key matches, in insertion order.
func (m *MemoryRepository) ListByGroup(_ context.Context, pageGroupSlug string) ([]*Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Location{}
	for _, id := range m.order {
		rec, ok := m.records[id]
		if !ok {
			continue
		}
		if rec.PageGroupSlug == pageGroupSlug {
			out = append(out, cloneLocation(rec))
		}
	}
	return out, nil
}

// ListByCitySlug returns locations matching the first two slug segments.
func (m *MemoryRepository) ListByCitySlug(_ context.Context, slugRegion, slugCity string) ([]*Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Location{}
	for _, id := range m.order {
		rec, ok := m.records[id]
		if !ok {
			continue
		}
		if rec.SlugRegion == slugRegion && rec.SlugCity == slugCity {
			out = append(out, cloneLocation(rec))
		}
	}
	return out, nil
}

// Delete removes a location row. The integrity manager relies on this when
// cascading.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[id]
	if !ok {
		return &NotFoundError{Resource: "location", Key: id.String()}
	}
	delete(m.slugIndex, slugKey(existing.SlugRegion, existing.SlugCity, existing.SlugLine1))
	delete(m.records, id)
	for i, ordered := range m.order {
		if ordered == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func slugKey(region, city, line1 string) string {
	return region + "/" + city + "/" + line1
}

func cloneLocation(src *Location) *Location {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Data = cloneMap(src.Data)
	return &copied
}
