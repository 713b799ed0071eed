package pages

import (
	"context"
	"sync"
)

// MemoryPageRepository is an in-memory implementation for scaffolding and tests.
type MemoryPageRepository struct {
	mu    sync.RWMutex
	pages map[string]*Page
}

// NewMemoryPageRepository creates an empty in-memory page repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{pages: make(map[string]*Page)}
}

// Create inserts the supplied page.
func (m *MemoryPageRepository) Create(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePage(record)
	m.pages[copied.Path] = copied
	return clonePage(copied), nil
}

// Update replaces the stored page.
func (m *MemoryPageRepository) Update(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pages[record.Path]; !ok {
		return nil, &NotFoundError{Resource: "page", Key: record.Path}
	}
	copied := clonePage(record)
	m.pages[copied.Path] = copied
	return clonePage(copied), nil
}

// GetByPath retrieves a page by its path key.
func (m *MemoryPageRepository) GetByPath(_ context.Context, path string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.pages[path]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: path}
	}
	return clonePage(rec), nil
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	copied := *src
	copied.DraftData = cloneMap(src.DraftData)
	copied.PublishedData = cloneMap(src.PublishedData)
	return &copied
}

// MemoryGroupRepository stores page groups in-memory.
type MemoryGroupRepository struct {
	mu     sync.RWMutex
	groups map[string]*PageGroup
}

// NewMemoryGroupRepository creates an empty in-memory page-group repository.
func NewMemoryGroupRepository() *MemoryGroupRepository {
	return &MemoryGroupRepository{groups: make(map[string]*PageGroup)}
}

// Create inserts the supplied page group.
func (m *MemoryGroupRepository) Create(_ context.Context, record *PageGroup) (*PageGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneGroup(record)
	m.groups[copied.Slug] = copied
	return cloneGroup(copied), nil
}

// Update replaces the stored page group.
func (m *MemoryGroupRepository) Update(_ context.Context, record *PageGroup) (*PageGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.groups[record.Slug]; !ok {
		return nil, &NotFoundError{Resource: "page_group", Key: record.Slug}
	}
	copied := cloneGroup(record)
	m.groups[copied.Slug] = copied
	return cloneGroup(copied), nil
}

// GetBySlug retrieves a page group by its slug key.
func (m *MemoryGroupRepository) GetBySlug(_ context.Context, slug string) (*PageGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.groups[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "page_group", Key: slug}
	}
	return cloneGroup(rec), nil
}

func cloneGroup(src *PageGroup) *PageGroup {
	if src == nil {
		return nil
	}
	copied := *src
	copied.DraftData = cloneMap(src.DraftData)
	copied.PublishedData = cloneMap(src.PublishedData)
	return &copied
}
