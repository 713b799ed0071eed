package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-multisite/internal/locations"
	"github.com/goliatone/go-multisite/internal/validation"
	"github.com/goliatone/go-multisite/tokens"
	"github.com/google/uuid"
)

// Service exposes the page and page-group store use-cases.
type Service interface {
	GetPage(ctx context.Context, path string) (*Page, error)
	GetGroup(ctx context.Context, slug string) (*PageGroup, error)
	PublishPage(ctx context.Context, req PublishPageRequest) (*Page, error)
	PublishGroup(ctx context.Context, req PublishGroupRequest) (*PageGroup, error)
	SavePageDraft(ctx context.Context, req SavePageDraftRequest) (*Page, error)
	SaveGroupDraft(ctx context.Context, req SaveGroupDraftRequest) (*PageGroup, error)
	RenderGroupForLocation(ctx context.Context, req RenderGroupRequest) (map[string]any, error)
}

// PublishPageRequest upserts a page, setting draft and published trees to the
// same value.
type PublishPageRequest struct {
	Path string
	Data map[string]any
}

// PublishGroupRequest upserts a page group, setting draft and published trees
// to the same value.
type PublishGroupRequest struct {
	Slug string
	Data map[string]any
}

// SavePageDraftRequest stores only the draft tree of a page.
type SavePageDraftRequest struct {
	Path string
	Data map[string]any
}

// SaveGroupDraftRequest stores only the draft tree of a page group.
type SaveGroupDraftRequest struct {
	Slug string
	Data map[string]any
}

// RenderGroupRequest resolves a group template for one location address.
// Preview renders the draft tree instead of the published one.
type RenderGroupRequest struct {
	GroupSlug string
	Region    string
	City      string
	Line1     string
	Preview   bool
}

var (
	ErrPathRequired    = errors.New("pages: path is required")
	ErrSlugRequired    = errors.New("pages: slug is required")
	ErrDataRequired    = errors.New("pages: content tree is required")
	ErrTemplateInvalid = errors.New("pages: template failed schema validation")
)

// PageRepository abstracts storage operations for standalone pages.
type PageRepository interface {
	Create(ctx context.Context, record *Page) (*Page, error)
	Update(ctx context.Context, record *Page) (*Page, error)
	GetByPath(ctx context.Context, path string) (*Page, error)
}

// GroupRepository abstracts storage operations for page groups.
type GroupRepository interface {
	Create(ctx context.Context, record *PageGroup) (*PageGroup, error)
	Update(ctx context.Context, record *PageGroup) (*PageGroup, error)
	GetBySlug(ctx context.Context, slug string) (*PageGroup, error)
}

// LocationResolver is the slice of the location directory the renderer needs.
type LocationResolver interface {
	GetByAddress(ctx context.Context, region, city, line1 string) (*locations.Location, error)
}

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithTemplateSchema installs a JSON schema enforced against every content
// tree accepted by publish and save-draft operations.
func WithTemplateSchema(schema map[string]any) ServiceOption {
	return func(s *service) {
		s.templateSchema = schema
	}
}

type service struct {
	pages          PageRepository
	groups         GroupRepository
	directory      LocationResolver
	templateSchema map[string]any
	now            func() time.Time
	id             IDGenerator
}

// NewService constructs a page store service.
func NewService(pages PageRepository, groups GroupRepository, directory LocationResolver, opts ...ServiceOption) Service {
	s := &service{
		pages:     pages,
		groups:    groups,
		directory: directory,
		now:       time.Now,
		id:        uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPage fetches both versions for a page; absence returns nil, not an error.
func (s *service) GetPage(ctx context.Context, path string) (*Page, error) {
	record, err := s.pages.GetByPath(ctx, strings.TrimSpace(path))
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// GetGroup fetches both versions for a page group; absence returns nil.
func (s *service) GetGroup(ctx context.Context, slug string) (*PageGroup, error) {
	record, err := s.groups.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// PublishPage upserts a page with draft and published collapsed to the same
// value. Concurrent publishes to the same path are last-writer-wins.
func (s *service) PublishPage(ctx context.Context, req PublishPageRequest) (*Page, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return nil, ErrPathRequired
	}
	if req.Data == nil {
		return nil, ErrDataRequired
	}
	if err := s.validateTemplate(req.Data); err != nil {
		return nil, err
	}

	data := cloneMap(req.Data)
	now := s.now()

	record, err := s.pages.GetByPath(ctx, path)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		return s.pages.Create(ctx, &Page{
			ID:            s.id(),
			Path:          path,
			DraftData:     data,
			PublishedData: data,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	record.DraftData = data
	record.PublishedData = data
	record.UpdatedAt = now
	return s.pages.Update(ctx, record)
}

// PublishGroup upserts a page group with draft and published collapsed to the
// same value.
func (s *service) PublishGroup(ctx context.Context, req PublishGroupRequest) (*PageGroup, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	if req.Data == nil {
		return nil, ErrDataRequired
	}
	if err := s.validateTemplate(req.Data); err != nil {
		return nil, err
	}

	data := cloneMap(req.Data)
	now := s.now()

	record, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		return s.groups.Create(ctx, &PageGroup{
			ID:            s.id(),
			Slug:          slug,
			DraftData:     data,
			PublishedData: data,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	record.DraftData = data
	record.PublishedData = data
	record.UpdatedAt = now
	return s.groups.Update(ctx, record)
}

// SavePageDraft stores only the draft tree, leaving the published tree as-is.
func (s *service) SavePageDraft(ctx context.Context, req SavePageDraftRequest) (*Page, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return nil, ErrPathRequired
	}
	if req.Data == nil {
		return nil, ErrDataRequired
	}
	if err := s.validateTemplate(req.Data); err != nil {
		return nil, err
	}

	data := cloneMap(req.Data)
	now := s.now()

	record, err := s.pages.GetByPath(ctx, path)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		return s.pages.Create(ctx, &Page{
			ID:        s.id(),
			Path:      path,
			DraftData: data,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	record.DraftData = data
	record.UpdatedAt = now
	return s.pages.Update(ctx, record)
}

// SaveGroupDraft stores only the draft tree of a page group.
func (s *service) SaveGroupDraft(ctx context.Context, req SaveGroupDraftRequest) (*PageGroup, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	if req.Data == nil {
		return nil, ErrDataRequired
	}
	if err := s.validateTemplate(req.Data); err != nil {
		return nil, err
	}

	data := cloneMap(req.Data)
	now := s.now()

	record, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		return s.groups.Create(ctx, &PageGroup{
			ID:        s.id(),
			Slug:      slug,
			DraftData: data,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	record.DraftData = data
	record.UpdatedAt = now
	return s.groups.Update(ctx, record)
}

// RenderGroupForLocation composes the group template with the location's
// context record through the token resolver. The result is pure given
// (template, location record): identical inputs produce identical output.
// Missing groups or locations degrade to nil without error, matching the
// read-path contract.
func (s *service) RenderGroupForLocation(ctx context.Context, req RenderGroupRequest) (map[string]any, error) {
	group, err := s.GetGroup(ctx, req.GroupSlug)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}

	tree := group.PublishedData
	if req.Preview {
		tree = group.DraftData
	}
	if tree == nil {
		return nil, nil
	}

	location, err := s.directory.GetByAddress(ctx, req.Region, req.City, req.Line1)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}

	resolved, ok := tokens.Resolve(tree, location.ContextRecord()).(map[string]any)
	if !ok {
		return nil, nil
	}
	return resolved, nil
}

func (s *service) validateTemplate(data map[string]any) error {
	if len(s.templateSchema) == 0 {
		return nil
	}
	if err := validation.ValidatePayload(s.templateSchema, data); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	return nil
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = cloneMap(typed)
		case []any:
			out[key] = cloneSlice(typed)
		default:
			out[key] = value
		}
	}
	return out
}

func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}
	out := make([]any, len(src))
	for i, value := range src {
		switch typed := value.(type) {
		case map[string]any:
			out[i] = cloneMap(typed)
		case []any:
			out[i] = cloneSlice(typed)
		default:
			out[i] = value
		}
	}
	return out
}
