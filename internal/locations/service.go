package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service exposes the location directory use-cases.
type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (*Location, error)
	Update(ctx context.Context, req UpdateLocationRequest) (*Location, error)
	Get(ctx context.Context, id uuid.UUID) (*Location, error)
	ListForGroup(ctx context.Context, pageGroupSlug string) ([]*Location, error)
	GetByAddress(ctx context.Context, region, city, line1 string) (*Location, error)
	ListByCity(ctx context.Context, region, city string) ([]*Location, error)
	ListDistinctCities(ctx context.Context, pageGroupSlug string) ([]CityRef, error)
}

// CreateLocationRequest captures the payload required to register a location.
// ID is optional; callers that need deterministic identifiers (seeding) can
// supply one, otherwise the service generator is used.
type CreateLocationRequest struct {
	ID            uuid.UUID
	PageGroupSlug string
	Name          string
	Region        string
	City          string
	Line1         string
	Line2         *string
	PostalCode    *string
	Data          map[string]any
}

// UpdateLocationRequest mutates an existing location. Only non-nil fields are
// written; address changes re-derive the slug triple.
type UpdateLocationRequest struct {
	ID            uuid.UUID
	PageGroupSlug *string
	Name          *string
	Region        *string
	City          *string
	Line1         *string
	Line2         *string
	PostalCode    *string
	Data          map[string]any
}

var (
	ErrGroupSlugRequired  = errors.New("locations: page group slug is required")
	ErrNameRequired       = errors.New("locations: name is required")
	ErrAddressRequired    = errors.New("locations: region, city and line1 are required")
	ErrAddressInvalid     = errors.New("locations: address cannot be slugified")
	ErrAddressExists      = errors.New("locations: a location already exists at this address")
	ErrLocationIDRequired = errors.New("locations: location id required")
	ErrLocationNotFound   = errors.New("locations: location not found")
)

// Repository abstracts storage operations for locations.
type Repository interface {
	Create(ctx context.Context, record *Location) (*Location, error)
	Update(ctx context.Context, record *Location) (*Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	GetBySlug(ctx context.Context, slugRegion, slugCity, slugLine1 string) (*Location, error)
	ListByGroup(ctx context.Context, pageGroupSlug string) ([]*Location, error)
	ListByCitySlug(ctx context.Context, slugRegion, slugCity string) ([]*Location, error)
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

type service struct {
	locations Repository
	now       func() time.Time
	id        IDGenerator
}

// NewService constructs a location directory service.
func NewService(locations Repository, opts ...ServiceOption) Service {
	s := &service{
		locations: locations,
		now:       time.Now,
		id:        uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new location, deriving its slug triple from the address.
func (s *service) Create(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	groupSlug := strings.TrimSpace(req.PageGroupSlug)
	if groupSlug == "" {
		return nil, ErrGroupSlugRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	slugRegion, slugCity, slugLine1, err := deriveSlug(req.Region, req.City, req.Line1)
	if err != nil {
		return nil, err
	}

	if existing, err := s.locations.GetBySlug(ctx, slugRegion, slugCity, slugLine1); err == nil && existing != nil {
		return nil, ErrAddressExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	id := req.ID
	if id == uuid.Nil {
		id = s.id()
	}

	now := s.now()
	record := &Location{
		ID:            id,
		PageGroupSlug: groupSlug,
		Name:          strings.TrimSpace(req.Name),
		Region:        strings.TrimSpace(req.Region),
		City:          strings.TrimSpace(req.City),
		Line1:         strings.TrimSpace(req.Line1),
		Line2:         req.Line2,
		PostalCode:    req.PostalCode,
		SlugRegion:    slugRegion,
		SlugCity:      slugCity,
		SlugLine1:     slugLine1,
		Data:          cloneMap(req.Data),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.locations.Create(ctx, record)
}

// Update applies the supplied fields to an existing location. A missing
// target fails loudly so caller bugs do not silently no-op.
func (s *service) Update(ctx context.Context, req UpdateLocationRequest) (*Location, error) {
	if req.ID == uuid.Nil {
		return nil, ErrLocationIDRequired
	}

	record, err := s.locations.GetByID(ctx, req.ID)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	if req.PageGroupSlug != nil {
		if strings.TrimSpace(*req.PageGroupSlug) == "" {
			return nil, ErrGroupSlugRequired
		}
		record.PageGroupSlug = strings.TrimSpace(*req.PageGroupSlug)
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		record.Name = strings.TrimSpace(*req.Name)
	}

	addressChanged := false
	if req.Region != nil {
		record.Region = strings.TrimSpace(*req.Region)
		addressChanged = true
	}
	if req.City != nil {
		record.City = strings.TrimSpace(*req.City)
		addressChanged = true
	}
	if req.Line1 != nil {
		record.Line1 = strings.TrimSpace(*req.Line1)
		addressChanged = true
	}
	if req.Line2 != nil {
		record.Line2 = req.Line2
	}
	if req.PostalCode != nil {
		record.PostalCode = req.PostalCode
	}
	if req.Data != nil {
		record.Data = cloneMap(req.Data)
	}

	if addressChanged {
		slugRegion, slugCity, slugLine1, err := deriveSlug(record.Region, record.City, record.Line1)
		if err != nil {
			return nil, err
		}
		if existing, err := s.locations.GetBySlug(ctx, slugRegion, slugCity, slugLine1); err == nil && existing != nil && existing.ID != record.ID {
			return nil, ErrAddressExists
		} else if err != nil {
			var notFound *NotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
		record.SlugRegion = slugRegion
		record.SlugCity = slugCity
		record.SlugLine1 = slugLine1
	}

	record.UpdatedAt = s.now()
	return s.locations.Update(ctx, record)
}

// Get fetches a location by identifier, returning nil when absent.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Location, error) {
	record, err := s.locations.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// ListForGroup returns every location registered under the page group.
func (s *service) ListForGroup(ctx context.Context, pageGroupSlug string) ([]*Location, error) {
	return s.locations.ListByGroup(ctx, strings.TrimSpace(pageGroupSlug))
}

// GetByAddress resolves the full slug triple to at most one location. A miss
// returns nil without error.
func (s *service) GetByAddress(ctx context.Context, region, city, line1 string) (*Location, error) {
	slugRegion, slugCity, slugLine1, err := deriveSlug(region, city, line1)
	if err != nil {
		return nil, nil
	}
	record, err := s.locations.GetBySlug(ctx, slugRegion, slugCity, slugLine1)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// ListByCity returns locations matching the first two slug segments.
func (s *service) ListByCity(ctx context.Context, region, city string) ([]*Location, error) {
	slugRegion, err := normalizeSegment(region)
	if err != nil {
		return nil, nil
	}
	slugCity, err := normalizeSegment(city)
	if err != nil {
		return nil, nil
	}
	return s.locations.ListByCitySlug(ctx, slugRegion, slugCity)
}

// ListDistinctCities derives the distinct (region, city) pairs among a
// group's locations. De-duplication keys on the slug pair; the first record
// seen in repository iteration order supplies the display names.
func (s *service) ListDistinctCities(ctx context.Context, pageGroupSlug string) ([]CityRef, error) {
	records, err := s.locations.ListByGroup(ctx, strings.TrimSpace(pageGroupSlug))
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	cities := make([]CityRef, 0, len(records))
	for _, record := range records {
		key := record.SlugRegion + "/" + record.SlugCity
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cities = append(cities, CityRef{
			Region:     record.Region,
			City:       record.City,
			SlugRegion: record.SlugRegion,
			SlugCity:   record.SlugCity,
		})
	}
	return cities, nil
}

// DeriveSlug exposes the slug triple derivation used by Create so callers
// (seeding, deterministic identifiers) can address a location before it exists.
func DeriveSlug(region, city, line1 string) (string, string, string, error) {
	return deriveSlug(region, city, line1)
}

func deriveSlug(region, city, line1 string) (string, string, string, error) {
	if strings.TrimSpace(region) == "" || strings.TrimSpace(city) == "" || strings.TrimSpace(line1) == "" {
		return "", "", "", ErrAddressRequired
	}
	slugRegion, err := normalizeSegment(region)
	if err != nil {
		return "", "", "", err
	}
	slugCity, err := normalizeSegment(city)
	if err != nil {
		return "", "", "", err
	}
	slugLine1, err := normalizeSegment(line1)
	if err != nil {
		return "", "", "", err
	}
	return slugRegion, slugCity, slugLine1, nil
}

func normalizeSegment(value string) (string, error) {
	normalized, err := slug.Normalize(strings.TrimSpace(value))
	if err != nil || normalized == "" {
		return "", ErrAddressInvalid
	}
	return normalized, nil
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
