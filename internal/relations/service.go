package relations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service is the relationship integrity manager. It owns every join table
// between locations, articles, products and promotions, and it owns entity
// deletion: removing an entity removes its link rows in the same transaction
// so that no join table ever references a missing row.
type Service interface {
	Link(ctx context.Context, req LinkRequest) (*Link, error)
	Unlink(ctx context.Context, req LinkRequest) error
	ListRelatedIDs(ctx context.Context, req RelatedRequest) ([]uuid.UUID, error)

	DeleteLocation(ctx context.Context, id uuid.UUID) error
	DeleteArticle(ctx context.Context, id uuid.UUID) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	DeletePromotion(ctx context.Context, id uuid.UUID) error
}

// LinkRequest identifies a link row by relation and the ids on each side,
// ordered left then right as the relation declares them.
type LinkRequest struct {
	Relation *Relation
	LeftID   uuid.UUID
	RightID  uuid.UUID
}

// RelatedRequest asks for the counterpart ids linked to one entity. From
// names the side the id belongs to.
type RelatedRequest struct {
	Relation *Relation
	From     EntityKind
	ID       uuid.UUID
}

var (
	ErrRelationRequired = errors.New("relations: relation is required")
	ErrIDRequired       = errors.New("relations: both link ids are required")
	ErrKindMismatch     = errors.New("relations: entity kind is not part of the relation")
	ErrEndpointNotFound = errors.New("relations: link endpoint does not exist")
	ErrLinkExists       = errors.New("relations: link already exists")
	ErrLinkNotFound     = errors.New("relations: link not found")
	ErrEntityNotFound   = errors.New("relations: entity not found")
)

// Repository abstracts link-row storage plus the entity existence and
// cascading-delete primitives the manager needs.
type Repository interface {
	CreateLink(ctx context.Context, link *Link) (*Link, error)
	DeleteLink(ctx context.Context, rel *Relation, leftID, rightID uuid.UUID) error
	HasLink(ctx context.Context, rel *Relation, leftID, rightID uuid.UUID) (bool, error)
	ListRelated(ctx context.Context, rel *Relation, from EntityKind, id uuid.UUID) ([]uuid.UUID, error)
	Exists(ctx context.Context, kind EntityKind, id uuid.UUID) (bool, error)
	// DeleteEntity removes the entity row and every link row referencing it
	// atomically. It fails with NotFoundError when the entity is missing.
	DeleteEntity(ctx context.Context, kind EntityKind, id uuid.UUID) error
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

// WithClock overrides the clock used to stamp link rows.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

// IDGenerator produces identifiers for new link rows.
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
	repo Repository
	now  func() time.Time
	id   IDGenerator
}

// NewService constructs the integrity manager over the given repository.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo: repo,
		now:  time.Now,
		id:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Link validates both endpoints exist before writing the row. The check and
// the insert are not one transaction; a concurrent delete can still win, and
// the cascade on that delete is what keeps the tables consistent.
func (s *service) Link(ctx context.Context, req LinkRequest) (*Link, error) {
	if err := validateLinkRequest(req); err != nil {
		return nil, err
	}

	for _, endpoint := range []struct {
		kind EntityKind
		id   uuid.UUID
	}{
		{req.Relation.Left, req.LeftID},
		{req.Relation.Right, req.RightID},
	} {
		ok, err := s.repo.Exists(ctx, endpoint.kind, endpoint.id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", ErrEndpointNotFound, endpoint.kind, endpoint.id)
		}
	}

	exists, err := s.repo.HasLink(ctx, req.Relation, req.LeftID, req.RightID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrLinkExists
	}

	return s.repo.CreateLink(ctx, &Link{
		ID:        s.id(),
		Relation:  req.Relation,
		LeftID:    req.LeftID,
		RightID:   req.RightID,
		CreatedAt: s.now(),
	})
}

func (s *service) Unlink(ctx context.Context, req LinkRequest) error {
	if err := validateLinkRequest(req); err != nil {
		return err
	}

	err := s.repo.DeleteLink(ctx, req.Relation, req.LeftID, req.RightID)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return ErrLinkNotFound
		}
		return err
	}
	return nil
}

func (s *service) ListRelatedIDs(ctx context.Context, req RelatedRequest) ([]uuid.UUID, error) {
	if req.Relation == nil {
		return nil, ErrRelationRequired
	}
	if req.ID == uuid.Nil {
		return nil, ErrIDRequired
	}
	if !req.Relation.Involves(req.From) {
		return nil, ErrKindMismatch
	}
	return s.repo.ListRelated(ctx, req.Relation, req.From, req.ID)
}

func (s *service) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return s.deleteEntity(ctx, KindLocation, id)
}

func (s *service) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	return s.deleteEntity(ctx, KindArticle, id)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.deleteEntity(ctx, KindProduct, id)
}

func (s *service) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	return s.deleteEntity(ctx, KindPromotion, id)
}

func (s *service) deleteEntity(ctx context.Context, kind EntityKind, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}

	err := s.repo.DeleteEntity(ctx, kind, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("%w: %s %s", ErrEntityNotFound, kind, id)
		}
		return err
	}
	return nil
}

func validateLinkRequest(req LinkRequest) error {
	if req.Relation == nil {
		return ErrRelationRequired
	}
	if req.LeftID == uuid.Nil || req.RightID == uuid.Nil {
		return ErrIDRequired
	}
	return nil
}
