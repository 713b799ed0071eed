package relationscmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-multisite/internal/relations"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

type stubRelationsService struct {
	links   []relations.LinkRequest
	deletes []struct {
		kind relations.EntityKind
		id   uuid.UUID
	}

	linkErr   error
	deleteErr error
}

func (s *stubRelationsService) Link(ctx context.Context, req relations.LinkRequest) (*relations.Link, error) {
	s.links = append(s.links, req)
	if s.linkErr != nil {
		return nil, s.linkErr
	}
	return &relations.Link{Relation: req.Relation, LeftID: req.LeftID, RightID: req.RightID}, nil
}

func (s *stubRelationsService) Unlink(context.Context, relations.LinkRequest) error {
	return errors.New("not implemented")
}

func (s *stubRelationsService) ListRelatedIDs(context.Context, relations.RelatedRequest) ([]uuid.UUID, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRelationsService) record(kind relations.EntityKind, id uuid.UUID) error {
	s.deletes = append(s.deletes, struct {
		kind relations.EntityKind
		id   uuid.UUID
	}{kind, id})
	return s.deleteErr
}

func (s *stubRelationsService) DeleteLocation(_ context.Context, id uuid.UUID) error {
	return s.record(relations.KindLocation, id)
}

func (s *stubRelationsService) DeleteArticle(_ context.Context, id uuid.UUID) error {
	return s.record(relations.KindArticle, id)
}

func (s *stubRelationsService) DeleteProduct(_ context.Context, id uuid.UUID) error {
	return s.record(relations.KindProduct, id)
}

func (s *stubRelationsService) DeletePromotion(_ context.Context, id uuid.UUID) error {
	return s.record(relations.KindPromotion, id)
}

func TestLinkEntitiesHandlerExecutesService(t *testing.T) {
	service := &stubRelationsService{}
	handler := NewLinkEntitiesHandler(service, nil)

	left := uuid.New()
	right := uuid.New()
	msg := LinkEntitiesCommand{
		Relation: "location_article",
		LeftID:   left,
		RightID:  right,
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(service.links) != 1 {
		t.Fatalf("expected 1 link request, got %d", len(service.links))
	}
	if service.links[0].Relation != relations.RelationLocationArticle {
		t.Fatalf("unexpected relation %v", service.links[0].Relation)
	}
	if service.links[0].LeftID != left || service.links[0].RightID != right {
		t.Fatal("unexpected link endpoints")
	}
}

func TestLinkEntitiesHandlerRejectsUnknownRelation(t *testing.T) {
	service := &stubRelationsService{}
	handler := NewLinkEntitiesHandler(service, nil)

	err := handler.Execute(context.Background(), LinkEntitiesCommand{
		Relation: "location_widget",
		LeftID:   uuid.New(),
		RightID:  uuid.New(),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.links) != 0 {
		t.Fatal("expected service not to be invoked")
	}
}

func TestDeleteEntityHandlerRoutesByKind(t *testing.T) {
	service := &stubRelationsService{}
	handler := NewDeleteEntityHandler(service, nil)

	id := uuid.New()
	if err := handler.Execute(context.Background(), DeleteEntityCommand{
		Kind: relations.KindProduct,
		ID:   id,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(service.deletes) != 1 {
		t.Fatalf("expected 1 delete, got %d", len(service.deletes))
	}
	if service.deletes[0].kind != relations.KindProduct || service.deletes[0].id != id {
		t.Fatalf("unexpected delete routing %v", service.deletes[0])
	}
}

func TestDeleteEntityHandlerWrapsServiceError(t *testing.T) {
	service := &stubRelationsService{deleteErr: relations.ErrEntityNotFound}
	handler := NewDeleteEntityHandler(service, nil)

	err := handler.Execute(context.Background(), DeleteEntityCommand{
		Kind: relations.KindArticle,
		ID:   uuid.New(),
	})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
