package pagescmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-multisite/internal/commands"
	"github.com/goliatone/go-multisite/internal/pages"
	goerrors "github.com/goliatone/go-errors"
)

type stubPageService struct {
	publishRequests []pages.PublishGroupRequest
	draftRequests   []pages.SaveGroupDraftRequest

	publishErr error
	draftErr   error
}

func (s *stubPageService) GetPage(context.Context, string) (*pages.Page, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPageService) GetGroup(context.Context, string) (*pages.PageGroup, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPageService) PublishPage(context.Context, pages.PublishPageRequest) (*pages.Page, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPageService) PublishGroup(ctx context.Context, req pages.PublishGroupRequest) (*pages.PageGroup, error) {
	s.publishRequests = append(s.publishRequests, req)
	if s.publishErr != nil {
		return nil, s.publishErr
	}
	return &pages.PageGroup{Slug: req.Slug}, nil
}

func (s *stubPageService) SavePageDraft(context.Context, pages.SavePageDraftRequest) (*pages.Page, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPageService) SaveGroupDraft(ctx context.Context, req pages.SaveGroupDraftRequest) (*pages.PageGroup, error) {
	s.draftRequests = append(s.draftRequests, req)
	if s.draftErr != nil {
		return nil, s.draftErr
	}
	return &pages.PageGroup{Slug: req.Slug}, nil
}

func (s *stubPageService) RenderGroupForLocation(context.Context, pages.RenderGroupRequest) (map[string]any, error) {
	return nil, errors.New("not implemented")
}

func TestPublishGroupHandlerExecutesService(t *testing.T) {
	service := &stubPageService{}
	logger := commands.CommandLogger(nil, "pages")
	handler := NewPublishGroupHandler(service, logger)

	msg := PublishGroupCommand{
		Slug: "stores",
		Data: map[string]any{"hero": "Welcome"},
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(service.publishRequests) != 1 {
		t.Fatalf("expected 1 publish request, got %d", len(service.publishRequests))
	}
	if service.publishRequests[0].Slug != "stores" {
		t.Fatalf("unexpected slug %q", service.publishRequests[0].Slug)
	}
}

func TestPublishGroupHandlerRejectsInvalidMessage(t *testing.T) {
	service := &stubPageService{}
	handler := NewPublishGroupHandler(service, nil)

	err := handler.Execute(context.Background(), PublishGroupCommand{Slug: "  "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.publishRequests) != 0 {
		t.Fatal("expected service not to be invoked")
	}
}

func TestPublishGroupHandlerWrapsServiceError(t *testing.T) {
	service := &stubPageService{publishErr: errors.New("storage down")}
	handler := NewPublishGroupHandler(service, nil)

	err := handler.Execute(context.Background(), PublishGroupCommand{
		Slug: "stores",
		Data: map[string]any{},
	})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestSaveGroupDraftHandlerExecutesService(t *testing.T) {
	service := &stubPageService{}
	handler := NewSaveGroupDraftHandler(service, nil)

	msg := SaveGroupDraftCommand{
		Slug: "stores",
		Data: map[string]any{"hero": "Draft"},
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(service.draftRequests) != 1 {
		t.Fatalf("expected 1 draft request, got %d", len(service.draftRequests))
	}
}
