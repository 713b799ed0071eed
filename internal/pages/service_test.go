package pages_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-multisite/internal/locations"
	"github.com/goliatone/go-multisite/internal/pages"
)

func newFixture(t *testing.T, opts ...pages.ServiceOption) (pages.Service, locations.Service) {
	t.Helper()
	directory := locations.NewService(locations.NewMemoryRepository())
	svc := pages.NewService(
		pages.NewMemoryPageRepository(),
		pages.NewMemoryGroupRepository(),
		directory,
		append([]pages.ServiceOption{pages.WithClock(func() time.Time {
			return time.Unix(1700000000, 0).UTC()
		})}, opts...)...,
	)
	return svc, directory
}

func TestPublishPageRoundTrip(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	data := map[string]any{"title": "Hello"}
	if _, err := svc.PublishPage(ctx, pages.PublishPageRequest{Path: "/about", Data: data}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	record, err := svc.GetPage(ctx, "/about")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if record == nil {
		t.Fatal("expected page record")
	}
	if !reflect.DeepEqual(record.DraftData, data) || !reflect.DeepEqual(record.PublishedData, data) {
		t.Fatalf("expected draft and published to equal input, got %v / %v", record.DraftData, record.PublishedData)
	}

	// A second publish overwrites both versions.
	next := map[string]any{"title": "Updated"}
	if _, err := svc.PublishPage(ctx, pages.PublishPageRequest{Path: "/about", Data: next}); err != nil {
		t.Fatalf("second publish: %v", err)
	}
	record, err = svc.GetPage(ctx, "/about")
	if err != nil {
		t.Fatalf("get page after overwrite: %v", err)
	}
	if !reflect.DeepEqual(record.DraftData, next) || !reflect.DeepEqual(record.PublishedData, next) {
		t.Fatalf("expected overwrite of both versions, got %v / %v", record.DraftData, record.PublishedData)
	}
}

func TestPublishGroupRoundTrip(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	data := map[string]any{"hero": "Welcome"}
	created, err := svc.PublishGroup(ctx, pages.PublishGroupRequest{Slug: "stores", Data: data})
	if err != nil {
		t.Fatalf("publish group: %v", err)
	}
	if created.CreatedAt != created.UpdatedAt {
		t.Fatal("expected matching timestamps on first publish")
	}

	record, err := svc.GetGroup(ctx, "stores")
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if !reflect.DeepEqual(record.DraftData, data) || !reflect.DeepEqual(record.PublishedData, data) {
		t.Fatalf("expected both versions set, got %v / %v", record.DraftData, record.PublishedData)
	}
}

func TestGetPageMissingReturnsNil(t *testing.T) {
	svc, _ := newFixture(t)

	record, err := svc.GetPage(context.Background(), "/missing")
	if err != nil {
		t.Fatalf("expected miss without error, got %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil, got %v", record)
	}
}

func TestSaveGroupDraftLeavesPublishedUntouched(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	published := map[string]any{"hero": "Live"}
	if _, err := svc.PublishGroup(ctx, pages.PublishGroupRequest{Slug: "stores", Data: published}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	draft := map[string]any{"hero": "Work in progress"}
	if _, err := svc.SaveGroupDraft(ctx, pages.SaveGroupDraftRequest{Slug: "stores", Data: draft}); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	record, err := svc.GetGroup(ctx, "stores")
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if !reflect.DeepEqual(record.DraftData, draft) {
		t.Fatalf("expected draft updated, got %v", record.DraftData)
	}
	if !reflect.DeepEqual(record.PublishedData, published) {
		t.Fatalf("expected published untouched, got %v", record.PublishedData)
	}
}

func TestRenderGroupForLocation(t *testing.T) {
	svc, directory := newFixture(t)
	ctx := context.Background()

	if _, err := directory.Create(ctx, locations.CreateLocationRequest{
		PageGroupSlug: "stores",
		Name:          "Austin Central",
		Region:        "Texas",
		City:          "Austin",
		Line1:         "100 Congress Ave",
		Data:          map[string]any{"phone": "512-555-0100"},
	}); err != nil {
		t.Fatalf("create location: %v", err)
	}

	template := map[string]any{
		"hero": map[string]any{
			"title":    "Welcome to [[name]]",
			"subtitle": "Serving [[address.city]], [[address.region]]",
		},
		"contact": "Call [[phone]]",
	}
	if _, err := svc.PublishGroup(ctx, pages.PublishGroupRequest{Slug: "stores", Data: template}); err != nil {
		t.Fatalf("publish group: %v", err)
	}

	rendered, err := svc.RenderGroupForLocation(ctx, pages.RenderGroupRequest{
		GroupSlug: "stores",
		Region:    "Texas",
		City:      "Austin",
		Line1:     "100 Congress Ave",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	hero := rendered["hero"].(map[string]any)
	if hero["title"] != "Welcome to Austin Central" {
		t.Fatalf("unexpected title %v", hero["title"])
	}
	if hero["subtitle"] != "Serving Austin, Texas" {
		t.Fatalf("unexpected subtitle %v", hero["subtitle"])
	}
	if rendered["contact"] != "Call 512-555-0100" {
		t.Fatalf("unexpected contact %v", rendered["contact"])
	}

	// Determinism: rendering twice yields equal output.
	again, err := svc.RenderGroupForLocation(ctx, pages.RenderGroupRequest{
		GroupSlug: "stores",
		Region:    "Texas",
		City:      "Austin",
		Line1:     "100 Congress Ave",
	})
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !reflect.DeepEqual(rendered, again) {
		t.Fatal("expected deterministic render output")
	}
}

func TestRenderGroupPreviewUsesDraft(t *testing.T) {
	svc, directory := newFixture(t)
	ctx := context.Background()

	if _, err := directory.Create(ctx, locations.CreateLocationRequest{
		PageGroupSlug: "stores",
		Name:          "Dallas North",
		Region:        "Texas",
		City:          "Dallas",
		Line1:         "200 Main St",
	}); err != nil {
		t.Fatalf("create location: %v", err)
	}

	if _, err := svc.PublishGroup(ctx, pages.PublishGroupRequest{
		Slug: "stores",
		Data: map[string]any{"banner": "Live at [[name]]"},
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := svc.SaveGroupDraft(ctx, pages.SaveGroupDraftRequest{
		Slug: "stores",
		Data: map[string]any{"banner": "Draft for [[name]]"},
	}); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	live, err := svc.RenderGroupForLocation(ctx, pages.RenderGroupRequest{
		GroupSlug: "stores", Region: "Texas", City: "Dallas", Line1: "200 Main St",
	})
	if err != nil {
		t.Fatalf("render live: %v", err)
	}
	if live["banner"] != "Live at Dallas North" {
		t.Fatalf("unexpected live banner %v", live["banner"])
	}

	preview, err := svc.RenderGroupForLocation(ctx, pages.RenderGroupRequest{
		GroupSlug: "stores", Region: "Texas", City: "Dallas", Line1: "200 Main St", Preview: true,
	})
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	if preview["banner"] != "Draft for Dallas North" {
		t.Fatalf("unexpected preview banner %v", preview["banner"])
	}
}

func TestRenderGroupMissingInputsDegradeToNil(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	rendered, err := svc.RenderGroupForLocation(ctx, pages.RenderGroupRequest{
		GroupSlug: "missing", Region: "Texas", City: "Austin", Line1: "100 Congress Ave",
	})
	if err != nil || rendered != nil {
		t.Fatalf("expected nil render for missing group, got %v / %v", rendered, err)
	}

	if _, err := svc.PublishGroup(ctx, pages.PublishGroupRequest{
		Slug: "stores",
		Data: map[string]any{"x": "y"},
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	rendered, err = svc.RenderGroupForLocation(ctx, pages.RenderGroupRequest{
		GroupSlug: "stores", Region: "Texas", City: "Austin", Line1: "100 Congress Ave",
	})
	if err != nil || rendered != nil {
		t.Fatalf("expected nil render for missing location, got %v / %v", rendered, err)
	}
}

func TestPublishValidatesTemplateSchema(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []any{"title"},
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
		},
	}
	svc, _ := newFixture(t, pages.WithTemplateSchema(schema))
	ctx := context.Background()

	if _, err := svc.PublishGroup(ctx, pages.PublishGroupRequest{
		Slug: "stores",
		Data: map[string]any{"not_title": true},
	}); !errors.Is(err, pages.ErrTemplateInvalid) {
		t.Fatalf("expected ErrTemplateInvalid got %v", err)
	}

	if _, err := svc.PublishGroup(ctx, pages.PublishGroupRequest{
		Slug: "stores",
		Data: map[string]any{"title": "ok"},
	}); err != nil {
		t.Fatalf("expected valid template to publish, got %v", err)
	}
}
