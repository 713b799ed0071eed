package relations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-multisite/internal/catalog"
	"github.com/goliatone/go-multisite/internal/locations"
	"github.com/goliatone/go-multisite/internal/relations"
	"github.com/google/uuid"
)

type fixture struct {
	relations relations.Service
	directory locations.Service
	catalog   catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	locationRepo := locations.NewMemoryRepository()
	articleRepo := catalog.NewMemoryArticleRepository()
	productRepo := catalog.NewMemoryProductRepository()
	promotionRepo := catalog.NewMemoryPromotionRepository()

	clock := func() time.Time { return time.Unix(1700000000, 0).UTC() }

	return &fixture{
		relations: relations.NewService(
			relations.NewMemoryRepository(locationRepo, articleRepo, productRepo, promotionRepo),
			relations.WithClock(clock),
		),
		directory: locations.NewService(locationRepo, locations.WithClock(clock)),
		catalog: catalog.NewService(articleRepo, productRepo, promotionRepo,
			catalog.WithClock(clock)),
	}
}

func (f *fixture) location(t *testing.T, name string) *locations.Location {
	t.Helper()
	record, err := f.directory.Create(context.Background(), locations.CreateLocationRequest{
		PageGroupSlug: "stores",
		Name:          name,
		Region:        "Texas",
		City:          "Austin",
		Line1:         name + " St",
	})
	if err != nil {
		t.Fatalf("create location %q: %v", name, err)
	}
	return record
}

func (f *fixture) article(t *testing.T, title string) *catalog.Article {
	t.Helper()
	record, err := f.catalog.CreateArticle(context.Background(), catalog.CreateArticleRequest{Title: title})
	if err != nil {
		t.Fatalf("create article %q: %v", title, err)
	}
	return record
}

func (f *fixture) product(t *testing.T, name string) *catalog.Product {
	t.Helper()
	record, err := f.catalog.CreateProduct(context.Background(), catalog.CreateProductRequest{Name: name})
	if err != nil {
		t.Fatalf("create product %q: %v", name, err)
	}
	return record
}

func (f *fixture) promotion(t *testing.T, title string) *catalog.Promotion {
	t.Helper()
	record, err := f.catalog.CreatePromotion(context.Background(), catalog.CreatePromotionRequest{Title: title})
	if err != nil {
		t.Fatalf("create promotion %q: %v", title, err)
	}
	return record
}

func TestLinkAndListRelated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loc := f.location(t, "Central")
	first := f.article(t, "Opening")
	second := f.article(t, "Holiday Hours")

	for _, article := range []*catalog.Article{first, second} {
		if _, err := f.relations.Link(ctx, relations.LinkRequest{
			Relation: relations.RelationLocationArticle,
			LeftID:   loc.ID,
			RightID:  article.ID,
		}); err != nil {
			t.Fatalf("link: %v", err)
		}
	}

	ids, err := f.relations.ListRelatedIDs(ctx, relations.RelatedRequest{
		Relation: relations.RelationLocationArticle,
		From:     relations.KindLocation,
		ID:       loc.ID,
	})
	if err != nil {
		t.Fatalf("list related: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 related articles, got %d", len(ids))
	}

	// Reverse direction: which locations carry the first article.
	locs, err := f.relations.ListRelatedIDs(ctx, relations.RelatedRequest{
		Relation: relations.RelationLocationArticle,
		From:     relations.KindArticle,
		ID:       first.ID,
	})
	if err != nil {
		t.Fatalf("list reverse: %v", err)
	}
	if len(locs) != 1 || locs[0] != loc.ID {
		t.Fatalf("expected the one location, got %v", locs)
	}

	// Fetch the related entities through the catalog.
	articles, err := f.catalog.GetArticlesByIDs(ctx, ids)
	if err != nil {
		t.Fatalf("hydrate articles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 hydrated articles, got %d", len(articles))
	}
}

func TestLinkRejectsMissingEndpoint(t *testing.T) {
	f := newFixture(t)

	loc := f.location(t, "Central")
	if _, err := f.relations.Link(context.Background(), relations.LinkRequest{
		Relation: relations.RelationLocationArticle,
		LeftID:   loc.ID,
		RightID:  uuid.New(),
	}); !errors.Is(err, relations.ErrEndpointNotFound) {
		t.Fatalf("expected ErrEndpointNotFound, got %v", err)
	}
}

func TestLinkRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product := f.product(t, "Taco")
	promo := f.promotion(t, "Two for One")

	req := relations.LinkRequest{
		Relation: relations.RelationProductPromotion,
		LeftID:   product.ID,
		RightID:  promo.ID,
	}
	if _, err := f.relations.Link(ctx, req); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if _, err := f.relations.Link(ctx, req); !errors.Is(err, relations.ErrLinkExists) {
		t.Fatalf("expected ErrLinkExists, got %v", err)
	}
}

func TestUnlinkRemovesSingleRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	article := f.article(t, "Pairings")
	product := f.product(t, "Salsa")

	req := relations.LinkRequest{
		Relation: relations.RelationArticleProduct,
		LeftID:   article.ID,
		RightID:  product.ID,
	}
	if _, err := f.relations.Link(ctx, req); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := f.relations.Unlink(ctx, req); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if err := f.relations.Unlink(ctx, req); !errors.Is(err, relations.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound on second unlink, got %v", err)
	}

	// Both entities survive an unlink.
	if got, err := f.catalog.GetArticle(ctx, article.ID); err != nil || got == nil {
		t.Fatalf("expected article to survive, got %v / %v", got, err)
	}
	if got, err := f.catalog.GetProduct(ctx, product.ID); err != nil || got == nil {
		t.Fatalf("expected product to survive, got %v / %v", got, err)
	}
}

func TestDeleteArticleCascadesAllItsRelations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loc := f.location(t, "Central")
	article := f.article(t, "Featured")
	product := f.product(t, "Taco")
	promo := f.promotion(t, "Two for One")

	links := []relations.LinkRequest{
		{Relation: relations.RelationLocationArticle, LeftID: loc.ID, RightID: article.ID},
		{Relation: relations.RelationArticleProduct, LeftID: article.ID, RightID: product.ID},
		{Relation: relations.RelationArticlePromotion, LeftID: article.ID, RightID: promo.ID},
		// Unrelated to the article; must survive the cascade.
		{Relation: relations.RelationProductPromotion, LeftID: product.ID, RightID: promo.ID},
	}
	for _, req := range links {
		if _, err := f.relations.Link(ctx, req); err != nil {
			t.Fatalf("link %s: %v", req.Relation.Name, err)
		}
	}

	if err := f.relations.DeleteArticle(ctx, article.ID); err != nil {
		t.Fatalf("delete article: %v", err)
	}

	if got, err := f.catalog.GetArticle(ctx, article.ID); err != nil || got != nil {
		t.Fatalf("expected article gone, got %v / %v", got, err)
	}

	for _, probe := range []relations.RelatedRequest{
		{Relation: relations.RelationLocationArticle, From: relations.KindLocation, ID: loc.ID},
		{Relation: relations.RelationArticleProduct, From: relations.KindProduct, ID: product.ID},
		{Relation: relations.RelationArticlePromotion, From: relations.KindPromotion, ID: promo.ID},
	} {
		ids, err := f.relations.ListRelatedIDs(ctx, probe)
		if err != nil {
			t.Fatalf("probe %s: %v", probe.Relation.Name, err)
		}
		if len(ids) != 0 {
			t.Fatalf("expected %s rows cascaded, got %v", probe.Relation.Name, ids)
		}
	}

	// The product/promotion link does not involve the article.
	ids, err := f.relations.ListRelatedIDs(ctx, relations.RelatedRequest{
		Relation: relations.RelationProductPromotion,
		From:     relations.KindProduct,
		ID:       product.ID,
	})
	if err != nil {
		t.Fatalf("probe product_promotion: %v", err)
	}
	if len(ids) != 1 || ids[0] != promo.ID {
		t.Fatalf("expected product_promotion link to survive, got %v", ids)
	}
}

func TestDeleteLocationLeavesCounterpartsAlive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loc := f.location(t, "Central")
	article := f.article(t, "Opening")
	promo := f.promotion(t, "Grand Opening Deal")

	for _, req := range []relations.LinkRequest{
		{Relation: relations.RelationLocationArticle, LeftID: loc.ID, RightID: article.ID},
		{Relation: relations.RelationLocationPromotion, LeftID: loc.ID, RightID: promo.ID},
	} {
		if _, err := f.relations.Link(ctx, req); err != nil {
			t.Fatalf("link %s: %v", req.Relation.Name, err)
		}
	}

	if err := f.relations.DeleteLocation(ctx, loc.ID); err != nil {
		t.Fatalf("delete location: %v", err)
	}

	// Cascade removed link rows only; the linked entities remain.
	if got, err := f.catalog.GetArticle(ctx, article.ID); err != nil || got == nil {
		t.Fatalf("expected article alive, got %v / %v", got, err)
	}
	if got, err := f.catalog.GetPromotion(ctx, promo.ID); err != nil || got == nil {
		t.Fatalf("expected promotion alive, got %v / %v", got, err)
	}

	ids, err := f.relations.ListRelatedIDs(ctx, relations.RelatedRequest{
		Relation: relations.RelationLocationArticle,
		From:     relations.KindArticle,
		ID:       article.ID,
	})
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no dangling location links, got %v", ids)
	}
}

func TestDeleteMissingEntityFails(t *testing.T) {
	f := newFixture(t)

	if err := f.relations.DeleteProduct(context.Background(), uuid.New()); !errors.Is(err, relations.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestListRelatedRejectsForeignKind(t *testing.T) {
	f := newFixture(t)

	if _, err := f.relations.ListRelatedIDs(context.Background(), relations.RelatedRequest{
		Relation: relations.RelationLocationArticle,
		From:     relations.KindProduct,
		ID:       uuid.New(),
	}); !errors.Is(err, relations.ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
}
