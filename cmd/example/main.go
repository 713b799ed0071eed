package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	multisite "github.com/goliatone/go-multisite"
	"github.com/goliatone/go-multisite/internal/catalog"
	"github.com/goliatone/go-multisite/internal/pages"
	"github.com/goliatone/go-multisite/internal/relations"
)

func main() {
	ctx := context.Background()

	cfg := multisite.DefaultConfig()
	cfg.Storage.Provider = "memory"
	cfg.Seed = multisite.SeedConfig{
		Locations: []multisite.LocationSeed{
			{
				PageGroupSlug: "stores",
				Name:          "Austin Central",
				Region:        "Texas",
				City:          "Austin",
				Line1:         "100 Congress Ave",
				PostalCode:    "78701",
				Data:          map[string]any{"phone": "512-555-0100"},
			},
			{
				PageGroupSlug: "stores",
				Name:          "Dallas North",
				Region:        "Texas",
				City:          "Dallas",
				Line1:         "200 Main St",
			},
		},
	}

	module, err := multisite.New(cfg)
	if err != nil {
		log.Fatalf("module: %v", err)
	}

	if _, err := module.Pages().PublishGroup(ctx, pages.PublishGroupRequest{
		Slug: "stores",
		Data: map[string]any{
			"hero": map[string]any{
				"title":    "Welcome to [[name]]",
				"subtitle": "Serving [[address.city]], [[address.region]]",
			},
			"contact": "Call [[phone]]",
		},
	}); err != nil {
		log.Fatalf("publish group: %v", err)
	}

	rendered, err := module.Pages().RenderGroupForLocation(ctx, pages.RenderGroupRequest{
		GroupSlug: "stores",
		Region:    "Texas",
		City:      "Austin",
		Line1:     "100 Congress Ave",
	})
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	printJSON("rendered austin page", rendered)

	austin, err := module.Locations().GetByAddress(ctx, "Texas", "Austin", "100 Congress Ave")
	if err != nil || austin == nil {
		log.Fatalf("lookup austin: %v", err)
	}

	article, err := module.Catalog().CreateArticle(ctx, catalog.CreateArticleRequest{
		Title:    "Grand Opening",
		Category: "news",
	})
	if err != nil {
		log.Fatalf("create article: %v", err)
	}

	if _, err := module.Relations().Link(ctx, relations.LinkRequest{
		Relation: multisite.RelationLocationArticle,
		LeftID:   austin.ID,
		RightID:  article.ID,
	}); err != nil {
		log.Fatalf("link: %v", err)
	}

	ids, err := module.Relations().ListRelatedIDs(ctx, relations.RelatedRequest{
		Relation: multisite.RelationLocationArticle,
		From:     multisite.KindLocation,
		ID:       austin.ID,
	})
	if err != nil {
		log.Fatalf("list related: %v", err)
	}
	fmt.Printf("articles linked to %s: %d\n", austin.Name, len(ids))

	if err := module.Relations().DeleteArticle(ctx, article.ID); err != nil {
		log.Fatalf("delete article: %v", err)
	}

	ids, err = module.Relations().ListRelatedIDs(ctx, relations.RelatedRequest{
		Relation: multisite.RelationLocationArticle,
		From:     multisite.KindLocation,
		ID:       austin.ID,
	})
	if err != nil {
		log.Fatalf("list related after delete: %v", err)
	}
	fmt.Printf("articles linked after cascade delete: %d\n", len(ids))

	cities, err := module.Locations().ListDistinctCities(ctx, "stores")
	if err != nil {
		log.Fatalf("distinct cities: %v", err)
	}
	printJSON("distinct cities", cities)
}

func printJSON(label string, value any) {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		log.Fatalf("%s: %v", label, err)
	}
	fmt.Printf("%s:\n%s\n", label, encoded)
}
