package relations

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind identifies a linkable entity type.
type EntityKind string

const (
	KindLocation  EntityKind = "location"
	KindArticle   EntityKind = "article"
	KindProduct   EntityKind = "product"
	KindPromotion EntityKind = "promotion"
)

// Table returns the storage table holding rows of this kind.
func (k EntityKind) Table() string {
	switch k {
	case KindLocation:
		return "locations"
	case KindArticle:
		return "articles"
	case KindProduct:
		return "products"
	case KindPromotion:
		return "promotions"
	}
	return ""
}

// Relation describes one join table: which kinds sit on each side and which
// columns hold their ids. The newRow factory produces the concrete bun model
// for inserts.
type Relation struct {
	Name        string
	Left        EntityKind
	Right       EntityKind
	Table       string
	LeftColumn  string
	RightColumn string

	newRow func(id, left, right uuid.UUID, at time.Time) any
}

var (
	RelationLocationArticle = &Relation{
		Name:        "location_article",
		Left:        KindLocation,
		Right:       KindArticle,
		Table:       "location_articles",
		LeftColumn:  "location_id",
		RightColumn: "article_id",
		newRow: func(id, left, right uuid.UUID, at time.Time) any {
			return &LocationArticle{ID: id, LocationID: left, ArticleID: right, CreatedAt: at}
		},
	}

	RelationLocationProduct = &Relation{
		Name:        "location_product",
		Left:        KindLocation,
		Right:       KindProduct,
		Table:       "location_products",
		LeftColumn:  "location_id",
		RightColumn: "product_id",
		newRow: func(id, left, right uuid.UUID, at time.Time) any {
			return &LocationProduct{ID: id, LocationID: left, ProductID: right, CreatedAt: at}
		},
	}

	RelationLocationPromotion = &Relation{
		Name:        "location_promotion",
		Left:        KindLocation,
		Right:       KindPromotion,
		Table:       "location_promotions",
		LeftColumn:  "location_id",
		RightColumn: "promotion_id",
		newRow: func(id, left, right uuid.UUID, at time.Time) any {
			return &LocationPromotion{ID: id, LocationID: left, PromotionID: right, CreatedAt: at}
		},
	}

	RelationArticleProduct = &Relation{
		Name:        "article_product",
		Left:        KindArticle,
		Right:       KindProduct,
		Table:       "article_products",
		LeftColumn:  "article_id",
		RightColumn: "product_id",
		newRow: func(id, left, right uuid.UUID, at time.Time) any {
			return &ArticleProduct{ID: id, ArticleID: left, ProductID: right, CreatedAt: at}
		},
	}

	RelationArticlePromotion = &Relation{
		Name:        "article_promotion",
		Left:        KindArticle,
		Right:       KindPromotion,
		Table:       "article_promotions",
		LeftColumn:  "article_id",
		RightColumn: "promotion_id",
		newRow: func(id, left, right uuid.UUID, at time.Time) any {
			return &ArticlePromotion{ID: id, ArticleID: left, PromotionID: right, CreatedAt: at}
		},
	}

	RelationProductPromotion = &Relation{
		Name:        "product_promotion",
		Left:        KindProduct,
		Right:       KindPromotion,
		Table:       "product_promotions",
		LeftColumn:  "product_id",
		RightColumn: "promotion_id",
		newRow: func(id, left, right uuid.UUID, at time.Time) any {
			return &ProductPromotion{ID: id, ProductID: left, PromotionID: right, CreatedAt: at}
		},
	}
)

// Relations lists every join relation the integrity manager maintains.
var Relations = []*Relation{
	RelationLocationArticle,
	RelationLocationProduct,
	RelationLocationPromotion,
	RelationArticleProduct,
	RelationArticlePromotion,
	RelationProductPromotion,
}

// Involves reports whether the kind sits on either side of the relation.
func (r *Relation) Involves(kind EntityKind) bool {
	return r.Left == kind || r.Right == kind
}

// ColumnFor returns the join column holding ids of the given kind, or ""
// when the kind is not part of the relation.
func (r *Relation) ColumnFor(kind EntityKind) string {
	switch kind {
	case r.Left:
		return r.LeftColumn
	case r.Right:
		return r.RightColumn
	}
	return ""
}

// CounterpartColumn returns the join column opposite the given kind.
func (r *Relation) CounterpartColumn(kind EntityKind) string {
	switch kind {
	case r.Left:
		return r.RightColumn
	case r.Right:
		return r.LeftColumn
	}
	return ""
}

// CascadesFor returns the relations touching the kind. Deleting an entity of
// that kind removes its rows from every listed join table in the same
// transaction as the entity row itself.
func CascadesFor(kind EntityKind) []*Relation {
	out := make([]*Relation, 0, 3)
	for _, rel := range Relations {
		if rel.Involves(kind) {
			out = append(out, rel)
		}
	}
	return out
}
