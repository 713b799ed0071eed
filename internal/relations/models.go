package relations

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Link is a single relationship row between two catalog or directory
// entities. The Relation descriptor names the join table and the entity kind
// on each side.
type Link struct {
	ID        uuid.UUID
	Relation  *Relation
	LeftID    uuid.UUID
	RightID   uuid.UUID
	CreatedAt time.Time
}

// LocationArticle attaches an article to a location.
type LocationArticle struct {
	bun.BaseModel `bun:"table:location_articles,alias:la"`

	ID         uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	LocationID uuid.UUID `bun:"location_id,notnull,type:uuid" json:"location_id"`
	ArticleID  uuid.UUID `bun:"article_id,notnull,type:uuid"  json:"article_id"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// LocationProduct attaches a product to a location.
type LocationProduct struct {
	bun.BaseModel `bun:"table:location_products,alias:lp"`

	ID         uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	LocationID uuid.UUID `bun:"location_id,notnull,type:uuid" json:"location_id"`
	ProductID  uuid.UUID `bun:"product_id,notnull,type:uuid"  json:"product_id"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// LocationPromotion attaches a promotion to a location.
type LocationPromotion struct {
	bun.BaseModel `bun:"table:location_promotions,alias:lpm"`

	ID          uuid.UUID `bun:",pk,type:uuid"            json:"id"`
	LocationID  uuid.UUID `bun:"location_id,notnull,type:uuid"  json:"location_id"`
	PromotionID uuid.UUID `bun:"promotion_id,notnull,type:uuid" json:"promotion_id"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// ArticleProduct cross-references an article and a product.
type ArticleProduct struct {
	bun.BaseModel `bun:"table:article_products,alias:ap"`

	ID        uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	ArticleID uuid.UUID `bun:"article_id,notnull,type:uuid" json:"article_id"`
	ProductID uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// ArticlePromotion cross-references an article and a promotion.
type ArticlePromotion struct {
	bun.BaseModel `bun:"table:article_promotions,alias:apm"`

	ID          uuid.UUID `bun:",pk,type:uuid"            json:"id"`
	ArticleID   uuid.UUID `bun:"article_id,notnull,type:uuid"   json:"article_id"`
	PromotionID uuid.UUID `bun:"promotion_id,notnull,type:uuid" json:"promotion_id"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// ProductPromotion cross-references a product and a promotion.
type ProductPromotion struct {
	bun.BaseModel `bun:"table:product_promotions,alias:ppm"`

	ID          uuid.UUID `bun:",pk,type:uuid"            json:"id"`
	ProductID   uuid.UUID `bun:"product_id,notnull,type:uuid"   json:"product_id"`
	PromotionID uuid.UUID `bun:"promotion_id,notnull,type:uuid" json:"promotion_id"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
