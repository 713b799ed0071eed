package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Article is an editorial content item attachable to locations and products.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID        uuid.UUID `bun:",pk,type:uuid"       json:"id"`
	Title     string    `bun:"title,notnull"       json:"title"`
	Category  string    `bun:"category"            json:"category,omitempty"`
	Content   *string   `bun:"content"             json:"content,omitempty"`
	ImageURL  *string   `bun:"image_url"           json:"image_url,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Product is a sellable item attachable to locations, articles and promotions.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:pr"`

	ID          uuid.UUID `bun:",pk,type:uuid"       json:"id"`
	Name        string    `bun:"name,notnull"        json:"name"`
	Category    string    `bun:"category"            json:"category,omitempty"`
	Price       *float64  `bun:"price"               json:"price,omitempty"`
	Description *string   `bun:"description"         json:"description,omitempty"`
	ImageURL    *string   `bun:"image_url"           json:"image_url,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Promotion is a marketing campaign attachable to locations, articles and products.
type Promotion struct {
	bun.BaseModel `bun:"table:promotions,alias:pm"`

	ID          uuid.UUID `bun:",pk,type:uuid"       json:"id"`
	Title       string    `bun:"title,notnull"       json:"title"`
	Category    string    `bun:"category"            json:"category,omitempty"`
	Description *string   `bun:"description"         json:"description,omitempty"`
	ImageURL    *string   `bun:"image_url"           json:"image_url,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
