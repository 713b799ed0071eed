package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page is a standalone content document addressed by a path string. Draft
// and published trees are independently nullable; the publish operation
// always writes both to the same value in a single row write.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID            uuid.UUID      `bun:",pk,type:uuid"          json:"id"`
	Path          string         `bun:"path,notnull,unique"    json:"path"`
	DraftData     map[string]any `bun:"draft_data,type:jsonb"  json:"draft_data,omitempty"`
	PublishedData map[string]any `bun:"published_data,type:jsonb" json:"published_data,omitempty"`
	CreatedAt     time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// PageGroup is a content template shared across many locations, addressed by
// a group slug and instantiated per-location via token resolution.
type PageGroup struct {
	bun.BaseModel `bun:"table:page_groups,alias:pgr"`

	ID            uuid.UUID      `bun:",pk,type:uuid"          json:"id"`
	Slug          string         `bun:"slug,notnull,unique"    json:"slug"`
	DraftData     map[string]any `bun:"draft_data,type:jsonb"  json:"draft_data,omitempty"`
	PublishedData map[string]any `bun:"published_data,type:jsonb" json:"published_data,omitempty"`
	CreatedAt     time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
