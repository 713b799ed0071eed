package locations

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Location is a single physical site belonging to a page group. The slug
// triple (region, city, line1) is derived from the address and uniquely
// addresses the location within the store.
type Location struct {
	bun.BaseModel `bun:"table:locations,alias:loc"`

	ID            uuid.UUID      `bun:",pk,type:uuid"             json:"id"`
	PageGroupSlug string         `bun:"page_group_slug,notnull"   json:"page_group_slug"`
	Name          string         `bun:"name,notnull"              json:"name"`
	Region        string         `bun:"region,notnull"            json:"region"`
	City          string         `bun:"city,notnull"              json:"city"`
	Line1         string         `bun:"line1,notnull"             json:"line1"`
	Line2         *string        `bun:"line2"                     json:"line2,omitempty"`
	PostalCode    *string        `bun:"postal_code"               json:"postal_code,omitempty"`
	SlugRegion    string         `bun:"slug_region,notnull"       json:"slug_region"`
	SlugCity      string         `bun:"slug_city,notnull"         json:"slug_city"`
	SlugLine1     string         `bun:"slug_line1,notnull"        json:"slug_line1"`
	Data          map[string]any `bun:"data,type:jsonb"           json:"data,omitempty"`
	CreatedAt     time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// ContextRecord flattens the location into the keyed mapping handed to the
// token resolver. Custom per-location fields from Data are merged at the top
// level and win over the built-in keys.
func (l *Location) ContextRecord() map[string]any {
	address := map[string]any{
		"region": l.Region,
		"city":   l.City,
		"line1":  l.Line1,
	}
	if l.Line2 != nil {
		address["line2"] = *l.Line2
	}
	if l.PostalCode != nil {
		address["postalCode"] = *l.PostalCode
	}

	record := map[string]any{
		"name":    l.Name,
		"address": address,
		"slug": map[string]any{
			"region": l.SlugRegion,
			"city":   l.SlugCity,
			"line1":  l.SlugLine1,
		},
	}
	for key, value := range l.Data {
		record[key] = value
	}
	return record
}

// CityRef identifies one distinct (region, city) pair within a page group,
// carrying both the slug fragments and the display names of the first
// location seen for that pair.
type CityRef struct {
	Region     string `json:"region"`
	City       string `json:"city"`
	SlugRegion string `json:"slug_region"`
	SlugCity   string `json:"slug_city"`
}
