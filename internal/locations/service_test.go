package locations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-multisite/internal/locations"
	"github.com/google/uuid"
)

func newService(t *testing.T) (locations.Service, *locations.MemoryRepository) {
	t.Helper()
	store := locations.NewMemoryRepository()
	svc := locations.NewService(store, locations.WithClock(func() time.Time {
		return time.Unix(1700000000, 0).UTC()
	}))
	return svc, store
}

func seedLocation(t *testing.T, svc locations.Service, group, name, region, city, line1 string) *locations.Location {
	t.Helper()
	record, err := svc.Create(context.Background(), locations.CreateLocationRequest{
		PageGroupSlug: group,
		Name:          name,
		Region:        region,
		City:          city,
		Line1:         line1,
	})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	return record
}

func TestServiceCreateDerivesSlug(t *testing.T) {
	svc, _ := newService(t)

	record := seedLocation(t, svc, "stores", "Austin Central", "Texas", "Austin", "100 Congress Ave")

	if record.SlugRegion != "texas" || record.SlugCity != "austin" || record.SlugLine1 != "100-congress-ave" {
		t.Fatalf("unexpected slug triple %s/%s/%s", record.SlugRegion, record.SlugCity, record.SlugLine1)
	}
	if record.UpdatedAt != record.CreatedAt {
		t.Fatalf("expected matching timestamps on create")
	}
}

func TestServiceCreateRejectsDuplicateAddress(t *testing.T) {
	svc, _ := newService(t)

	seedLocation(t, svc, "stores", "First", "Texas", "Austin", "100 Congress Ave")

	_, err := svc.Create(context.Background(), locations.CreateLocationRequest{
		PageGroupSlug: "stores",
		Name:          "Second",
		Region:        "Texas",
		City:          "Austin",
		Line1:         "100 Congress Ave",
	})
	if !errors.Is(err, locations.ErrAddressExists) {
		t.Fatalf("expected ErrAddressExists got %v", err)
	}
}

func TestServiceGetByAddressZeroOrOne(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created := seedLocation(t, svc, "stores", "Austin Central", "Texas", "Austin", "100 Congress Ave")

	found, err := svc.GetByAddress(ctx, "Texas", "Austin", "100 Congress Ave")
	if err != nil {
		t.Fatalf("get by address: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected %s got %v", created.ID, found)
	}

	missing, err := svc.GetByAddress(ctx, "Texas", "Austin", "999 Nowhere Ln")
	if err != nil {
		t.Fatalf("expected miss without error, got %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing address, got %v", missing)
	}
}

func TestServiceListForGroup(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	seedLocation(t, svc, "stores", "A", "Texas", "Austin", "100 Congress Ave")
	seedLocation(t, svc, "stores", "B", "Texas", "Dallas", "200 Main St")
	seedLocation(t, svc, "outlets", "C", "Texas", "Austin", "300 Oak St")

	records, err := svc.ListForGroup(ctx, "stores")
	if err != nil {
		t.Fatalf("list for group: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 locations got %d", len(records))
	}
}

func TestServiceListByCity(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	seedLocation(t, svc, "stores", "A", "Texas", "Austin", "100 Congress Ave")
	seedLocation(t, svc, "stores", "B", "Texas", "Austin", "200 Lamar Blvd")
	seedLocation(t, svc, "stores", "C", "Texas", "Dallas", "300 Main St")

	records, err := svc.ListByCity(ctx, "Texas", "Austin")
	if err != nil {
		t.Fatalf("list by city: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 locations got %d", len(records))
	}
}

func TestServiceListDistinctCitiesFirstSeenWins(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	// Same slug pair with diverging display names; the first record seeded
	// supplies the display names for the pair.
	seedLocation(t, svc, "stores", "A", "Texas", "Austin", "100 Congress Ave")
	seedLocation(t, svc, "stores", "B", "texas", "AUSTIN", "200 Lamar Blvd")
	seedLocation(t, svc, "stores", "C", "Texas", "Dallas", "300 Main St")

	cities, err := svc.ListDistinctCities(ctx, "stores")
	if err != nil {
		t.Fatalf("list distinct cities: %v", err)
	}
	if len(cities) != 2 {
		t.Fatalf("expected 2 distinct cities got %d", len(cities))
	}
	if cities[0].City != "Austin" || cities[0].Region != "Texas" {
		t.Fatalf("expected first-seen display names, got %+v", cities[0])
	}
	if cities[1].SlugCity != "dallas" {
		t.Fatalf("expected dallas second, got %+v", cities[1])
	}
}

func TestServiceUpdatePartialAndSlugRederivation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created := seedLocation(t, svc, "stores", "Original", "Texas", "Austin", "100 Congress Ave")

	newCity := "Houston"
	updated, err := svc.Update(ctx, locations.UpdateLocationRequest{
		ID:   created.ID,
		City: &newCity,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Original" {
		t.Fatalf("expected name untouched, got %q", updated.Name)
	}
	if updated.SlugCity != "houston" {
		t.Fatalf("expected slug re-derived, got %q", updated.SlugCity)
	}

	// The old address no longer resolves.
	if loc, _ := svc.GetByAddress(ctx, "Texas", "Austin", "100 Congress Ave"); loc != nil {
		t.Fatalf("expected old address to be gone, got %v", loc)
	}
}

func TestServiceUpdateMissingTargetFailsLoudly(t *testing.T) {
	svc, _ := newService(t)

	name := "Ghost"
	_, err := svc.Update(context.Background(), locations.UpdateLocationRequest{
		ID:   uuid.New(),
		Name: &name,
	})
	if !errors.Is(err, locations.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound got %v", err)
	}
}

func TestLocationContextRecord(t *testing.T) {
	line2 := "Suite 4"
	postal := "78701"
	loc := &locations.Location{
		Name:       "Austin Central",
		Region:     "Texas",
		City:       "Austin",
		Line1:      "100 Congress Ave",
		Line2:      &line2,
		PostalCode: &postal,
		SlugRegion: "texas",
		SlugCity:   "austin",
		SlugLine1:  "100-congress-ave",
		Data: map[string]any{
			"phone": "512-555-0100",
		},
	}

	record := loc.ContextRecord()
	if record["name"] != "Austin Central" {
		t.Fatalf("unexpected name %v", record["name"])
	}
	address := record["address"].(map[string]any)
	if address["city"] != "Austin" || address["line2"] != "Suite 4" || address["postalCode"] != "78701" {
		t.Fatalf("unexpected address %v", address)
	}
	if record["phone"] != "512-555-0100" {
		t.Fatalf("expected custom data merged, got %v", record["phone"])
	}
}
