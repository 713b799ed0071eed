package multisite

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-multisite/internal/identity"
	"github.com/goliatone/go-multisite/internal/locations"
	"github.com/google/uuid"
)

var ErrSeedDirectoryRequired = errors.New("multisite: location service is required for seeding")

// SeedLocations registers the declared locations, skipping addresses that
// already exist. Seeded records get deterministic identifiers derived from
// their address, so repeat runs against the same store converge.
func SeedLocations(ctx context.Context, directory LocationService, seeds []LocationSeed) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if directory == nil {
		return ErrSeedDirectoryRequired
	}

	for _, seed := range seeds {
		existing, err := directory.GetByAddress(ctx, seed.Region, seed.City, seed.Line1)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		req := locations.CreateLocationRequest{
			ID:            seedLocationID(seed),
			PageGroupSlug: seed.PageGroupSlug,
			Name:          seed.Name,
			Region:        seed.Region,
			City:          seed.City,
			Line1:         seed.Line1,
			Data:          seed.Data,
		}
		if trimmed := strings.TrimSpace(seed.Line2); trimmed != "" {
			req.Line2 = &trimmed
		}
		if trimmed := strings.TrimSpace(seed.PostalCode); trimmed != "" {
			req.PostalCode = &trimmed
		}

		if _, err := directory.Create(ctx, req); err != nil {
			// A concurrent seeder may have won the race for this address.
			if errors.Is(err, locations.ErrAddressExists) {
				continue
			}
			return err
		}
	}
	return nil
}

func seedLocationID(seed LocationSeed) uuid.UUID {
	slugRegion, slugCity, slugLine1, err := locations.DeriveSlug(seed.Region, seed.City, seed.Line1)
	if err != nil {
		return uuid.Nil
	}
	return identity.LocationUUID(slugRegion, slugCity, slugLine1)
}

func (m *Module) seed(ctx context.Context) error {
	seeds := m.container.Config.Seed.Locations
	if len(seeds) == 0 {
		return nil
	}
	return SeedLocations(ctx, m.Locations(), seeds)
}
