package multisite

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-multisite/internal/catalog"
	"github.com/goliatone/go-multisite/internal/di"
	"github.com/goliatone/go-multisite/internal/locations"
	"github.com/goliatone/go-multisite/internal/pages"
	"github.com/goliatone/go-multisite/internal/relations"
	"github.com/goliatone/go-multisite/internal/storage"
	"github.com/goliatone/go-multisite/pkg/interfaces"
	"github.com/uptrace/bun"
)

// LocationService exports the location directory contract for consumers of
// the multisite package.
type LocationService = locations.Service

// PageService exports the page and page-group service contract.
type PageService = pages.Service

// CatalogService exports the catalog service contract.
type CatalogService = catalog.Service

// RelationService exports the relationship integrity manager contract.
type RelationService = relations.Service

// Location exports the location record type.
type Location = locations.Location

// CityRef exports the distinct-city projection.
type CityRef = locations.CityRef

// Page exports the page record type.
type Page = pages.Page

// PageGroup exports the page-group record type.
type PageGroup = pages.PageGroup

// Article exports the article record type.
type Article = catalog.Article

// Product exports the product record type.
type Product = catalog.Product

// Promotion exports the promotion record type.
type Promotion = catalog.Promotion

// EntityKind exports the linkable entity kind enum.
type EntityKind = relations.EntityKind

// Relation exports the join relation descriptor.
type Relation = relations.Relation

const (
	KindLocation  = relations.KindLocation
	KindArticle   = relations.KindArticle
	KindProduct   = relations.KindProduct
	KindPromotion = relations.KindPromotion
)

var (
	RelationLocationArticle   = relations.RelationLocationArticle
	RelationLocationProduct   = relations.RelationLocationProduct
	RelationLocationPromotion = relations.RelationLocationPromotion
	RelationArticleProduct    = relations.RelationArticleProduct
	RelationArticlePromotion  = relations.RelationArticlePromotion
	RelationProductPromotion  = relations.RelationProductPromotion
)

// Option exports the DI override hook so hosts can rebind dependencies.
type Option = di.Option

// WithSQLDB binds a raw database handle. It is wrapped with the bun dialect
// matching the configured storage provider.
func WithSQLDB(db *sql.DB) Option {
	return di.WithSQLDB(db)
}

// WithBunDB binds an already-wrapped bun database.
func WithBunDB(db *bun.DB) Option {
	return di.WithBunDB(db)
}

// ApplyMigrations runs the embedded schema migrations against the given
// database. Hosts that manage schema themselves can skip it and apply the
// files from GetMigrationsFS with their own tooling.
func ApplyMigrations(ctx context.Context, db *bun.DB) error {
	return storage.RunMigrations(ctx, db, migrationsFS, "data/sql/migrations")
}

// Module represents the top level multisite runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a multisite module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}

	m := &Module{container: container}
	if err := m.seed(context.Background()); err != nil {
		return nil, err
	}
	return m, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Locations returns the configured location directory service.
func (m *Module) Locations() LocationService {
	return m.container.LocationService()
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Catalog returns the configured catalog service.
func (m *Module) Catalog() CatalogService {
	return m.container.CatalogService()
}

// Relations returns the configured relationship integrity manager.
func (m *Module) Relations() RelationService {
	return m.container.RelationService()
}

// Commands returns the command handler set, or nil when the commands
// feature is disabled.
func (m *Module) Commands() *di.CommandHandlers {
	return m.container.CommandHandlers()
}

// Logger returns a module-scoped logger backed by the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	return m.container.ModuleLogger(module)
}
