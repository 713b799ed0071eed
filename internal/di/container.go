package di

import (
	"database/sql"
	"time"

	"github.com/goliatone/go-multisite/internal/catalog"
	pagescmd "github.com/goliatone/go-multisite/internal/commands/pages"
	relationscmd "github.com/goliatone/go-multisite/internal/commands/relations"
	"github.com/goliatone/go-multisite/internal/locations"
	"github.com/goliatone/go-multisite/internal/logging"
	"github.com/goliatone/go-multisite/internal/logging/gologger"
	"github.com/goliatone/go-multisite/internal/pages"
	"github.com/goliatone/go-multisite/internal/relations"
	"github.com/goliatone/go-multisite/internal/runtimeconfig"
	"github.com/goliatone/go-multisite/internal/storage"
	"github.com/goliatone/go-multisite/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Without a bun database it runs on the
// in-memory repositories, which keeps tests and embedded hosts dependency-free.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	sqlDB          *sql.DB
	cacheTTL       time.Duration
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	loggerProvider interfaces.LoggerProvider

	locationRepo  locations.Repository
	pageRepo      pages.PageRepository
	groupRepo     pages.GroupRepository
	articleRepo   catalog.ArticleRepository
	productRepo   catalog.ProductRepository
	promotionRepo catalog.PromotionRepository
	relationRepo  relations.Repository

	locationSvc locations.Service
	pageSvc     pages.Service
	catalogSvc  catalog.Service
	relationSvc relations.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds a bun database; repositories switch from memory to bun.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithSQLDB binds a raw database handle. The container wraps it with the bun
// dialect matching the configured storage provider.
func WithSQLDB(db *sql.DB) Option {
	return func(c *Container) {
		c.sqlDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the default logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLocationService overrides the default location service binding.
func WithLocationService(svc locations.Service) Option {
	return func(c *Container) {
		c.locationSvc = svc
	}
}

// WithPageService overrides the default page service binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithCatalogService overrides the default catalog service binding.
func WithCatalogService(svc catalog.Service) Option {
	return func(c *Container) {
		c.catalogSvc = svc
	}
}

// WithRelationService overrides the default integrity manager binding.
func WithRelationService(svc relations.Service) Option {
	return func(c *Container) {
		c.relationSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	memoryLocationRepo := locations.NewMemoryRepository()
	memoryArticleRepo := catalog.NewMemoryArticleRepository()
	memoryProductRepo := catalog.NewMemoryProductRepository()
	memoryPromotionRepo := catalog.NewMemoryPromotionRepository()

	c := &Container{
		Config:        cfg,
		cacheTTL:      cacheTTL,
		locationRepo:  memoryLocationRepo,
		pageRepo:      pages.NewMemoryPageRepository(),
		groupRepo:     pages.NewMemoryGroupRepository(),
		articleRepo:   memoryArticleRepo,
		productRepo:   memoryProductRepo,
		promotionRepo: memoryPromotionRepo,
		relationRepo: relations.NewMemoryRepository(
			memoryLocationRepo,
			memoryArticleRepo,
			memoryProductRepo,
			memoryPromotionRepo,
		),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.bunDB == nil && c.sqlDB != nil {
		db, err := storage.OpenBunDB(cfg.Storage, c.sqlDB)
		if err != nil {
			return nil, err
		}
		c.bunDB = db
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()

	if c.locationSvc == nil {
		c.locationSvc = locations.NewService(c.locationRepo)
	}

	if c.catalogSvc == nil {
		c.catalogSvc = catalog.NewService(c.articleRepo, c.productRepo, c.promotionRepo)
	}

	if c.relationSvc == nil {
		c.relationSvc = relations.NewService(c.relationRepo)
	}

	if c.pageSvc == nil {
		pageOpts := []pages.ServiceOption{}
		if schema := c.Config.Pages.TemplateSchema; schema != nil {
			pageOpts = append(pageOpts, pages.WithTemplateSchema(schema))
		}
		c.pageSvc = pages.NewService(c.pageRepo, c.groupRepo, c.locationSvc, pageOpts...)
	}

	return c, nil
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}

	if c.Config.Logging.Provider == "gologger" {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
		}
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.locationRepo = locations.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.groupRepo = pages.NewBunGroupRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.articleRepo = catalog.NewBunArticleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.productRepo = catalog.NewBunProductRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.promotionRepo = catalog.NewBunPromotionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.relationRepo = relations.NewBunRepository(c.bunDB)
}

// LoggerProvider exposes the configured logger provider, which may be nil
// when logging is disabled. Callers should go through ModuleLogger.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ModuleLogger returns a module-scoped logger, no-op when logging is disabled.
func (c *Container) ModuleLogger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// LocationRepository exposes the configured location repository.
func (c *Container) LocationRepository() locations.Repository {
	return c.locationRepo
}

// PageRepository exposes the configured page repository.
func (c *Container) PageRepository() pages.PageRepository {
	return c.pageRepo
}

// GroupRepository exposes the configured page-group repository.
func (c *Container) GroupRepository() pages.GroupRepository {
	return c.groupRepo
}

// LocationService returns the configured location directory service.
func (c *Container) LocationService() locations.Service {
	return c.locationSvc
}

// PageService returns the configured page service.
func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

// CatalogService returns the configured catalog service.
func (c *Container) CatalogService() catalog.Service {
	return c.catalogSvc
}

// RelationService returns the configured relationship integrity manager.
func (c *Container) RelationService() relations.Service {
	return c.relationSvc
}

// CommandHandlers bundles the message handlers exposed when the commands
// feature is enabled.
type CommandHandlers struct {
	PublishGroup   *pagescmd.PublishGroupHandler
	SaveGroupDraft *pagescmd.SaveGroupDraftHandler
	LinkEntities   *relationscmd.LinkEntitiesHandler
	DeleteEntity   *relationscmd.DeleteEntityHandler
}

// CommandHandlers builds the command handler set over the configured
// services. It returns nil when the commands feature is disabled.
func (c *Container) CommandHandlers() *CommandHandlers {
	if !c.Config.Features.Commands && !c.Config.Commands.Enabled {
		return nil
	}

	logger := c.ModuleLogger("commands")
	return &CommandHandlers{
		PublishGroup:   pagescmd.NewPublishGroupHandler(c.pageSvc, logger),
		SaveGroupDraft: pagescmd.NewSaveGroupDraftHandler(c.pageSvc, logger),
		LinkEntities:   relationscmd.NewLinkEntitiesHandler(c.relationSvc, logger),
		DeleteEntity:   relationscmd.NewDeleteEntityHandler(c.relationSvc, logger),
	}
}
