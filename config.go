package multisite

import "github.com/goliatone/go-multisite/internal/runtimeconfig"

var (
	ErrStorageProviderRequired           = runtimeconfig.ErrStorageProviderRequired
	ErrStorageProviderUnknown            = runtimeconfig.ErrStorageProviderUnknown
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
	ErrSeedLocationIncomplete            = runtimeconfig.ErrSeedLocationIncomplete
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	PagesConfig    = runtimeconfig.PagesConfig
	Features       = runtimeconfig.Features
	CommandsConfig = runtimeconfig.CommandsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	SeedConfig     = runtimeconfig.SeedConfig
	LocationSeed   = runtimeconfig.LocationSeed
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
