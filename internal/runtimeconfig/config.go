package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageProviderRequired = errors.New("multisite config: storage provider is required")
var ErrStorageProviderUnknown = errors.New("multisite config: storage provider is invalid")
var ErrAdvancedCacheRequiresEnabledCache = errors.New("multisite config: advanced cache feature requires cache to be enabled")
var ErrLoggingProviderRequired = errors.New("multisite config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("multisite config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("multisite config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("multisite config: logging format is invalid")
var ErrSeedLocationIncomplete = errors.New("multisite config: seed locations require group, name and a full address")

// Config aggregates feature flags and adapter bindings for the multisite module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Storage  StorageConfig
	Cache    CacheConfig
	Pages    PagesConfig
	Features Features
	Commands CommandsConfig
	Logging  LoggingConfig
	Seed     SeedConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// PagesConfig captures page module behaviour. TemplateSchema, when set, is a
// JSON Schema document applied to every published or drafted content tree.
type PagesConfig struct {
	TemplateSchema map[string]any
}

// Features toggles module functionality.
type Features struct {
	Commands      bool
	AdvancedCache bool
	Logger        bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// SeedConfig declares records created at bootstrap. Seeded locations get
// deterministic identifiers so repeat runs are idempotent.
type SeedConfig struct {
	Locations []LocationSeed
}

// LocationSeed declares one location created at bootstrap.
type LocationSeed struct {
	PageGroupSlug string
	Name          string
	Region        string
	City          string
	Line1         string
	Line2         string
	PostalCode    string
	Data          map[string]any
}

// DefaultConfig returns opinionated defaults for embedding hosts.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Pages:    PagesConfig{},
		Features: Features{},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Seed: SeedConfig{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	provider := strings.ToLower(strings.TrimSpace(cfg.Storage.Provider))
	if provider == "" {
		return ErrStorageProviderRequired
	}
	if !isSupportedStorageProvider(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Features.Logger {
		logProvider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLoggingProvider(logProvider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if logProvider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	for _, seed := range cfg.Seed.Locations {
		if strings.TrimSpace(seed.PageGroupSlug) == "" ||
			strings.TrimSpace(seed.Name) == "" ||
			strings.TrimSpace(seed.Region) == "" ||
			strings.TrimSpace(seed.City) == "" ||
			strings.TrimSpace(seed.Line1) == "" {
			return fmt.Errorf("%w: %q", ErrSeedLocationIncomplete, seed.Name)
		}
	}
	return nil
}

func isSupportedStorageProvider(provider string) bool {
	switch provider {
	case "sqlite", "postgres", "memory":
		return true
	default:
		return false
	}
}

func isSupportedLoggingProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
