package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestValidateRejectsUnknownStorageProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Provider = "etcd"

	if err := cfg.Validate(); !errors.Is(err, ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestValidateRequiresCacheForAdvancedCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.AdvancedCache = true
	cfg.Cache.Enabled = false

	if err := cfg.Validate(); !errors.Is(err, ErrAdvancedCacheRequiresEnabledCache) {
		t.Fatalf("expected ErrAdvancedCacheRequiresEnabledCache, got %v", err)
	}
}

func TestValidateLoggingProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected gologger/json to validate, got %v", err)
	}
}

func TestValidateSeedLocations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed.Locations = []LocationSeed{
		{PageGroupSlug: "stores", Name: "Central", Region: "Texas", City: "Austin"},
	}

	if err := cfg.Validate(); !errors.Is(err, ErrSeedLocationIncomplete) {
		t.Fatalf("expected ErrSeedLocationIncomplete, got %v", err)
	}

	cfg.Seed.Locations[0].Line1 = "100 Congress Ave"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected complete seed to validate, got %v", err)
	}
}
