package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if cfg.Storage.Provider != "memory" {
		t.Fatalf("expected memory storage default, got %q", cfg.Storage.Provider)
	}
	if !cfg.Features.Limits {
		t.Fatalf("expected limits enabled by default")
	}
}

func TestValidateCacheRequiresBunStorage(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Features.Cache = true
	if err := cfg.Validate(); !errors.Is(err, ErrCacheRequiresStorage) {
		t.Fatalf("expected ErrCacheRequiresStorage, got %v", err)
	}

	cfg.Storage.Provider = "bun"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected bun storage to satisfy cache, got %v", err)
	}
}

func TestValidateGenerationProviders(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Features.Generation = true
	cfg.Generation.Provider = "openai"
	if err := cfg.Validate(); !errors.Is(err, ErrGenerationKeyRequired) {
		t.Fatalf("expected ErrGenerationKeyRequired, got %v", err)
	}

	cfg.Generation.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected openai with key to validate, got %v", err)
	}

	cfg.Generation.ImageProvider = "unsplash"
	if err := cfg.Validate(); !errors.Is(err, ErrGenerationKeyRequired) {
		t.Fatalf("expected ErrGenerationKeyRequired for unsplash, got %v", err)
	}

	cfg.Generation.ImageKey = "access-key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected unsplash with key to validate, got %v", err)
	}

	cfg.Generation.Provider = "llama"
	if err := cfg.Validate(); !errors.Is(err, ErrGenerationProviderUnknown) {
		t.Fatalf("expected ErrGenerationProviderUnknown, got %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Features.Logger = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected console logging to validate, got %v", err)
	}

	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected gologger json config to validate, got %v", err)
	}
}
