package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrLoggingProviderRequired = errors.New("builder config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("builder config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("builder config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("builder config: logging format is invalid")

// ErrCacheRequiresStorage ensures repository caching only builds on a real database.
var ErrCacheRequiresStorage = errors.New("builder config: cache feature requires the bun storage provider")

// ErrGenerationProviderUnknown indicates an unsupported text provider name.
var ErrGenerationProviderUnknown = errors.New("builder config: generation provider is invalid")

// ErrGenerationKeyRequired indicates a remote provider configured without credentials.
var ErrGenerationKeyRequired = errors.New("builder config: generation provider requires an api key")

// Config aggregates feature flags and adapter bindings for the builder module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled    bool
	Storage    StorageConfig
	Cache      CacheConfig
	Generation GenerationConfig
	Features   Features
	Logging    LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// GenerationConfig wires the AI content providers.
type GenerationConfig struct {
	Provider      string
	APIKey        string
	Model         string
	BaseURL       string
	ImageProvider string
	ImageKey      string
	ImageBaseURL  string
	Timeout       time.Duration
}

// Features toggles module functionality.
type Features struct {
	Generation bool
	Limits     bool
	Cache      bool
	Logger     bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for embedding hosts.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Generation: GenerationConfig{
			Provider:      "noop",
			ImageProvider: "noop",
			Timeout:       30 * time.Second,
		},
		Features: Features{
			Limits: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.Cache && normalizeProvider(cfg.Storage.Provider) != "bun" {
		return ErrCacheRequiresStorage
	}
	if cfg.Features.Generation {
		provider := normalizeProvider(cfg.Generation.Provider)
		switch provider {
		case "", "noop", "static":
		case "openai":
			if strings.TrimSpace(cfg.Generation.APIKey) == "" {
				return ErrGenerationKeyRequired
			}
		default:
			return fmt.Errorf("%w: %s", ErrGenerationProviderUnknown, provider)
		}
		imageProvider := normalizeProvider(cfg.Generation.ImageProvider)
		switch imageProvider {
		case "", "noop", "static":
		case "unsplash":
			if strings.TrimSpace(cfg.Generation.ImageKey) == "" {
				return ErrGenerationKeyRequired
			}
		default:
			return fmt.Errorf("%w: %s", ErrGenerationProviderUnknown, imageProvider)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLogProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLogProvider(provider string) bool {
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
