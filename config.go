package sitebuilder

import "github.com/goliatone/go-sitebuilder/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
	ErrCacheRequiresStorage      = runtimeconfig.ErrCacheRequiresStorage
	ErrGenerationProviderUnknown = runtimeconfig.ErrGenerationProviderUnknown
	ErrGenerationKeyRequired     = runtimeconfig.ErrGenerationKeyRequired
)

type (
	Config           = runtimeconfig.Config
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	GenerationConfig = runtimeconfig.GenerationConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
