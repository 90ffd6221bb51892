package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

const (
	rootModule       = "builder"
	sitesModule      = "builder.sites"
	sectionsModule   = "builder.sections"
	plansModule      = "builder.plans"
	generationModule = "builder.generation"
	commandsModule   = "builder.commands"
	httpModule       = "builder.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// SitesLogger returns the logger namespace reserved for site/page services.
func SitesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sitesModule)
}

// SectionsLogger returns the logger namespace reserved for section services.
func SectionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sectionsModule)
}

// PlansLogger returns the logger namespace reserved for plan services.
func PlansLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, plansModule)
}

// GenerationLogger returns the logger namespace reserved for AI generation.
func GenerationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generationModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// HTTPLogger returns the logger namespace reserved for the admin API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}
func (noopLogger) WithContext(context.Context) interfaces.Logger {
	return noopLogger{}
}
