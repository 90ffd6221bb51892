package commands

import (
	"errors"

	"github.com/goliatone/go-sitebuilder/internal/commands/sectionscmd"
	"github.com/goliatone/go-sitebuilder/internal/commands/sitescmd"
	"github.com/goliatone/go-sitebuilder/internal/di"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI tooling.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the command handlers exposed by the provided
// container and optionally registers them with registry/dispatcher integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	logger := logging.CommandsLogger(provider)

	// Section commands.
	if service := container.SectionService(); service != nil {
		register(sectionscmd.NewSortSectionsHandler(service, logger))
		register(sectionscmd.NewDuplicateSectionHandler(service, logger))
	}

	// Generation commands.
	if service := container.GenerationService(); service != nil && cfg.Features.Generation {
		register(sectionscmd.NewGenerateSectionHandler(service, logger))
	}

	// Site commands.
	if service := container.SiteService(); service != nil {
		register(sitescmd.NewGenerateSiteHandler(service, logger))
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured and required features enabled")
	}

	return result, errs
}
