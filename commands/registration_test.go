package commands

import (
	"testing"

	sitebuilder "github.com/goliatone/go-sitebuilder"
	corecmd "github.com/goliatone/go-sitebuilder/internal/commands"
	"github.com/goliatone/go-sitebuilder/internal/commands/sectionscmd"
	"github.com/goliatone/go-sitebuilder/internal/di"
)

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	cfg := sitebuilder.DefaultConfig()
	cfg.Features.Generation = true

	registry := &recordingRegistry{}
	dispatcher := &recordingDispatcher{}

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{
		Registry:   registry,
		Dispatcher: dispatcher,
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) == 0 {
		t.Fatal("expected command handlers to be constructed")
	}
	if len(result.Handlers) != len(registry.handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(dispatcher.subscriptions) != len(result.Handlers) {
		t.Fatalf("expected one dispatcher subscription per handler, got %d of %d", len(dispatcher.subscriptions), len(result.Handlers))
	}

	var hasGenerate bool
	for _, handler := range result.Handlers {
		if _, ok := handler.(*corecmd.Handler[sectionscmd.GenerateSectionCommand]); ok {
			hasGenerate = true
		}
	}
	if !hasGenerate {
		t.Fatal("expected section generate handler when generation feature is enabled")
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	cfg := sitebuilder.DefaultConfig()

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) == 0 {
		t.Fatal("expected handlers to be built even without registrars")
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsSkipsGenerateWhenDisabled(t *testing.T) {
	cfg := sitebuilder.DefaultConfig()
	cfg.Features.Generation = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	for _, handler := range result.Handlers {
		if _, ok := handler.(*corecmd.Handler[sectionscmd.GenerateSectionCommand]); ok {
			t.Fatal("expected generate handler not to be registered when generation is disabled")
		}
	}
}

func TestRegisterContainerCommandsNilContainer(t *testing.T) {
	result, err := RegisterContainerCommands(nil, RegistrationOptions{})
	if err != nil {
		t.Fatalf("expected nil container to be a no-op, got %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers for nil container, got %d", len(result.Handlers))
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingDispatcher struct {
	handlers      []any
	subscriptions []*recordingSubscription
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	d.handlers = append(d.handlers, handler)
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
