package sectionscmd

import (
	"context"

	"github.com/goliatone/go-sitebuilder/internal/commands"
	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// NewGenerateSectionHandler wires the generation service behind the shared
// command concerns. Image generation runs after text when requested.
func NewGenerateSectionHandler(service generation.Service, logger interfaces.Logger) *commands.Handler[GenerateSectionCommand] {
	return commands.NewHandler(func(ctx context.Context, msg GenerateSectionCommand) error {
		genCtx := generation.Context{Category: msg.Category, Prompt: msg.Prompt}
		if _, err := service.GenerateText(ctx, msg.SectionID, genCtx); err != nil {
			return err
		}
		if msg.Image {
			if _, err := service.GenerateImage(ctx, msg.SectionID, genCtx); err != nil {
				return err
			}
		}
		return nil
	},
		commands.WithLogger[GenerateSectionCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[GenerateSectionCommand]("sections.generate"),
	)
}

// NewSortSectionsHandler applies position batches through the section service.
func NewSortSectionsHandler(service sections.Service, logger interfaces.Logger) *commands.Handler[SortSectionsCommand] {
	return commands.NewHandler(func(ctx context.Context, msg SortSectionsCommand) error {
		return service.Sort(ctx, msg.Pairs)
	},
		commands.WithLogger[SortSectionsCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[SortSectionsCommand]("sections.sort"),
	)
}

// NewDuplicateSectionHandler clones sections through the section service.
func NewDuplicateSectionHandler(service sections.Service, logger interfaces.Logger) *commands.Handler[DuplicateSectionCommand] {
	return commands.NewHandler(func(ctx context.Context, msg DuplicateSectionCommand) error {
		_, err := service.Duplicate(ctx, msg.SectionID)
		return err
	},
		commands.WithLogger[DuplicateSectionCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[DuplicateSectionCommand]("sections.duplicate"),
	)
}
