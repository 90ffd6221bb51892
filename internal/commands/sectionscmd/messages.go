package sectionscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/sections"
)

const (
	generateSectionMessageType  = "builder.sections.generate"
	sortSectionsMessageType     = "builder.sections.sort"
	duplicateSectionMessageType = "builder.sections.duplicate"
)

// GenerateSectionCommand triggers one-shot content generation for a section.
type GenerateSectionCommand struct {
	SectionID uuid.UUID `json:"section_id"`
	Category  string    `json:"category"`
	Prompt    string    `json:"prompt"`
	Image     bool      `json:"image"`
}

// Type implements command.Message.
func (GenerateSectionCommand) Type() string { return generateSectionMessageType }

// Validate satisfies command.Message.
func (m GenerateSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.SectionID, validation.By(requireUUID("builder.sections.generate.section_id_required", "section id is required"))),
	)
}

// SortSectionsCommand applies a batch of section position assignments.
type SortSectionsCommand struct {
	Pairs []sections.SortPair `json:"pairs"`
}

// Type implements command.Message.
func (SortSectionsCommand) Type() string { return sortSectionsMessageType }

// Validate satisfies command.Message.
func (m SortSectionsCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Pairs, validation.Required.Error("at least one sort pair is required"), validation.By(func(any) error {
			for _, pair := range m.Pairs {
				if pair.ID == uuid.Nil {
					return validation.NewError("builder.sections.sort.id_required", "sort pair id is required")
				}
				if pair.Position < 0 {
					return validation.NewError("builder.sections.sort.position_invalid", "sort position cannot be negative")
				}
			}
			return nil
		})),
	)
}

// DuplicateSectionCommand clones a section with its items.
type DuplicateSectionCommand struct {
	SectionID uuid.UUID `json:"section_id"`
}

// Type implements command.Message.
func (DuplicateSectionCommand) Type() string { return duplicateSectionMessageType }

// Validate satisfies command.Message.
func (m DuplicateSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.SectionID, validation.By(requireUUID("builder.sections.duplicate.section_id_required", "section id is required"))),
	)
}

func requireUUID(code, message string) validation.RuleFunc {
	return func(value any) error {
		id, ok := value.(uuid.UUID)
		if !ok || id == uuid.Nil {
			return validation.NewError(code, message)
		}
		return nil
	}
}
