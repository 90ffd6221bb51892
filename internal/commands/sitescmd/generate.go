package sitescmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/commands"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

const generateSiteMessageType = "builder.sites.generate"

// GenerateSiteCommand builds a complete starter site: the site, its default
// page, and one section per requested type.
type GenerateSiteCommand struct {
	OwnerID  uuid.UUID `json:"owner_id"`
	Address  string    `json:"address"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Sections []string  `json:"sections"`
}

// Type implements command.Message.
func (GenerateSiteCommand) Type() string { return generateSiteMessageType }

// Validate satisfies command.Message.
func (m GenerateSiteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.OwnerID, validation.By(func(value any) error {
			id, ok := value.(uuid.UUID)
			if !ok || id == uuid.Nil {
				return validation.NewError("builder.sites.generate.owner_required", "owner id is required")
			}
			return nil
		})),
		validation.Field(&m.Address, validation.Required.Error("address is required"), validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("builder.sites.generate.address_required", "address is required")
			}
			return nil
		})),
		validation.Field(&m.Name, validation.Required.Error("name is required")),
	)
}

// NewGenerateSiteHandler wires the site generator behind the shared command concerns.
func NewGenerateSiteHandler(service sites.Service, logger interfaces.Logger) *commands.Handler[GenerateSiteCommand] {
	return commands.NewHandler(func(ctx context.Context, msg GenerateSiteCommand) error {
		_, err := service.GenerateSite(ctx, sites.GenerateSiteInput{
			OwnerID:  msg.OwnerID,
			Address:  msg.Address,
			Name:     msg.Name,
			Category: msg.Category,
			Sections: msg.Sections,
		})
		return err
	},
		commands.WithLogger[GenerateSiteCommand](commands.EnsureLogger(logger)),
		commands.WithOperation[GenerateSiteCommand]("sites.generate"),
	)
}
