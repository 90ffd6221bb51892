package di

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/sections"
)

// pageResolverAdapter answers section-create page checks through the site
// service. Late binding through the container breaks the construction cycle
// between the two services.
type pageResolverAdapter struct {
	container *Container
}

func (a *pageResolverAdapter) PageExists(ctx context.Context, pageID uuid.UUID) (bool, error) {
	if a.container == nil || a.container.siteSvc == nil {
		return true, nil
	}
	return a.container.siteSvc.PageExists(ctx, pageID)
}

// sectionPurgerAdapter cascades page deletion into the sections store.
type sectionPurgerAdapter struct {
	container *Container
}

func (a *sectionPurgerAdapter) PurgePage(ctx context.Context, pageID uuid.UUID) error {
	if a.container == nil || a.container.sectionRepo == nil {
		return nil
	}
	records, err := a.container.sectionRepo.ListByPage(ctx, pageID)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := a.container.sectionRepo.Delete(ctx, record.ID); err != nil {
			return err
		}
	}
	return nil
}

// sectionSeederAdapter materializes default sections for the site generator.
type sectionSeederAdapter struct {
	container *Container
}

func (a *sectionSeederAdapter) Seed(ctx context.Context, pageID uuid.UUID, typeKey string) error {
	if a.container == nil || a.container.sectionSvc == nil {
		return nil
	}
	_, err := a.container.sectionSvc.Create(ctx, sections.CreateInput{
		PageID: pageID,
		Type:   typeKey,
	})
	return err
}

// limitGateAdapter enforces plan feature limits on site and page creation.
type limitGateAdapter struct {
	container *Container
}

func (a *limitGateAdapter) Allow(ctx context.Context, ownerID uuid.UUID, code string, used int) error {
	if a.container == nil || a.container.planSvc == nil || a.container.planResolver == nil {
		return nil
	}
	planID, err := a.container.planResolver(ownerID)
	if err != nil {
		return err
	}
	if planID == uuid.Nil {
		return nil
	}
	return a.container.planSvc.CheckLimit(ctx, planID, code, used)
}
