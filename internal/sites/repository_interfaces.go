package sites

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SortPair submits a new position for one page in a reorder batch.
type SortPair struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// SiteRepository exposes persistence operations for sites.
type SiteRepository interface {
	Create(ctx context.Context, site *Site) (*Site, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Site, error)
	GetByAddress(ctx context.Context, address string) (*Site, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Site, error)
	Update(ctx context.Context, site *Site) (*Site, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PageRepository exposes persistence operations for pages.
type PageRepository interface {
	Create(ctx context.Context, page *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]*Page, error)
	Update(ctx context.Context, page *Page) (*Page, error)
	UpdatePositions(ctx context.Context, pairs []SortPair) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySite(ctx context.Context, siteID uuid.UUID) error
}

// SectionPurger removes every section belonging to a page. The sections
// module satisfies it; site/page deletion cascades through here.
type SectionPurger interface {
	PurgePage(ctx context.Context, pageID uuid.UUID) error
}

// LimitGate guards create operations against plan feature limits. The plans
// module provides the production implementation.
type LimitGate interface {
	Allow(ctx context.Context, ownerID uuid.UUID, code string, used int) error
}

// NotFoundError is returned when a site resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
