package sections

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SortPair submits a new position for one entity in a reorder batch.
type SortPair struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// SectionRepository exposes persistence operations for sections. Operations
// touching a section together with its items are atomic: either every row is
// persisted or none.
type SectionRepository interface {
	Create(ctx context.Context, section *Section, items []*SectionItem) (*Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Section, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error)
	Update(ctx context.Context, section *Section) (*Section, error)
	UpdatePositions(ctx context.Context, pairs []SortPair) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SectionItemRepository exposes persistence operations for section items.
type SectionItemRepository interface {
	Create(ctx context.Context, item *SectionItem) (*SectionItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SectionItem, error)
	ListBySection(ctx context.Context, sectionID uuid.UUID) ([]*SectionItem, error)
	Update(ctx context.Context, item *SectionItem) (*SectionItem, error)
	UpdatePositions(ctx context.Context, pairs []SortPair) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySection(ctx context.Context, sectionID uuid.UUID) error
}

// PageResolver reports whether a page exists. The sites module satisfies it;
// sections only need the existence check when materializing new blocks.
type PageResolver interface {
	PageExists(ctx context.Context, pageID uuid.UUID) (bool, error)
}

// NotFoundError is returned when a section resource cannot be located.
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
