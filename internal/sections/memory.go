package sections

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// memoryStore keeps sections and their items behind one lock so create and
// delete cascades stay atomic.
type memoryStore struct {
	mu       sync.RWMutex
	sections map[uuid.UUID]*Section
	items    map[uuid.UUID]*SectionItem
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sections: make(map[uuid.UUID]*Section),
		items:    make(map[uuid.UUID]*SectionItem),
	}
}

// NewMemoryRepositories constructs section and item repositories sharing one
// in-memory store.
func NewMemoryRepositories() (SectionRepository, SectionItemRepository) {
	store := newMemoryStore()
	return &memorySectionRepository{store: store}, &memorySectionItemRepository{store: store}
}

type memorySectionRepository struct {
	store *memoryStore
}

func (m *memorySectionRepository) Create(_ context.Context, section *Section, items []*SectionItem) (*Section, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cloned := cloneSection(section)
	cloned.Items = nil
	s.sections[cloned.ID] = cloned

	for _, item := range items {
		itemClone := cloneItem(item)
		itemClone.SectionID = cloned.ID
		s.items[itemClone.ID] = itemClone
	}

	return s.getLocked(cloned.ID)
}

func (m *memorySectionRepository) GetByID(_ context.Context, id uuid.UUID) (*Section, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.getLocked(id)
}

func (m *memorySectionRepository) ListByPage(_ context.Context, pageID uuid.UUID) ([]*Section, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Section, 0)
	for _, record := range s.sections {
		if record.PageID != pageID {
			continue
		}
		section := cloneSection(record)
		section.Items = s.itemsForLocked(record.ID)
		out = append(out, section)
	}
	sortSections(out)
	return out, nil
}

func (m *memorySectionRepository) Update(_ context.Context, section *Section) (*Section, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sections[section.ID]; !ok {
		return nil, &NotFoundError{Resource: "section", Key: section.ID.String()}
	}
	cloned := cloneSection(section)
	cloned.Items = nil
	s.sections[cloned.ID] = cloned
	return s.getLocked(cloned.ID)
}

func (m *memorySectionRepository) UpdatePositions(_ context.Context, pairs []SortPair) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Whole batch or nothing: verify every id before touching any row.
	for _, pair := range pairs {
		if _, ok := s.sections[pair.ID]; !ok {
			return &NotFoundError{Resource: "section", Key: pair.ID.String()}
		}
	}
	for _, pair := range pairs {
		s.sections[pair.ID].Position = pair.Position
	}
	return nil
}

func (m *memorySectionRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sections[id]; !ok {
		return &NotFoundError{Resource: "section", Key: id.String()}
	}
	delete(s.sections, id)
	for itemID, item := range s.items {
		if item.SectionID == id {
			delete(s.items, itemID)
		}
	}
	return nil
}

type memorySectionItemRepository struct {
	store *memoryStore
}

func (m *memorySectionItemRepository) Create(_ context.Context, item *SectionItem) (*SectionItem, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sections[item.SectionID]; !ok {
		return nil, &NotFoundError{Resource: "section", Key: item.SectionID.String()}
	}
	cloned := cloneItem(item)
	s.items[cloned.ID] = cloned
	return cloneItem(cloned), nil
}

func (m *memorySectionItemRepository) GetByID(_ context.Context, id uuid.UUID) (*SectionItem, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.items[id]
	if !ok {
		return nil, &NotFoundError{Resource: "section_item", Key: id.String()}
	}
	return cloneItem(record), nil
}

func (m *memorySectionItemRepository) ListBySection(_ context.Context, sectionID uuid.UUID) ([]*SectionItem, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsForLocked(sectionID), nil
}

func (m *memorySectionItemRepository) Update(_ context.Context, item *SectionItem) (*SectionItem, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return nil, &NotFoundError{Resource: "section_item", Key: item.ID.String()}
	}
	cloned := cloneItem(item)
	s.items[cloned.ID] = cloned
	return cloneItem(cloned), nil
}

func (m *memorySectionItemRepository) UpdatePositions(_ context.Context, pairs []SortPair) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pair := range pairs {
		if _, ok := s.items[pair.ID]; !ok {
			return &NotFoundError{Resource: "section_item", Key: pair.ID.String()}
		}
	}
	for _, pair := range pairs {
		s.items[pair.ID].Position = pair.Position
	}
	return nil
}

func (m *memorySectionItemRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return &NotFoundError{Resource: "section_item", Key: id.String()}
	}
	delete(s.items, id)
	return nil
}

func (m *memorySectionItemRepository) DeleteBySection(_ context.Context, sectionID uuid.UUID) error {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for itemID, item := range s.items {
		if item.SectionID == sectionID {
			delete(s.items, itemID)
		}
	}
	return nil
}

func (s *memoryStore) getLocked(id uuid.UUID) (*Section, error) {
	record, ok := s.sections[id]
	if !ok {
		return nil, &NotFoundError{Resource: "section", Key: id.String()}
	}
	out := cloneSection(record)
	out.Items = s.itemsForLocked(id)
	return out, nil
}

func (s *memoryStore) itemsForLocked(sectionID uuid.UUID) []*SectionItem {
	items := make([]*SectionItem, 0)
	for _, item := range s.items {
		if item.SectionID == sectionID {
			items = append(items, cloneItem(item))
		}
	}
	sortItems(items)
	return items
}

func sortSections(list []*Section) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Position != list[j].Position {
			return list[i].Position < list[j].Position
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID.String() < list[j].ID.String()
	})
}

func sortItems(list []*SectionItem) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Position != list[j].Position {
			return list[i].Position < list[j].Position
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID.String() < list[j].ID.String()
	})
}
