package sites

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NewMemorySiteRepository constructs an "in memory" site repository.
func NewMemorySiteRepository() SiteRepository {
	return &memorySiteRepository{
		byID:      make(map[uuid.UUID]*Site),
		byAddress: make(map[string]uuid.UUID),
	}
}

type memorySiteRepository struct {
	mu        sync.RWMutex
	byID      map[uuid.UUID]*Site
	byAddress map[string]uuid.UUID
}

func (m *memorySiteRepository) Create(_ context.Context, site *Site) (*Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneSite(site)
	cloned.Pages = nil
	m.byID[cloned.ID] = cloned
	if cloned.Address != "" {
		m.byAddress[strings.ToLower(cloned.Address)] = cloned.ID
	}
	return cloneSite(cloned), nil
}

func (m *memorySiteRepository) GetByID(_ context.Context, id uuid.UUID) (*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "site", Key: id.String()}
	}
	return cloneSite(record), nil
}

func (m *memorySiteRepository) GetByAddress(_ context.Context, address string) (*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byAddress[strings.ToLower(strings.TrimSpace(address))]
	if !ok {
		return nil, &NotFoundError{Resource: "site", Key: address}
	}
	return cloneSite(m.byID[id]), nil
}

func (m *memorySiteRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Site, 0)
	for _, record := range m.byID {
		if record.OwnerID == ownerID {
			out = append(out, cloneSite(record))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (m *memorySiteRepository) Update(_ context.Context, site *Site) (*Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[site.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "site", Key: site.ID.String()}
	}
	if existing.Address != "" {
		delete(m.byAddress, strings.ToLower(existing.Address))
	}
	cloned := cloneSite(site)
	cloned.Pages = nil
	m.byID[cloned.ID] = cloned
	if cloned.Address != "" {
		m.byAddress[strings.ToLower(cloned.Address)] = cloned.ID
	}
	return cloneSite(cloned), nil
}

func (m *memorySiteRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "site", Key: id.String()}
	}
	delete(m.byID, id)
	if record.Address != "" {
		delete(m.byAddress, strings.ToLower(record.Address))
	}
	return nil
}

// NewMemoryPageRepository constructs an "in memory" page repository.
func NewMemoryPageRepository() PageRepository {
	return &memoryPageRepository{
		byID: make(map[uuid.UUID]*Page),
	}
}

type memoryPageRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Page
}

func (m *memoryPageRepository) Create(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := clonePage(page)
	m.byID[cloned.ID] = cloned
	return clonePage(cloned), nil
}

func (m *memoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	return clonePage(record), nil
}

func (m *memoryPageRepository) ListBySite(_ context.Context, siteID uuid.UUID) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Page, 0)
	for _, record := range m.byID {
		if record.SiteID == siteID {
			out = append(out, clonePage(record))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (m *memoryPageRepository) Update(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[page.ID]; !ok {
		return nil, &NotFoundError{Resource: "page", Key: page.ID.String()}
	}
	cloned := clonePage(page)
	m.byID[cloned.ID] = cloned
	return clonePage(cloned), nil
}

func (m *memoryPageRepository) UpdatePositions(_ context.Context, pairs []SortPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, pair := range pairs {
		if _, ok := m.byID[pair.ID]; !ok {
			return &NotFoundError{Resource: "page", Key: pair.ID.String()}
		}
	}
	for _, pair := range pairs {
		m.byID[pair.ID].Position = pair.Position
	}
	return nil
}

func (m *memoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "page", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryPageRepository) DeleteBySite(_ context.Context, siteID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.byID {
		if record.SiteID == siteID {
			delete(m.byID, id)
		}
	}
	return nil
}
