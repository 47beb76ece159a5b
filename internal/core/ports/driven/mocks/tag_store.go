package mocks

import (
	"context"
	"sync"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// MockTagStore is an in-memory TagStore for testing.
type MockTagStore struct {
	mu          sync.RWMutex
	nextID      int64
	tags        map[int64]*domain.Tag
	byName      map[string]int64
	aliases     map[string]int64          // alias name -> tag ID
	edges       map[int64]map[int64]bool  // implying -> implied set
	mediaCounts map[int64]int
}

// NewMockTagStore creates a new MockTagStore.
func NewMockTagStore() *MockTagStore {
	return &MockTagStore{
		nextID:      1,
		tags:        make(map[int64]*domain.Tag),
		byName:      make(map[string]int64),
		aliases:     make(map[string]int64),
		edges:       make(map[int64]map[int64]bool),
		mediaCounts: make(map[int64]int),
	}
}

// AddTag is a test helper that registers a tag and returns it.
func (m *MockTagStore) AddTag(name string, rating domain.Rating) *domain.Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	tag := &domain.Tag{ID: m.nextID, Name: name, Rating: rating}
	m.nextID++
	m.tags[tag.ID] = tag
	m.byName[name] = tag.ID
	return tag
}

// SetMediaCount is a test helper fixing the media count of a tag.
func (m *MockTagStore) SetMediaCount(tagID int64, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mediaCounts[tagID] = count
}

// view returns a copy of the tag with alias and edge sets filled in.
// Callers must hold at least a read lock.
func (m *MockTagStore) view(id int64) *domain.Tag {
	tag, ok := m.tags[id]
	if !ok {
		return nil
	}
	out := &domain.Tag{ID: tag.ID, Name: tag.Name, Rating: tag.Rating}
	for alias, tagID := range m.aliases {
		if tagID == id {
			out.Aliases = append(out.Aliases, alias)
		}
	}
	for implied := range m.edges[id] {
		out.Implying = append(out.Implying, implied)
	}
	for implying, implied := range m.edges {
		if implied[id] {
			out.ImpliedBy = append(out.ImpliedBy, implying)
		}
	}
	return out
}

func (m *MockTagStore) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tag := m.view(id)
	if tag == nil {
		return nil, domain.ErrNotFound
	}
	return tag, nil
}

func (m *MockTagStore) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byName[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m.view(id), nil
}

func (m *MockTagStore) FindByNames(ctx context.Context, names []string) ([]*domain.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Tag
	for _, name := range names {
		if id, ok := m.byName[name]; ok {
			out = append(out, m.view(id))
		}
	}
	return out, nil
}

func (m *MockTagStore) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Tag
	for _, id := range ids {
		if tag := m.view(id); tag != nil {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (m *MockTagStore) FindAliasesByNames(ctx context.Context, names []string) ([]*domain.Alias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Alias
	for _, name := range names {
		if tagID, ok := m.aliases[name]; ok {
			out = append(out, &domain.Alias{Name: name, TagID: tagID})
		}
	}
	return out, nil
}

func (m *MockTagStore) Rename(ctx context.Context, id int64, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tag, ok := m.tags[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.byName, tag.Name)
	tag.Name = newName
	m.byName[newName] = id
	return nil
}

func (m *MockTagStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tag, ok := m.tags[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.byName, tag.Name)
	delete(m.tags, id)
	delete(m.edges, id)
	for _, implied := range m.edges {
		delete(implied, id)
	}
	for alias, tagID := range m.aliases {
		if tagID == id {
			delete(m.aliases, alias)
		}
	}
	return nil
}

func (m *MockTagStore) CountMedia(ctx context.Context, id int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mediaCounts[id], nil
}

func (m *MockTagStore) CreateAlias(ctx context.Context, tagID int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[tagID]; !ok {
		return domain.ErrNotFound
	}
	m.aliases[name] = tagID
	return nil
}

func (m *MockTagStore) DeleteAlias(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.aliases, name)
	return nil
}

func (m *MockTagStore) HasImplication(ctx context.Context, implyingID, impliedID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.edges[implyingID][impliedID], nil
}

func (m *MockTagStore) CreateImplication(ctx context.Context, implyingID, impliedID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.edges[implyingID] == nil {
		m.edges[implyingID] = make(map[int64]bool)
	}
	m.edges[implyingID][impliedID] = true
	return nil
}

func (m *MockTagStore) DeleteImplication(ctx context.Context, implyingID, impliedID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.edges[implyingID], impliedID)
	return nil
}

func (m *MockTagStore) ListImplications(ctx context.Context) ([]domain.ImplicationEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.ImplicationEdge
	for implying, implied := range m.edges {
		for id := range implied {
			out = append(out, domain.ImplicationEdge{ImplyingID: implying, ImpliedID: id})
		}
	}
	return out, nil
}
