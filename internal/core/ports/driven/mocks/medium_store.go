package mocks

import (
	"context"
	"sync"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// MockMediumStore is an in-memory MediumStore for testing.
type MockMediumStore struct {
	mu     sync.RWMutex
	media  map[int64]*domain.Medium
	tagIDs map[int64][]int64

	// FailListAll makes ListAll return this error, simulating an
	// unreachable backing store during a full rebuild.
	FailListAll error
}

// NewMockMediumStore creates a new MockMediumStore.
func NewMockMediumStore() *MockMediumStore {
	return &MockMediumStore{
		media:  make(map[int64]*domain.Medium),
		tagIDs: make(map[int64][]int64),
	}
}

// AddMedium is a test helper registering a medium with its tag IDs.
func (m *MockMediumStore) AddMedium(medium *domain.Medium, tagIDs ...int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.media[medium.ID] = medium
	m.tagIDs[medium.ID] = tagIDs
}

// RemoveMedium is a test helper deleting a medium.
func (m *MockMediumStore) RemoveMedium(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.media, id)
	delete(m.tagIDs, id)
}

func (m *MockMediumStore) Get(ctx context.Context, id int64) (*domain.Medium, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	medium, ok := m.media[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return medium, nil
}

func (m *MockMediumStore) GetTagIDs(ctx context.Context, id int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.media[id]; !ok {
		return nil, domain.ErrNotFound
	}
	return append([]int64(nil), m.tagIDs[id]...), nil
}

func (m *MockMediumStore) ListAll(ctx context.Context) ([]*domain.Medium, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailListAll != nil {
		return nil, m.FailListAll
	}
	out := make([]*domain.Medium, 0, len(m.media))
	for _, medium := range m.media {
		out = append(out, medium)
	}
	return out, nil
}

func (m *MockMediumStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.media), nil
}
