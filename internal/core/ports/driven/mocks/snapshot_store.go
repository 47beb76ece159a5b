package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// MockSnapshotStore is an in-memory SnapshotStore. Load and Save go
// through a JSON round trip so tests see the same copy semantics as
// the Redis adapter: loaded snapshots are independent of the stored
// bytes until saved back.
type MockSnapshotStore struct {
	mu        sync.Mutex
	data      []byte
	SaveCount int
}

// NewMockSnapshotStore creates a new MockSnapshotStore.
func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{}
}

func (m *MockSnapshotStore) Load(ctx context.Context) (*domain.Index, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return domain.NewIndex(), nil
	}
	var index domain.Index
	if err := json.Unmarshal(m.data, &index); err != nil {
		return nil, err
	}
	if index.Media == nil {
		index.Media = make(map[int64]*domain.IndexedMedium)
	}
	return &index, nil
}

func (m *MockSnapshotStore) Save(ctx context.Context, index *domain.Index) error {
	data, err := json.Marshal(index)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.SaveCount++
	return nil
}
