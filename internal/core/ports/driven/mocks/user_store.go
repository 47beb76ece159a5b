package mocks

import (
	"context"
	"sync"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// MockUserStore is an in-memory UserStore for testing.
type MockUserStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]*domain.User
}

// NewMockUserStore creates a new MockUserStore.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{nextID: 1, users: make(map[string]*domain.User)}
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *MockUserStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}
