package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// MockEventQueue is an in-memory EventQueue for testing. Published
// events are retained for assertions in addition to being queued.
type MockEventQueue struct {
	mu        sync.Mutex
	queue     chan *domain.Event
	Published []*domain.Event
	Acked     []*domain.Event
}

// NewMockEventQueue creates a new MockEventQueue.
func NewMockEventQueue() *MockEventQueue {
	return &MockEventQueue{
		queue: make(chan *domain.Event, 128),
	}
}

func (m *MockEventQueue) Publish(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	m.Published = append(m.Published, event)
	m.mu.Unlock()
	select {
	case m.queue <- event:
	default:
	}
	return nil
}

func (m *MockEventQueue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.Event, error) {
	select {
	case event := <-m.queue:
		return event, nil
	case <-time.After(timeout):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *MockEventQueue) Ack(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Acked = append(m.Acked, event)
	return nil
}

// PublishedTypes returns the types of all published events in order.
func (m *MockEventQueue) PublishedTypes() []domain.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]domain.EventType, 0, len(m.Published))
	for _, e := range m.Published {
		types = append(types, e.Type)
	}
	return types
}
