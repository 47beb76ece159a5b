package driven

import (
	"context"
	"time"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// EventQueue transports backing-store mutation events to the index
// worker. Delivery is fire-and-forget; there is no at-least-once
// guarantee and consumers must tolerate missing events (the next full
// rebuild reconciles).
type EventQueue interface {
	// Publish enqueues one event
	Publish(ctx context.Context, event *domain.Event) error

	// Dequeue blocks up to timeout for the next event. It returns
	// (nil, nil) when the timeout elapses with nothing available.
	Dequeue(ctx context.Context, timeout time.Duration) (*domain.Event, error)

	// Ack marks an event as processed
	Ack(ctx context.Context, event *domain.Event) error
}
