package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
)

// Ensure Queue implements EventQueue
var _ driven.EventQueue = (*Queue)(nil)

// Queue implements EventQueue on PostgreSQL using SKIP LOCKED.
// This is the fallback transport when Redis is not available for
// queuing; dequeue polls instead of blocking.
type Queue struct {
	db *sql.DB

	// PollInterval is how often Dequeue re-checks for events while
	// waiting out its timeout.
	PollInterval time.Duration
}

// NewQueue creates a new PostgreSQL-backed event queue.
// Assumes the index_events table exists (see schema.sql).
func NewQueue(db *sql.DB) *Queue {
	return &Queue{db: db, PollInterval: 250 * time.Millisecond}
}

// Publish inserts one event.
func (q *Queue) Publish(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return errors.New("event is required")
	}
	data, err := event.Encode()
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx,
		`INSERT INTO index_events (payload, created_at) VALUES ($1, $2)`,
		data, time.Now())
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Dequeue claims the oldest unclaimed event, polling until the timeout
// elapses. Returns (nil, nil) when nothing arrives in time.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.Event, error) {
	deadline := time.Now().Add(timeout)
	for {
		event, err := q.tryDequeue(ctx)
		if err != nil || event != nil {
			return event, err
		}
		if time.Now().After(deadline) {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(q.PollInterval):
		}
	}
}

func (q *Queue) tryDequeue(ctx context.Context) (*domain.Event, error) {
	var id int64
	var payload []byte
	err := q.db.QueryRowContext(ctx, `
		UPDATE index_events SET claimed_at = $1
		WHERE id = (
			SELECT id FROM index_events
			WHERE claimed_at IS NULL
			ORDER BY id
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING id, payload
	`, time.Now()).Scan(&id, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim event: %w", err)
	}

	event, err := domain.DecodeEvent(payload)
	if err != nil {
		// Malformed row; delete it so it does not wedge the queue.
		q.db.ExecContext(ctx, `DELETE FROM index_events WHERE id = $1`, id)
		return nil, nil
	}
	event.QueueID = strconv.FormatInt(id, 10)
	return event, nil
}

// Ack deletes a processed event.
func (q *Queue) Ack(ctx context.Context, event *domain.Event) error {
	if event == nil || event.QueueID == "" {
		return nil
	}
	id, err := strconv.ParseInt(event.QueueID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid queue id %q: %w", event.QueueID, err)
	}
	if _, err := q.db.ExecContext(ctx, `DELETE FROM index_events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to ack event: %w", err)
	}
	return nil
}
