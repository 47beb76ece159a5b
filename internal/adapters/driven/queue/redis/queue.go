package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
)

const (
	// Stream and consumer group names
	eventStream = "beevenue:events"
	eventGroup  = "beevenue:indexers"

	// Default consumer name prefix
	consumerPrefix = "indexer-"
)

// Verify interface compliance
var _ driven.EventQueue = (*Queue)(nil)

// Queue implements EventQueue using a Redis Stream with a consumer
// group. Events are serialized as one JSON field per message; the
// stream entry ID doubles as the acknowledgment handle.
type Queue struct {
	client       *redis.Client
	consumerName string
}

// NewQueue creates a new Redis-backed event queue.
// The consumerName should be unique per worker instance.
func NewQueue(client *redis.Client, consumerName string) (*Queue, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if consumerName == "" {
		consumerName = fmt.Sprintf("%s%d", consumerPrefix, time.Now().UnixNano())
	}

	q := &Queue{client: client, consumerName: consumerName}

	// Create consumer group if it doesn't exist
	ctx := context.Background()
	err := q.client.XGroupCreateMkStream(ctx, eventStream, eventGroup, "0").Err()
	if err != nil && !isGroupExistsError(err) {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return q, nil
}

// Publish appends one event to the stream.
func (q *Queue) Publish(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return errors.New("event is required")
	}
	data, err := event.Encode()
	if err != nil {
		return err
	}

	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: eventStream,
		Values: map[string]interface{}{"event": data},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next event. Returns (nil, nil)
// when nothing arrives in time.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.Event, error) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    eventGroup,
		Consumer: q.consumerName,
		Streams:  []string{eventStream, ">"},
		Count:    1,
		Block:    timeout,
	}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read event stream: %w", err)
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			raw, ok := message.Values["event"].(string)
			if !ok {
				// Malformed message; drop it so it does not wedge the group.
				q.client.XAck(ctx, eventStream, eventGroup, message.ID)
				continue
			}
			event, err := domain.DecodeEvent([]byte(raw))
			if err != nil {
				q.client.XAck(ctx, eventStream, eventGroup, message.ID)
				continue
			}
			event.QueueID = message.ID
			return event, nil
		}
	}
	return nil, nil
}

// Ack acknowledges a processed event.
func (q *Queue) Ack(ctx context.Context, event *domain.Event) error {
	if event == nil || event.QueueID == "" {
		return nil
	}
	if err := q.client.XAck(ctx, eventStream, eventGroup, event.QueueID).Err(); err != nil {
		return fmt.Errorf("failed to ack event: %w", err)
	}
	return nil
}

// isGroupExistsError checks for the BUSYGROUP error Redis returns when
// the consumer group already exists.
func isGroupExistsError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "BUSYGROUP")
}
