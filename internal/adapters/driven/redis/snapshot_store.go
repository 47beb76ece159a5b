package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// snapshotKey is the fixed key the authoritative index snapshot lives
// under. There is exactly one logical snapshot at any time.
const snapshotKey = "beevenue:index"

// SnapshotStore implements driven.SnapshotStore using Redis. The
// snapshot is stored as one JSON blob; load and save move the whole
// index, which keeps snapshot cycles simple at the cost of write size.
type SnapshotStore struct {
	client *redis.Client
}

// NewSnapshotStore creates a new Redis-backed SnapshotStore
func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

// Load retrieves the current snapshot. A missing key yields an empty
// index.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.Index, error) {
	data, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return domain.NewIndex(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var index domain.Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if index.Media == nil {
		index.Media = make(map[int64]*domain.IndexedMedium)
	}
	return &index, nil
}

// Save replaces the stored snapshot
func (s *SnapshotStore) Save(ctx context.Context, index *domain.Index) error {
	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
