package services

import (
	"context"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
)

// SnapshotSession mediates index access for one logical operation
// cycle. The first Acquire loads the snapshot from the store; later
// calls in the same cycle return the same in-memory object, so reads
// and writes within a cycle are consistent with each other. Release
// writes back at most once, and only when some Acquire asked for
// write access.
//
// This is read-memoize/write-once-at-exit, not a transaction: two
// concurrent cycles can both load the prior snapshot, mutate their own
// copies and write back, and the later Release silently overwrites the
// earlier one. Accepted tradeoff; tagging mutations are rare next to
// searches.
type SnapshotSession struct {
	store driven.SnapshotStore
	index *domain.Index
	dirty bool
}

// NewSnapshotSession creates a session over the given store. One
// session per operation cycle; sessions are not safe for concurrent
// use.
func NewSnapshotSession(store driven.SnapshotStore) *SnapshotSession {
	return &SnapshotSession{store: store}
}

// Acquire returns the cycle's snapshot, loading it on first call. The
// dirty flag is OR-ed across calls with forWrite set.
func (s *SnapshotSession) Acquire(ctx context.Context, forWrite bool) (*domain.Index, error) {
	if s.index == nil {
		index, err := s.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		s.index = index
	}
	s.dirty = s.dirty || forWrite
	return s.index, nil
}

// Replace swaps in a freshly rebuilt index and marks the session
// dirty, without loading the previous snapshot first.
func (s *SnapshotSession) Replace(index *domain.Index) {
	s.index = index
	s.dirty = true
}

// Release writes the snapshot back if any Acquire in this cycle was
// for write. Called exactly once at cycle end.
func (s *SnapshotSession) Release(ctx context.Context) error {
	if s.index == nil || !s.dirty {
		return nil
	}
	return s.store.Save(ctx, s.index)
}
