package services

import (
	"context"
	"log/slog"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driving"
)

// Ensure mediumService implements MediumService
var _ driving.MediumService = (*mediumService)(nil)

// mediumService answers visibility-filtered medium reads against the
// snapshot.
type mediumService struct {
	snapshots driven.SnapshotStore
	logger    *slog.Logger
}

// NewMediumService creates a new MediumService.
func NewMediumService(snapshots driven.SnapshotStore, logger *slog.Logger) driving.MediumService {
	if logger == nil {
		logger = slog.Default()
	}
	return &mediumService{snapshots: snapshots, logger: logger}
}

// Get returns one indexed medium. Media hidden from the caller are
// indistinguishable from missing ones.
func (s *mediumService) Get(ctx context.Context, id int64, caller domain.CallerContext) (*domain.IndexedMedium, error) {
	session := NewSnapshotSession(s.snapshots)
	index, err := session.Acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer session.Release(ctx)

	medium := index.Get(id)
	if medium == nil || !caller.CanSee(medium) {
		return nil, domain.ErrNotFound
	}
	return medium, nil
}

// Similar ranks the caller-visible media by Jaccard similarity of
// innate tags against the target and returns at most five, most
// similar first. The target itself is never part of the result.
func (s *mediumService) Similar(ctx context.Context, id int64, caller domain.CallerContext) ([]*domain.IndexedMedium, error) {
	session := NewSnapshotSession(s.snapshots)
	index, err := session.Acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer session.Release(ctx)

	target := index.Get(id)
	if target == nil || !caller.CanSee(target) {
		return nil, domain.ErrNotFound
	}

	var candidates []*domain.IndexedMedium
	for _, medium := range index.All() {
		if medium.ID != id && caller.CanSee(medium) {
			candidates = append(candidates, medium)
		}
	}

	ranked := domain.RankSimilar(target, candidates)
	result := make([]*domain.IndexedMedium, 0, len(ranked))
	for _, rankedID := range ranked {
		if medium := index.Get(rankedID); medium != nil {
			result = append(result, medium)
		}
	}
	return result, nil
}
