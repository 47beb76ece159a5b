package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driving"
)

// Ensure indexService implements IndexService
var _ driving.IndexService = (*indexService)(nil)

// indexService maintains the denormalized medium index. Each public
// operation is one snapshot cycle: acquire, mutate or read, release.
type indexService struct {
	media     driven.MediumStore
	builder   *Builder
	snapshots driven.SnapshotStore
	logger    *slog.Logger
}

// NewIndexService creates a new IndexService.
func NewIndexService(media driven.MediumStore, builder *Builder, snapshots driven.SnapshotStore, logger *slog.Logger) driving.IndexService {
	if logger == nil {
		logger = slog.Default()
	}
	return &indexService{media: media, builder: builder, snapshots: snapshots, logger: logger}
}

// Reindex rebuilds the whole index from the backing store. The new
// entry set is built completely before it replaces the snapshot, and
// any backing-store failure aborts without touching the stored
// snapshot. Full rebuilds touch every medium and are meant as a
// maintenance operation, not a per-request one.
func (s *indexService) Reindex(ctx context.Context) (int, error) {
	media, err := s.media.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list media for rebuild: %w", err)
	}

	entries := make(map[int64]*domain.IndexedMedium, len(media))
	for _, medium := range media {
		tagIDs, err := s.media.GetTagIDs(ctx, medium.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to load tags for medium %d: %w", medium.ID, err)
		}
		built, err := s.builder.Build(ctx, medium, tagIDs)
		if err != nil {
			return 0, fmt.Errorf("failed to build medium %d: %w", medium.ID, err)
		}
		entries[medium.ID] = built
	}

	session := NewSnapshotSession(s.snapshots)
	index := domain.NewIndex()
	index.Replace(entries)
	session.Replace(index)
	if err := session.Release(ctx); err != nil {
		return 0, fmt.Errorf("failed to persist rebuilt index: %w", err)
	}

	s.logger.Info("index rebuilt", "media", len(entries))
	return len(entries), nil
}

// Status lists every indexed medium for diagnostics.
func (s *indexService) Status(ctx context.Context) ([]domain.MediumInfo, error) {
	session := NewSnapshotSession(s.snapshots)
	index, err := session.Acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer session.Release(ctx)

	infos := make([]domain.MediumInfo, 0, index.Len())
	for _, m := range index.All() {
		infos = append(infos, domain.MediumInfo{ID: m.ID, Rating: m.Rating, Hash: m.Hash})
	}
	return infos, nil
}

// Apply runs the incremental handler for one event inside a snapshot
// cycle. Handlers never fail on missing referents: the operation
// degrades to a no-op and the next full rebuild reconciles. Only
// snapshot load/store failures surface.
func (s *indexService) Apply(ctx context.Context, event *domain.Event) error {
	session := NewSnapshotSession(s.snapshots)
	index, err := session.Acquire(ctx, true)
	if err != nil {
		return err
	}

	switch event.Type {
	case domain.EventMediumChanged:
		s.applyMediumChanged(ctx, index, event.MediumID)
	case domain.EventMediumDeleted:
		index.Remove(event.MediumID)
	case domain.EventTagRenamed:
		index.RenameTag(event.OldName, event.NewName)
	case domain.EventAliasAdded:
		index.AddAlias(event.TagName, event.AliasName)
	case domain.EventAliasRemoved:
		index.RemoveAlias(event.AliasName)
	case domain.EventImplicationAdded:
		index.AddImplication(event.Implying, event.Implied)
	case domain.EventImplicationRemoved:
		index.RemoveImplication(event.Implying, event.Implied)
	default:
		s.logger.Warn("unknown index event", "type", event.Type)
	}

	return session.Release(ctx)
}

// applyMediumChanged drops and rebuilds one entry. A medium that no
// longer exists canonically stays removed.
func (s *indexService) applyMediumChanged(ctx context.Context, index *domain.Index, id int64) {
	index.Remove(id)

	medium, err := s.media.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("failed to reload medium, entry dropped", "medium_id", id, "error", err)
		return
	}

	tagIDs, err := s.media.GetTagIDs(ctx, id)
	if err != nil {
		s.logger.Warn("failed to reload medium tags, entry dropped", "medium_id", id, "error", err)
		return
	}

	built, err := s.builder.Build(ctx, medium, tagIDs)
	if err != nil {
		s.logger.Warn("failed to rebuild medium, entry dropped", "medium_id", id, "error", err)
		return
	}
	index.Put(built)
}
