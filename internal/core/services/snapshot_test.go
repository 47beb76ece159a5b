package services

import (
	"context"
	"testing"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven/mocks"
)

func TestSnapshotSession_MemoizesAcquire(t *testing.T) {
	store := mocks.NewMockSnapshotStore()
	session := NewSnapshotSession(store)
	ctx := context.Background()

	first, err := session.Acquire(ctx, false)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	second, err := session.Acquire(ctx, false)
	if err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}

	if first != second {
		t.Error("expected same index object across acquires in one cycle")
	}
}

func TestSnapshotSession_ReadOnlyCycleDoesNotSave(t *testing.T) {
	store := mocks.NewMockSnapshotStore()
	session := NewSnapshotSession(store)
	ctx := context.Background()

	if _, err := session.Acquire(ctx, false); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if err := session.Release(ctx); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	if store.SaveCount != 0 {
		t.Errorf("expected no save for read-only cycle, got %d", store.SaveCount)
	}
}

func TestSnapshotSession_WritesOnceAtRelease(t *testing.T) {
	store := mocks.NewMockSnapshotStore()
	session := NewSnapshotSession(store)
	ctx := context.Background()

	index, err := session.Acquire(ctx, true)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	index.Put(&domain.IndexedMedium{ID: 1, Innate: domain.NewTagSet(), Searchable: domain.NewTagSet()})

	// Further acquires, write or not, must not trigger extra saves.
	if _, err := session.Acquire(ctx, true); err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}
	if _, err := session.Acquire(ctx, false); err != nil {
		t.Fatalf("third acquire failed: %v", err)
	}

	if store.SaveCount != 0 {
		t.Errorf("expected no save before release, got %d", store.SaveCount)
	}
	if err := session.Release(ctx); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if store.SaveCount != 1 {
		t.Errorf("expected exactly one save, got %d", store.SaveCount)
	}
}

func TestSnapshotSession_DirtyFlagSurvivesReadAcquire(t *testing.T) {
	store := mocks.NewMockSnapshotStore()
	session := NewSnapshotSession(store)
	ctx := context.Background()

	// Write acquire first, read acquire second; the cycle stays dirty.
	if _, err := session.Acquire(ctx, true); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if _, err := session.Acquire(ctx, false); err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}
	if err := session.Release(ctx); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	if store.SaveCount != 1 {
		t.Errorf("expected one save, got %d", store.SaveCount)
	}
}

func TestSnapshotSession_ReleaseWithoutAcquire(t *testing.T) {
	store := mocks.NewMockSnapshotStore()
	session := NewSnapshotSession(store)

	if err := session.Release(context.Background()); err != nil {
		t.Fatalf("expected no error releasing an unused session, got %v", err)
	}
	if store.SaveCount != 0 {
		t.Errorf("expected no save, got %d", store.SaveCount)
	}
}

func TestSnapshotSession_ReplaceMarksDirty(t *testing.T) {
	store := mocks.NewMockSnapshotStore()
	session := NewSnapshotSession(store)
	ctx := context.Background()

	index := domain.NewIndex()
	index.Put(&domain.IndexedMedium{ID: 7, Innate: domain.NewTagSet(), Searchable: domain.NewTagSet()})
	session.Replace(index)

	if err := session.Release(ctx); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if store.SaveCount != 1 {
		t.Errorf("expected one save after replace, got %d", store.SaveCount)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Get(7) == nil {
		t.Error("expected replaced contents persisted")
	}
}

func TestSnapshotSession_LastWriterWins(t *testing.T) {
	store := mocks.NewMockSnapshotStore()
	ctx := context.Background()

	// Two overlapping cycles both load the empty snapshot.
	a := NewSnapshotSession(store)
	b := NewSnapshotSession(store)

	indexA, _ := a.Acquire(ctx, true)
	indexB, _ := b.Acquire(ctx, true)

	indexA.Put(&domain.IndexedMedium{ID: 1, Innate: domain.NewTagSet(), Searchable: domain.NewTagSet()})
	indexB.Put(&domain.IndexedMedium{ID: 2, Innate: domain.NewTagSet(), Searchable: domain.NewTagSet()})

	if err := a.Release(ctx); err != nil {
		t.Fatalf("release a failed: %v", err)
	}
	if err := b.Release(ctx); err != nil {
		t.Fatalf("release b failed: %v", err)
	}

	// The later writer overwrites; cycle a's entry is lost.
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Get(1) != nil {
		t.Error("expected first writer's entry overwritten")
	}
	if loaded.Get(2) == nil {
		t.Error("expected last writer's entry present")
	}
}
