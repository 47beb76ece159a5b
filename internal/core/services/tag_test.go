package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven/mocks"
)

func newTagServiceForTest() (*mocks.MockTagStore, *mocks.MockEventQueue, *tagService) {
	tags := mocks.NewMockTagStore()
	events := mocks.NewMockEventQueue()
	svc := NewTagService(tags, events, nil).(*tagService)
	return tags, events, svc
}

func TestTagService_AddImplication(t *testing.T) {
	tags, events, svc := newTagServiceForTest()
	cat := tags.AddTag("cat", domain.RatingSafe)
	animal := tags.AddTag("animal", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.AddImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("add implication failed: %v", err)
	}

	has, _ := tags.HasImplication(ctx, cat.ID, animal.ID)
	if !has {
		t.Error("expected edge persisted")
	}

	types := events.PublishedTypes()
	if len(types) != 1 || types[0] != domain.EventImplicationAdded {
		t.Errorf("expected implication_added event, got %v", types)
	}
}

func TestTagService_AddImplication_UnknownTag(t *testing.T) {
	tags, _, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.AddImplication(ctx, "cat", "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.AddImplication(ctx, "ghost", "cat"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTagService_AddImplication_DuplicateIsNoOp(t *testing.T) {
	tags, events, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	tags.AddTag("animal", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.AddImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("duplicate add failed: %v", err)
	}

	if got := len(events.PublishedTypes()); got != 1 {
		t.Errorf("expected one event for duplicate add, got %d", got)
	}
}

func TestTagService_AddImplication_RejectsDirectCycle(t *testing.T) {
	tags, events, svc := newTagServiceForTest()
	cat := tags.AddTag("cat", domain.RatingSafe)
	animal := tags.AddTag("animal", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.AddImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.AddImplication(ctx, "animal", "cat"); !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	// Rejection leaves the graph unchanged.
	has, _ := tags.HasImplication(ctx, animal.ID, cat.ID)
	if has {
		t.Error("expected rejected edge absent")
	}
	has, _ = tags.HasImplication(ctx, cat.ID, animal.ID)
	if !has {
		t.Error("expected original edge intact")
	}
	if got := len(events.PublishedTypes()); got != 1 {
		t.Errorf("expected no event for rejected edge, got %d total", got)
	}
}

func TestTagService_AddImplication_RejectsTransitiveCycle(t *testing.T) {
	tags, _, svc := newTagServiceForTest()
	tags.AddTag("a", domain.RatingSafe)
	tags.AddTag("b", domain.RatingSafe)
	tags.AddTag("c", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.AddImplication(ctx, "a", "b"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.AddImplication(ctx, "b", "c"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.AddImplication(ctx, "c", "a"); !errors.Is(err, domain.ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected closing a->b->c->a, got %v", err)
	}
}

func TestTagService_AddImplication_RejectsSelfEdge(t *testing.T) {
	tags, _, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)

	if err := svc.AddImplication(context.Background(), "cat", "cat"); !errors.Is(err, domain.ErrCycleDetected) {
		t.Errorf("expected ErrCycleDetected for self edge, got %v", err)
	}
}

func TestTagService_RemoveImplication(t *testing.T) {
	tags, events, svc := newTagServiceForTest()
	cat := tags.AddTag("cat", domain.RatingSafe)
	animal := tags.AddTag("animal", domain.RatingSafe)
	tags.SetMediaCount(animal.ID, 2)
	ctx := context.Background()

	if err := svc.AddImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.RemoveImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	has, _ := tags.HasImplication(ctx, cat.ID, animal.ID)
	if has {
		t.Error("expected edge removed")
	}

	types := events.PublishedTypes()
	if len(types) != 2 || types[1] != domain.EventImplicationRemoved {
		t.Errorf("expected implication_removed event, got %v", types)
	}
}

func TestTagService_RemoveImplication_MissingIsNoOp(t *testing.T) {
	tags, events, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	ctx := context.Background()

	// Unknown names and absent edges are both no-ops, not errors.
	if err := svc.RemoveImplication(ctx, "ghost", "cat"); err != nil {
		t.Errorf("expected no error for unknown implying tag, got %v", err)
	}
	if err := svc.RemoveImplication(ctx, "cat", "ghost"); err != nil {
		t.Errorf("expected no error for unknown implied tag, got %v", err)
	}

	tags.AddTag("animal", domain.RatingSafe)
	if err := svc.RemoveImplication(ctx, "cat", "animal"); err != nil {
		t.Errorf("expected no error for absent edge, got %v", err)
	}

	if got := len(events.PublishedTypes()); got != 0 {
		t.Errorf("expected no events for no-ops, got %d", got)
	}
}

func TestTagService_RemoveImplication_CleansUpOrphan(t *testing.T) {
	tags, _, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	animal := tags.AddTag("animal", domain.RatingSafe)
	ctx := context.Background()

	// No media, no aliases: removing the only incoming edge orphans it.
	if err := svc.AddImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.RemoveImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := tags.Get(ctx, animal.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected orphaned tag deleted, got %v", err)
	}
}

func TestTagService_RemoveImplication_KeepsReferencedTag(t *testing.T) {
	tags, _, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	animal := tags.AddTag("animal", domain.RatingSafe)
	tags.SetMediaCount(animal.ID, 1)
	ctx := context.Background()

	if err := svc.AddImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.RemoveImplication(ctx, "cat", "animal"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := tags.Get(ctx, animal.ID); err != nil {
		t.Errorf("expected referenced tag kept, got %v", err)
	}
}

func TestTagService_ListImplications(t *testing.T) {
	tags, _, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	tags.AddTag("dog", domain.RatingSafe)
	tags.AddTag("animal", domain.RatingSafe)
	ctx := context.Background()

	_ = svc.AddImplication(ctx, "cat", "animal")
	_ = svc.AddImplication(ctx, "dog", "animal")

	edges, err := svc.ListImplications(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 implying tags, got %d", len(edges))
	}
	if len(edges["cat"]) != 1 || edges["cat"][0] != "animal" {
		t.Errorf("expected cat -> [animal], got %v", edges["cat"])
	}
	if len(edges["dog"]) != 1 || edges["dog"][0] != "animal" {
		t.Errorf("expected dog -> [animal], got %v", edges["dog"])
	}
}

func TestTagService_Rename(t *testing.T) {
	tags, events, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.Rename(ctx, "cat", "feline"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	if _, err := tags.GetByName(ctx, "feline"); err != nil {
		t.Errorf("expected tag under new name, got %v", err)
	}
	if _, err := tags.GetByName(ctx, "cat"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected old name gone, got %v", err)
	}

	types := events.PublishedTypes()
	if len(types) != 1 || types[0] != domain.EventTagRenamed {
		t.Errorf("expected tag_renamed event, got %v", types)
	}
}

func TestTagService_Rename_Validation(t *testing.T) {
	tags, _, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	tags.AddTag("dog", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.Rename(ctx, "cat", "Bad Name"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad name, got %v", err)
	}
	if err := svc.Rename(ctx, "cat", "dog"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for taken name, got %v", err)
	}
	if err := svc.Rename(ctx, "ghost", "anything"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown tag, got %v", err)
	}
}

func TestTagService_Rename_RejectsAliasName(t *testing.T) {
	tags, _, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	tags.AddTag("dog", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.AddAlias(ctx, "dog", "hound"); err != nil {
		t.Fatalf("add alias failed: %v", err)
	}
	// Alias names share the uniqueness namespace with tag names.
	if err := svc.Rename(ctx, "cat", "hound"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for alias-taken name, got %v", err)
	}
}

func TestTagService_AddAlias(t *testing.T) {
	tags, events, svc := newTagServiceForTest()
	cat := tags.AddTag("cat", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.AddAlias(ctx, "cat", "kitty"); err != nil {
		t.Fatalf("add alias failed: %v", err)
	}

	aliases, _ := tags.FindAliasesByNames(ctx, []string{"kitty"})
	if len(aliases) != 1 || aliases[0].TagID != cat.ID {
		t.Errorf("expected alias persisted, got %v", aliases)
	}

	types := events.PublishedTypes()
	if len(types) != 1 || types[0] != domain.EventAliasAdded {
		t.Errorf("expected alias_added event, got %v", types)
	}
}

func TestTagService_AddAlias_Validation(t *testing.T) {
	tags, _, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	tags.AddTag("dog", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.AddAlias(ctx, "cat", "dog"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for tag-taken alias, got %v", err)
	}
	if err := svc.AddAlias(ctx, "ghost", "kitty"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown tag, got %v", err)
	}
	if err := svc.AddAlias(ctx, "cat", "UPPER"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for invalid alias, got %v", err)
	}
}

func TestTagService_RemoveAlias(t *testing.T) {
	tags, events, svc := newTagServiceForTest()
	tags.AddTag("cat", domain.RatingSafe)
	ctx := context.Background()

	if err := svc.AddAlias(ctx, "cat", "kitty"); err != nil {
		t.Fatalf("add alias failed: %v", err)
	}
	if err := svc.RemoveAlias(ctx, "kitty"); err != nil {
		t.Fatalf("remove alias failed: %v", err)
	}

	aliases, _ := tags.FindAliasesByNames(ctx, []string{"kitty"})
	if len(aliases) != 0 {
		t.Errorf("expected alias gone, got %v", aliases)
	}

	types := events.PublishedTypes()
	if len(types) != 2 || types[1] != domain.EventAliasRemoved {
		t.Errorf("expected alias_removed event, got %v", types)
	}
}

func TestTagService_RemoveAlias_UnknownIsNoOp(t *testing.T) {
	_, events, svc := newTagServiceForTest()

	if err := svc.RemoveAlias(context.Background(), "ghost"); err != nil {
		t.Errorf("expected no error for unknown alias, got %v", err)
	}
	if got := len(events.PublishedTypes()); got != 0 {
		t.Errorf("expected no event, got %d", got)
	}
}
