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

// Ensure tagService implements TagService
var _ driving.TagService = (*tagService)(nil)

// tagService maintains tags, aliases and the implication graph. The
// implication edge relation is kept acyclic: every insert runs a
// reachability check before mutating. Durable mutations go to the tag
// store; the matching index event is published after the mutation
// succeeds.
type tagService struct {
	tags   driven.TagStore
	events driven.EventQueue
	logger *slog.Logger
}

// NewTagService creates a new TagService.
func NewTagService(tags driven.TagStore, events driven.EventQueue, logger *slog.Logger) driving.TagService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tagService{tags: tags, events: events, logger: logger}
}

// AddImplication inserts the edge implying->implied after checking it
// keeps the graph acyclic.
func (s *tagService) AddImplication(ctx context.Context, implying, implied string) error {
	implyingTag, err := s.tags.GetByName(ctx, implying)
	if err != nil {
		return err
	}
	impliedTag, err := s.tags.GetByName(ctx, implied)
	if err != nil {
		return err
	}

	exists, err := s.tags.HasImplication(ctx, implyingTag.ID, impliedTag.ID)
	if err != nil {
		return fmt.Errorf("failed to check implication: %w", err)
	}
	if exists {
		return nil
	}

	// Walk outgoing edges from the implied tag; reaching the implying
	// tag means the new edge would close a cycle. The implying tag is
	// seeded as visited so a self-edge is caught too.
	cyclic, err := s.reachable(ctx, impliedTag.ID, implyingTag.ID)
	if err != nil {
		return err
	}
	if cyclic {
		return domain.ErrCycleDetected
	}

	if err := s.tags.CreateImplication(ctx, implyingTag.ID, impliedTag.ID); err != nil {
		return fmt.Errorf("failed to create implication: %w", err)
	}

	s.publish(ctx, domain.NewImplicationAddedEvent(implyingTag.Name, impliedTag.Name))
	return nil
}

// RemoveImplication deletes the edge implying->implied. An edge that
// cannot be resolved is treated as absent and the call is a no-op.
func (s *tagService) RemoveImplication(ctx context.Context, implying, implied string) error {
	implyingTag, err := s.tags.GetByName(ctx, implying)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	impliedTag, err := s.tags.GetByName(ctx, implied)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	exists, err := s.tags.HasImplication(ctx, implyingTag.ID, impliedTag.ID)
	if err != nil {
		return fmt.Errorf("failed to check implication: %w", err)
	}
	if !exists {
		return nil
	}

	if err := s.tags.DeleteImplication(ctx, implyingTag.ID, impliedTag.ID); err != nil {
		return fmt.Errorf("failed to delete implication: %w", err)
	}

	// Removing the edge may leave the implied tag unreferenced.
	s.cleanupOrphan(ctx, impliedTag.ID)

	s.publish(ctx, domain.NewImplicationRemovedEvent(implyingTag.Name, impliedTag.Name))
	return nil
}

// ListImplications returns the full edge set as name pairs, implying
// name to implied names.
func (s *tagService) ListImplications(ctx context.Context) (map[string][]string, error) {
	edges, err := s.tags.ListImplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list implications: %w", err)
	}

	idSet := make(map[int64]struct{}, len(edges)*2)
	for _, edge := range edges {
		idSet[edge.ImplyingID] = struct{}{}
		idSet[edge.ImpliedID] = struct{}{}
	}
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	tags, err := s.tags.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve edge tags: %w", err)
	}
	names := make(map[int64]string, len(tags))
	for _, tag := range tags {
		names[tag.ID] = tag.Name
	}

	out := make(map[string][]string)
	for _, edge := range edges {
		implying, ok1 := names[edge.ImplyingID]
		implied, ok2 := names[edge.ImpliedID]
		if !ok1 || !ok2 {
			continue
		}
		out[implying] = append(out[implying], implied)
	}
	return out, nil
}

// Rename changes a tag's canonical name. The new name must be valid
// and free in the shared tag/alias namespace.
func (s *tagService) Rename(ctx context.Context, oldName, newName string) error {
	if err := domain.ValidateTagName(newName); err != nil {
		return err
	}
	tag, err := s.tags.GetByName(ctx, oldName)
	if err != nil {
		return err
	}
	if err := s.checkNameFree(ctx, newName); err != nil {
		return err
	}
	if err := s.tags.Rename(ctx, tag.ID, newName); err != nil {
		return fmt.Errorf("failed to rename tag: %w", err)
	}

	s.publish(ctx, domain.NewTagRenamedEvent(oldName, newName))
	return nil
}

// AddAlias attaches an alias to a tag. Alias names share the
// uniqueness namespace with canonical tag names.
func (s *tagService) AddAlias(ctx context.Context, tagName, alias string) error {
	if err := domain.ValidateTagName(alias); err != nil {
		return err
	}
	tag, err := s.tags.GetByName(ctx, tagName)
	if err != nil {
		return err
	}
	if err := s.checkNameFree(ctx, alias); err != nil {
		return err
	}
	if err := s.tags.CreateAlias(ctx, tag.ID, alias); err != nil {
		return fmt.Errorf("failed to create alias: %w", err)
	}

	s.publish(ctx, domain.NewAliasAddedEvent(tag.Name, alias))
	return nil
}

// RemoveAlias detaches an alias. Unknown aliases are a no-op.
func (s *tagService) RemoveAlias(ctx context.Context, alias string) error {
	existing, err := s.tags.FindAliasesByNames(ctx, []string{alias})
	if err != nil {
		return fmt.Errorf("failed to look up alias: %w", err)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := s.tags.DeleteAlias(ctx, alias); err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}

	s.publish(ctx, domain.NewAliasRemovedEvent(alias))
	return nil
}

// reachable walks outgoing implication edges breadth-first from the
// given tag and reports whether target is reached.
func (s *tagService) reachable(ctx context.Context, from, target int64) (bool, error) {
	visited := map[int64]struct{}{target: {}}
	frontier := []int64{from}

	for len(frontier) > 0 {
		var load []int64
		for _, id := range frontier {
			if id == target {
				return true, nil
			}
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			load = append(load, id)
		}
		if len(load) == 0 {
			return false, nil
		}

		tags, err := s.tags.FindByIDs(ctx, load)
		if err != nil {
			return false, fmt.Errorf("failed to load tags for cycle check: %w", err)
		}
		frontier = frontier[:0]
		for _, tag := range tags {
			frontier = append(frontier, tag.Implying...)
		}
	}
	return false, nil
}

// cleanupOrphan deletes the tag if nothing references it anymore: no
// media, no aliases, no incoming implications.
func (s *tagService) cleanupOrphan(ctx context.Context, tagID int64) {
	tag, err := s.tags.Get(ctx, tagID)
	if err != nil {
		return
	}
	count, err := s.tags.CountMedia(ctx, tagID)
	if err != nil {
		return
	}
	if !tag.IsOrphan(count) {
		return
	}
	if err := s.tags.Delete(ctx, tagID); err != nil {
		s.logger.Warn("failed to delete orphaned tag", "tag_id", tagID, "error", err)
	}
}

// checkNameFree verifies a name is unused among canonical tag names
// and alias names.
func (s *tagService) checkNameFree(ctx context.Context, name string) error {
	if _, err := s.tags.GetByName(ctx, name); err == nil {
		return domain.ErrInvalidInput
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	aliases, err := s.tags.FindAliasesByNames(ctx, []string{name})
	if err != nil {
		return fmt.Errorf("failed to check alias namespace: %w", err)
	}
	if len(aliases) > 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// publish sends an index event. Event delivery is fire-and-forget; a
// failed publish is logged and the durable mutation stands, the next
// full rebuild reconciles the index.
func (s *tagService) publish(ctx context.Context, event *domain.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish index event", "type", event.Type, "error", err)
	}
}
