package services

import (
	"context"
	"fmt"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
)

// Builder assembles denormalized index entries from canonical records.
// Build is a pure function of backing-store state at call time.
type Builder struct {
	tags driven.TagStore
}

// NewBuilder creates a new Builder.
func NewBuilder(tags driven.TagStore) *Builder {
	return &Builder{tags: tags}
}

// Closure returns every tag name transitively reachable from the seed
// tag IDs: breadth-first over implication edges, plus every alias of
// every tag reached. This is the ground truth the incremental index
// updates approximate.
func (b *Builder) Closure(ctx context.Context, tagIDs []int64) (domain.TagSet, error) {
	names := domain.NewTagSet()
	visited := make(map[int64]struct{}, len(tagIDs))
	frontier := append([]int64(nil), tagIDs...)

	for len(frontier) > 0 {
		var next []int64
		for _, id := range frontier {
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			next = append(next, id)
		}
		if len(next) == 0 {
			break
		}

		tags, err := b.tags.FindByIDs(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("failed to load closure frontier: %w", err)
		}

		frontier = frontier[:0]
		for _, tag := range tags {
			names.Add(tag.Name)
			for _, alias := range tag.Aliases {
				names.Add(alias)
			}
			for _, implied := range tag.Implying {
				if _, seen := visited[implied]; !seen {
					frontier = append(frontier, implied)
				}
			}
		}
	}

	return names, nil
}

// Build denormalizes one medium: Innate is the names of its directly
// assigned tags, Searchable is Innate plus the full closure.
func (b *Builder) Build(ctx context.Context, medium *domain.Medium, tagIDs []int64) (*domain.IndexedMedium, error) {
	innate := domain.NewTagSet()
	seeds, err := b.tags.FindByIDs(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load innate tags: %w", err)
	}
	for _, tag := range seeds {
		innate.Add(tag.Name)
	}

	closure, err := b.Closure(ctx, tagIDs)
	if err != nil {
		return nil, err
	}

	return &domain.IndexedMedium{
		ID:          medium.ID,
		Hash:        medium.Hash,
		MimeType:    medium.MimeType,
		Rating:      medium.Rating,
		AspectRatio: medium.AspectRatio,
		Innate:      innate,
		Searchable:  innate.Union(closure),
	}, nil
}
