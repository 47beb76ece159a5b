package driving

import (
	"context"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// IndexService maintains the denormalized medium index.
type IndexService interface {
	// Reindex rebuilds the whole index from the backing store and
	// returns the number of indexed media. The previous snapshot stays
	// authoritative if the rebuild fails.
	Reindex(ctx context.Context) (int, error)

	// Status returns a lightweight listing of all indexed media for
	// diagnostics.
	Status(ctx context.Context) ([]domain.MediumInfo, error)

	// Apply runs the incremental handler matching the event type
	// inside one snapshot cycle. Missing referents degrade to a no-op.
	Apply(ctx context.Context, event *domain.Event) error
}
