package driven

import (
	"context"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// SnapshotStore persists the serialized index snapshot under a fixed
// key (Redis). Exactly one logical snapshot is authoritative at any
// time; concurrent cycles may still load and write back independent
// copies, last writer wins.
type SnapshotStore interface {
	// Load retrieves the current snapshot. A missing snapshot yields
	// an empty index, not an error.
	Load(ctx context.Context) (*domain.Index, error)

	// Save replaces the stored snapshot
	Save(ctx context.Context, index *domain.Index) error
}
