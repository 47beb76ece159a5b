package driving

import (
	"context"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// MediumService answers visibility-filtered medium lookups.
type MediumService interface {
	// Get returns the indexed medium, or ErrNotFound when it does not
	// exist or the caller may not see it.
	Get(ctx context.Context, id int64, caller domain.CallerContext) (*domain.IndexedMedium, error)

	// Similar returns up to five media ranked by innate-tag Jaccard
	// similarity, candidates filtered by the caller's visibility.
	Similar(ctx context.Context, id int64, caller domain.CallerContext) ([]*domain.IndexedMedium, error)
}
