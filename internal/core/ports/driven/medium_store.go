package driven

import (
	"context"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// MediumStore handles canonical medium persistence (PostgreSQL).
type MediumStore interface {
	// Get retrieves a medium by ID
	Get(ctx context.Context, id int64) (*domain.Medium, error)

	// GetTagIDs returns the IDs of the tags directly assigned to a medium
	GetTagIDs(ctx context.Context, id int64) ([]int64, error)

	// ListAll returns every canonical medium
	ListAll(ctx context.Context) ([]*domain.Medium, error)

	// Count returns the total medium count
	Count(ctx context.Context) (int, error)
}
