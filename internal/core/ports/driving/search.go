package driving

import (
	"context"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// SearchService evaluates boolean tag queries against the index.
type SearchService interface {
	// Search parses the query tokens, conjoins the caller's censorship
	// terms and returns the requested page of matches, sorted by
	// descending medium ID.
	Search(ctx context.Context, tokens []string, caller domain.CallerContext, pageNumber, pageSize int) (domain.Pagination[*domain.IndexedMedium], error)
}
