package services

import (
	"context"
	"log/slog"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService evaluates parsed boolean queries against the snapshot.
type searchService struct {
	snapshots driven.SnapshotStore
	logger    *slog.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(snapshots driven.SnapshotStore, logger *slog.Logger) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{snapshots: snapshots, logger: logger}
}

// Search evaluates the conjunction of all parsed terms plus the
// caller's censorship terms over the index. A medium matches only when
// every term applies; there is no partial matching. Results come back
// sorted by descending ID and paginated.
func (s *searchService) Search(ctx context.Context, tokens []string, caller domain.CallerContext, pageNumber, pageSize int) (domain.Pagination[*domain.IndexedMedium], error) {
	session := NewSnapshotSession(s.snapshots)
	index, err := session.Acquire(ctx, false)
	if err != nil {
		return domain.Pagination[*domain.IndexedMedium]{}, err
	}
	defer session.Release(ctx)

	terms := withCensorship(domain.ParseTerms(tokens), caller)

	var matches []*domain.IndexedMedium
	for _, medium := range index.All() {
		if matchesAll(medium, terms) {
			matches = append(matches, medium)
		}
	}

	return domain.Paginate(matches, pageNumber, pageSize), nil
}

// withCensorship conjoins the caller's censorship terms, deduplicating
// against terms the caller already supplied.
func withCensorship(terms []domain.SearchTerm, caller domain.CallerContext) []domain.SearchTerm {
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		seen[term.String()] = struct{}{}
	}
	for _, term := range caller.CensorshipTerms() {
		if _, dup := seen[term.String()]; dup {
			continue
		}
		seen[term.String()] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

func matchesAll(medium *domain.IndexedMedium, terms []domain.SearchTerm) bool {
	for _, term := range terms {
		if !term.AppliesTo(medium) {
			return false
		}
	}
	return true
}
