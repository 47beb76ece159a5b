package domain

import "container/heap"

const (
	// similarHeapCapacity is the bound of the ranking structure; one
	// above the result limit so the minimum can be evicted after each
	// insertion instead of sorting all candidates.
	similarHeapCapacity = 6

	// SimilarLimit is the maximum number of similar media returned.
	SimilarLimit = 5
)

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets score 0.
func Jaccard(a, b TagSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for name := range a {
		if b.Has(name) {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

type similarityEntry struct {
	id    int64
	score float64
}

// similarityHeap is a min-heap by score. Equal scores order by
// descending ID so that eviction keeps the lower IDs, giving the
// documented ascending-ID tie break in the final ranking.
type similarityHeap []similarityEntry

func (h similarityHeap) Len() int { return len(h) }

func (h similarityHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score < h[j].score
	}
	return h[i].id > h[j].id
}

func (h similarityHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *similarityHeap) Push(x any) {
	*h = append(*h, x.(similarityEntry))
}

func (h *similarityHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

// RankSimilar ranks candidates by Jaccard similarity of innate tag
// sets against the target and returns up to SimilarLimit medium IDs in
// descending similarity order. Implied and aliased tags never count
// toward similarity. The target itself is skipped if present among the
// candidates. Ties break by ascending ID.
//
// Cost is O(n log k) with k fixed at the result limit: candidates pass
// through a bounded min-heap whose minimum is evicted whenever the
// heap outgrows the limit.
func RankSimilar(target *IndexedMedium, candidates []*IndexedMedium) []int64 {
	h := make(similarityHeap, 0, similarHeapCapacity)
	heap.Init(&h)

	for _, c := range candidates {
		if c.ID == target.ID {
			continue
		}
		heap.Push(&h, similarityEntry{id: c.ID, score: Jaccard(c.Innate, target.Innate)})
		if h.Len() > SimilarLimit {
			heap.Pop(&h)
		}
	}

	// Drain ascending, then reverse for a descending result.
	drained := make([]similarityEntry, 0, h.Len())
	for h.Len() > 0 {
		drained = append(drained, heap.Pop(&h).(similarityEntry))
	}

	ids := make([]int64, 0, len(drained))
	for i := len(drained) - 1; i >= 0; i-- {
		ids = append(ids, drained[i].id)
	}
	return ids
}
