package domain

import (
	"fmt"
	"math"
	"testing"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b TagSet
		want float64
	}{
		{"identical", NewTagSet("a", "b"), NewTagSet("a", "b"), 1.0},
		{"disjoint", NewTagSet("a"), NewTagSet("b"), 0.0},
		{"partial", NewTagSet("a", "b"), NewTagSet("b", "c"), 1.0 / 3.0},
		{"both empty", NewTagSet(), NewTagSet(), 0.0},
		{"one empty", NewTagSet("a"), NewTagSet(), 0.0},
	}

	for _, tt := range tests {
		if got := Jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.want, got)
		}
	}
}

func TestRankSimilar(t *testing.T) {
	target := testMedium(1, RatingSafe, NewTagSet("a", "b"))
	candidates := []*IndexedMedium{
		target, // must be skipped
		testMedium(2, RatingSafe, NewTagSet("a", "b")),      // 1.0
		testMedium(3, RatingSafe, NewTagSet("a", "c")),      // 1/3
		testMedium(4, RatingSafe, NewTagSet("x", "y", "z")), // 0
	}

	ids := RankSimilar(target, candidates)
	if len(ids) != 3 {
		t.Fatalf("expected 3 results, got %d: %v", len(ids), ids)
	}
	if ids[0] != 2 || ids[1] != 3 || ids[2] != 4 {
		t.Errorf("expected [2 3 4], got %v", ids)
	}
}

func TestRankSimilar_LimitsToFive(t *testing.T) {
	target := testMedium(100, RatingSafe, NewTagSet("a"))

	var candidates []*IndexedMedium
	for i := int64(1); i <= 10; i++ {
		candidates = append(candidates, testMedium(i, RatingSafe, NewTagSet("a")))
	}

	ids := RankSimilar(target, candidates)
	if len(ids) != SimilarLimit {
		t.Fatalf("expected %d results, got %d", SimilarLimit, len(ids))
	}
}

func TestRankSimilar_TiesBreakByAscendingID(t *testing.T) {
	target := testMedium(100, RatingSafe, NewTagSet("a"))

	// All candidates score identically; insertion order should not
	// leak into the result.
	candidates := []*IndexedMedium{
		testMedium(9, RatingSafe, NewTagSet("a")),
		testMedium(3, RatingSafe, NewTagSet("a")),
		testMedium(7, RatingSafe, NewTagSet("a")),
		testMedium(1, RatingSafe, NewTagSet("a")),
		testMedium(5, RatingSafe, NewTagSet("a")),
		testMedium(8, RatingSafe, NewTagSet("a")),
		testMedium(2, RatingSafe, NewTagSet("a")),
	}

	ids := RankSimilar(target, candidates)
	want := []int64{1, 2, 3, 5, 7}
	if fmt.Sprint(ids) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
}

func TestRankSimilar_ScoreBeatsID(t *testing.T) {
	target := testMedium(100, RatingSafe, NewTagSet("a", "b"))
	candidates := []*IndexedMedium{
		testMedium(1, RatingSafe, NewTagSet("a", "c")), // 1/3
		testMedium(2, RatingSafe, NewTagSet("a", "b")), // 1.0
	}

	ids := RankSimilar(target, candidates)
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Errorf("expected [2 1], got %v", ids)
	}
}

func TestRankSimilar_NoCandidates(t *testing.T) {
	target := testMedium(1, RatingSafe, NewTagSet("a"))

	ids := RankSimilar(target, []*IndexedMedium{target})
	if len(ids) != 0 {
		t.Errorf("expected empty result, got %v", ids)
	}
}
