package domain

import "testing"

func TestIndex_PutGetRemove(t *testing.T) {
	x := NewIndex()

	if x.Get(1) != nil {
		t.Error("expected nil for missing entry")
	}

	m := testMedium(1, RatingSafe, NewTagSet("a"))
	x.Put(m)

	if got := x.Get(1); got != m {
		t.Error("expected stored entry back")
	}
	if x.Len() != 1 {
		t.Errorf("expected length 1, got %d", x.Len())
	}

	x.Remove(1)
	if x.Get(1) != nil {
		t.Error("expected entry gone after Remove")
	}

	// Removing a missing entry is a no-op
	x.Remove(42)
}

func TestIndex_Replace(t *testing.T) {
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("old")))

	x.Replace(map[int64]*IndexedMedium{
		2: testMedium(2, RatingSafe, NewTagSet("new")),
	})

	if x.Get(1) != nil {
		t.Error("expected old entry gone after Replace")
	}
	if x.Get(2) == nil {
		t.Error("expected new entry after Replace")
	}
}

func TestIndex_AllSortsByDescendingID(t *testing.T) {
	x := NewIndex()
	x.Put(testMedium(2, RatingSafe, NewTagSet()))
	x.Put(testMedium(5, RatingSafe, NewTagSet()))
	x.Put(testMedium(1, RatingSafe, NewTagSet()))

	all := x.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].ID != 5 || all[1].ID != 2 || all[2].ID != 1 {
		t.Errorf("expected [5 2 1], got [%d %d %d]", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestIndex_RenameTag(t *testing.T) {
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("old"), "implied"))
	x.Put(testMedium(2, RatingSafe, NewTagSet("other")))

	x.RenameTag("old", "new")

	m := x.Get(1)
	if m.Innate.Has("old") || !m.Innate.Has("new") {
		t.Errorf("expected innate rename, got %v", m.Innate.Names())
	}
	if m.Searchable.Has("old") || !m.Searchable.Has("new") {
		t.Errorf("expected searchable rename, got %v", m.Searchable.Names())
	}
	if !m.Searchable.Has("implied") {
		t.Error("expected unrelated searchable tag untouched")
	}

	untouched := x.Get(2)
	if !untouched.Innate.Has("other") || untouched.Innate.Has("new") {
		t.Errorf("expected other entry untouched, got %v", untouched.Innate.Names())
	}
}

func TestIndex_RenameTag_SearchableOnly(t *testing.T) {
	// A tag present only via implication renames in Searchable alone.
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("cat"), "animal"))

	x.RenameTag("animal", "creature")

	m := x.Get(1)
	if m.Innate.Has("creature") {
		t.Error("expected rename not to touch innate")
	}
	if !m.Searchable.Has("creature") || m.Searchable.Has("animal") {
		t.Errorf("expected searchable rename, got %v", m.Searchable.Names())
	}
}

func TestIndex_AddAlias(t *testing.T) {
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("cat")))
	x.Put(testMedium(2, RatingSafe, NewTagSet("dog")))

	x.AddAlias("cat", "kitty")

	if !x.Get(1).Searchable.Has("kitty") {
		t.Error("expected alias on tagged entry")
	}
	// Aliases are never innate
	if x.Get(1).Innate.Has("kitty") {
		t.Error("expected alias not to be innate")
	}
	if x.Get(2).Searchable.Has("kitty") {
		t.Error("expected alias absent from untagged entry")
	}
}

func TestIndex_RemoveAlias(t *testing.T) {
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("cat"), "kitty"))
	x.Put(testMedium(2, RatingSafe, NewTagSet("dog")))

	x.RemoveAlias("kitty")

	if x.Get(1).Searchable.Has("kitty") {
		t.Error("expected alias stripped")
	}
	if !x.Get(1).Searchable.Has("cat") {
		t.Error("expected base tag untouched")
	}
}

func TestIndex_AddImplication(t *testing.T) {
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("cat")))
	x.Put(testMedium(2, RatingSafe, NewTagSet("dog")))

	x.AddImplication("cat", "animal")

	if !x.Get(1).Searchable.Has("animal") {
		t.Error("expected implied tag on carrying entry")
	}
	if x.Get(1).Innate.Has("animal") {
		t.Error("expected implied tag not to be innate")
	}
	if x.Get(2).Searchable.Has("animal") {
		t.Error("expected implied tag absent from non-carrying entry")
	}
}

func TestIndex_AddImplication_OneHopOnly(t *testing.T) {
	// Only the directly implied tag is added; the implied tag's own
	// implications wait for the next full rebuild.
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("cat"), "animal"))

	x.AddImplication("animal", "lifeform")

	m := x.Get(1)
	if !m.Searchable.Has("lifeform") {
		t.Error("expected one-hop implied tag")
	}
}

func TestIndex_RemoveImplication(t *testing.T) {
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("cat"), "animal"))
	x.Put(testMedium(2, RatingSafe, NewTagSet("dog"), "animal"))

	x.RemoveImplication("cat", "animal")

	if x.Get(1).Searchable.Has("animal") {
		t.Error("expected implied tag removed")
	}
	if !x.Get(2).Searchable.Has("animal") {
		t.Error("expected non-carrying entry untouched")
	}
}

func TestIndex_RemoveImplication_NeverStripsInnate(t *testing.T) {
	// The implied tag is also directly assigned; removing the edge
	// must not strip it.
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("cat", "animal")))

	x.RemoveImplication("cat", "animal")

	m := x.Get(1)
	if !m.Searchable.Has("animal") {
		t.Error("expected innate tag to survive edge removal")
	}
	for name := range m.Innate {
		if !m.Searchable.Has(name) {
			t.Errorf("innate tag %q missing from searchable", name)
		}
	}
}

func TestIndex_MutatorsKeepInnateSubsetOfSearchable(t *testing.T) {
	x := NewIndex()
	x.Put(testMedium(1, RatingSafe, NewTagSet("a", "b"), "c"))
	x.Put(testMedium(2, RatingSafe, NewTagSet("b", "c")))

	x.AddImplication("a", "d")
	x.AddAlias("b", "bee")
	x.RemoveImplication("a", "c")
	x.RenameTag("b", "b2")
	x.RemoveAlias("bee")

	for _, m := range x.All() {
		for name := range m.Innate {
			if !m.Searchable.Has(name) {
				t.Errorf("medium %d: innate tag %q missing from searchable", m.ID, name)
			}
		}
	}
}
