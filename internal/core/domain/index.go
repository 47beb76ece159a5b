package domain

import "sort"

// Index is the denormalized in-memory medium index. It is the shared
// state one snapshot cycle operates on; it carries no locking of its
// own (see the snapshot session for the cycle discipline).
//
// The incremental mutators below are performance shortcuts over the
// ground truth "rebuild Searchable from Innate plus graph state". They
// never fail: a missing referent degrades to a no-op.
type Index struct {
	Media map[int64]*IndexedMedium `json:"media"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{Media: make(map[int64]*IndexedMedium)}
}

// Get returns the indexed medium for id, or nil.
func (x *Index) Get(id int64) *IndexedMedium {
	return x.Media[id]
}

// Put inserts or replaces one entry.
func (x *Index) Put(m *IndexedMedium) {
	x.Media[m.ID] = m
}

// Remove drops the entry for id if present.
func (x *Index) Remove(id int64) {
	delete(x.Media, id)
}

// Replace swaps the full contents for a freshly built set. The old
// contents are only discarded once the new set is complete, so a failed
// rebuild never leaves a half-replaced index.
func (x *Index) Replace(media map[int64]*IndexedMedium) {
	x.Media = media
}

// Len returns the number of indexed media.
func (x *Index) Len() int {
	return len(x.Media)
}

// All returns the indexed media sorted by descending ID, the canonical
// result order for searches.
func (x *Index) All() []*IndexedMedium {
	media := make([]*IndexedMedium, 0, len(x.Media))
	for _, m := range x.Media {
		media = append(media, m)
	}
	sort.Slice(media, func(i, j int) bool { return media[i].ID > media[j].ID })
	return media
}

// RenameTag rewrites oldName to newName in every entry's Innate and
// Searchable set. Full scan; the graph is not consulted.
func (x *Index) RenameTag(oldName, newName string) {
	for _, m := range x.Media {
		if m.Innate.Has(oldName) {
			m.Innate.Remove(oldName)
			m.Innate.Add(newName)
		}
		if m.Searchable.Has(oldName) {
			m.Searchable.Remove(oldName)
			m.Searchable.Add(newName)
		}
	}
}

// AddAlias adds newAlias to the Searchable set of every entry that can
// already be found under tagName. Aliases are never innate.
func (x *Index) AddAlias(tagName, newAlias string) {
	for _, m := range x.Media {
		if m.Searchable.Has(tagName) {
			m.Searchable.Add(newAlias)
		}
	}
}

// RemoveAlias strips alias from every entry's Searchable set.
func (x *Index) RemoveAlias(alias string) {
	for _, m := range x.Media {
		m.Searchable.Remove(alias)
	}
}

// AddImplication adds implied to the Searchable set of every entry
// that carries implying. Only the directly implied tag is added, not
// its own closure; a full rebuild computes the deep closure.
func (x *Index) AddImplication(implying, implied string) {
	for _, m := range x.Media {
		if m.Searchable.Has(implying) {
			m.Searchable.Add(implied)
		}
	}
}

// RemoveImplication removes implied from the Searchable set of every
// entry that carries both names. The implied tag is removed even when
// it would still be reachable some other way (innate, alias, another
// implication path); the next full rebuild reconciles.
func (x *Index) RemoveImplication(implying, implied string) {
	for _, m := range x.Media {
		if m.Searchable.Has(implying) && m.Searchable.Has(implied) {
			// Never strip an innate tag out of Searchable.
			if !m.Innate.Has(implied) {
				m.Searchable.Remove(implied)
			}
		}
	}
}
