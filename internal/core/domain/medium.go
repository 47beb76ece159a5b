package domain

// Medium is the canonical record of one catalogued media item as stored
// in the backing store. Tag associations live in a separate table and
// are loaded alongside when denormalizing.
type Medium struct {
	ID            int64   `json:"id"`
	Hash          string  `json:"hash"` // content fingerprint
	MimeType      string  `json:"mime_type"`
	Rating        Rating  `json:"rating"`
	AspectRatio   float64 `json:"aspect_ratio"`
	TinyThumbnail []byte  `json:"tiny_thumbnail,omitempty"`
}

// IndexedMedium is the denormalized form held by the in-memory index.
//
// Innate holds the names of directly assigned tags. Searchable holds
// Innate plus the transitive implication closure and every alias of
// every tag in that closure. Searchable must always be rebuildable from
// Innate plus current graph state; Innate ⊆ Searchable at all times.
type IndexedMedium struct {
	ID          int64   `json:"id"`
	Hash        string  `json:"hash"`
	MimeType    string  `json:"mime_type"`
	Rating      Rating  `json:"rating"`
	AspectRatio float64 `json:"aspect_ratio"`
	Innate      TagSet  `json:"innate"`
	Searchable  TagSet  `json:"searchable"`
}

// InnateWithCategory counts innate tag names carrying the given
// category prefix.
func (m *IndexedMedium) InnateWithCategory(category string) int {
	count := 0
	for name := range m.Innate {
		if TagCategory(name) == category {
			count++
		}
	}
	return count
}

// MediumInfo is the lightweight diagnostic listing returned by status
// queries.
type MediumInfo struct {
	ID     int64  `json:"id"`
	Rating Rating `json:"rating"`
	Hash   string `json:"hash"`
}
