package domain

import (
	"strings"
	"unicode"
)

// Tag is a canonical tag. Its name is globally unique among tag names
// and alias names. Implying/ImpliedBy hold the edges of the implication
// graph; the edge relation must stay acyclic.
type Tag struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Rating    Rating   `json:"rating"`
	Aliases   []string `json:"aliases,omitempty"`
	Implying  []int64  `json:"implying,omitempty"`   // tags this tag implies
	ImpliedBy []int64  `json:"implied_by,omitempty"` // tags that imply this tag
}

// Alias maps an alternate name 1:1 to a tag. Alias names live in the
// same uniqueness namespace as canonical tag names.
type Alias struct {
	Name  string `json:"name"`
	TagID int64  `json:"tag_id"`
}

// ImplicationEdge is one directed "implying implies implied" edge of
// the implication graph.
type ImplicationEdge struct {
	ImplyingID int64 `json:"implying_id"`
	ImpliedID  int64 `json:"implied_id"`
}

// IsOrphan reports whether the tag may be deleted: no media reference
// it, it has no aliases, and nothing implies it.
func (t *Tag) IsOrphan(mediaCount int) bool {
	return mediaCount == 0 && len(t.Aliases) == 0 && len(t.ImpliedBy) == 0
}

// ValidateTagName checks that a name is usable as a canonical tag or
// alias name. Names are lowercase, non-empty and contain no whitespace.
func ValidateTagName(name string) error {
	if name == "" {
		return ErrInvalidInput
	}
	for _, r := range name {
		if unicode.IsSpace(r) {
			return ErrInvalidInput
		}
		if unicode.IsUpper(r) {
			return ErrInvalidInput
		}
	}
	return nil
}

// TagCategory returns the category prefix of a tag name, e.g.
// "artist" for "artist:somebody", or "" when the name has no category.
func TagCategory(name string) string {
	idx := strings.Index(name, ":")
	if idx <= 0 {
		return ""
	}
	return name[:idx]
}
