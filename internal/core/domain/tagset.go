package domain

import (
	"encoding/json"
	"sort"
)

// TagSet is a set of tag names. It serializes as a sorted JSON array so
// index snapshots are stable byte-for-byte.
type TagSet map[string]struct{}

// NewTagSet builds a set from the given names.
func NewTagSet(names ...string) TagSet {
	s := make(TagSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s TagSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts a name.
func (s TagSet) Add(name string) {
	s[name] = struct{}{}
}

// Remove deletes a name if present.
func (s TagSet) Remove(name string) {
	delete(s, name)
}

// Clone returns an independent copy.
func (s TagSet) Clone() TagSet {
	c := make(TagSet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}

// Union returns a new set containing the members of both sets.
func (s TagSet) Union(other TagSet) TagSet {
	u := s.Clone()
	for n := range other {
		u[n] = struct{}{}
	}
	return u
}

// Names returns the members sorted ascending.
func (s TagSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *TagSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewTagSet(names...)
	return nil
}
