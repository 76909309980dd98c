// Package tagset holds the distinct tags seen in a corpus.
package tagset

import (
	"sort"
)

// Set is an unordered set of tags. The zero value is not usable; call New.
type Set struct {
	m map[string]struct{}
}

func New() *Set {
	return &Set{
		m: make(map[string]struct{}),
	}
}

// Insert adds tag and reports whether the set changed.
func (s *Set) Insert(tag string) (modified bool) {
	if _, found := s.m[tag]; !found {
		s.m[tag] = struct{}{}
		modified = true
	}

	return modified
}

func (s *Set) InsertSlice(tags []string) (modified bool) {
	for _, tag := range tags {
		if s.Insert(tag) {
			modified = true
		}
	}

	return modified
}

func (s *Set) Has(tag string) bool {
	_, ok := s.m[tag]
	return ok
}

func (s *Set) Len() int {
	return len(s.m)
}

// Items returns the tags in no particular order.
func (s *Set) Items() []string {
	items := make([]string, 0, len(s.m))
	for tag := range s.m {
		items = append(items, tag)
	}
	return items
}

// Sorted returns the tags in lexicographic byte order.
func (s *Set) Sorted() []string {
	items := s.Items()
	sort.Strings(items)
	return items
}

func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for tag := range s.m {
		if !other.Has(tag) {
			return false
		}
	}
	return true
}
