package digraph

import "slices"

// Set is an insertion-ordered set of vertex keys.
// The zero value is an empty set ready for use.
type Set[K comparable] struct {
	items []K
	index map[K]struct{}
}

// Add inserts v and reports whether it was not already present.
func (s *Set[K]) Add(v K) bool {
	if s.index == nil {
		s.index = make(map[K]struct{})
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set[K]) Contains(v K) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of elements.
func (s *Set[K]) Len() int { return len(s.items) }

// Items returns the elements in insertion order.
// The returned slice is a copy and may be modified freely.
func (s *Set[K]) Items() []K { return slices.Clone(s.items) }
