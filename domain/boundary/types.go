// Package boundary models segmentation codings as boundary strings: one
// set of boundary labels per potential boundary position.
package boundary

import "sort"

// Label identifies a kind of boundary that may be present at a potential
// boundary position. Labels are totally ordered so that edit costs between
// label pairs are well defined.
type Label int

// Set is a collection of distinct boundary labels at one position.
//
// Sets handed to the edit-distance core must not be shared with another
// in-flight comparison; the core builds its own working copies before
// mutating anything.
type Set map[Label]struct{}

// NewSet builds a set from the given labels.
func NewSet(labels ...Label) Set {
	s := make(Set, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

// Has reports whether l is a member of the set.
func (s Set) Has(l Label) bool {
	_, ok := s[l]
	return ok
}

// Len returns the number of labels in the set.
func (s Set) Len() int { return len(s) }

// Labels returns the members in ascending order. All algorithms iterate
// sets through this accessor so that scan order is reproducible.
func (s Set) Labels() []Label {
	out := make([]Label, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for l := range s {
		out[l] = struct{}{}
	}
	return out
}

// Equal reports whether both sets contain exactly the same labels.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for l := range s {
		if !o.Has(l) {
			return false
		}
	}
	return true
}

// Minus returns a \ b.
func Minus(a, b Set) Set {
	out := make(Set)
	for l := range a {
		if !b.Has(l) {
			out[l] = struct{}{}
		}
	}
	return out
}

// SymmetricDiff returns the labels present in exactly one of a and b.
func SymmetricDiff(a, b Set) Set {
	out := make(Set)
	for l := range a {
		if !b.Has(l) {
			out[l] = struct{}{}
		}
	}
	for l := range b {
		if !a.Has(l) {
			out[l] = struct{}{}
		}
	}
	return out
}

// Intersect returns the labels present in every given set. With no
// arguments the result is empty.
func Intersect(sets ...Set) Set {
	out := make(Set)
	if len(sets) == 0 {
		return out
	}
	for l := range sets[0] {
		member := true
		for _, s := range sets[1:] {
			if !s.Has(l) {
				member = false
				break
			}
		}
		if member {
			out[l] = struct{}{}
		}
	}
	return out
}

// String is one coding of an item: an ordered sequence of label sets, one
// per potential boundary position.
type String []Set

// Len returns the number of potential boundary positions.
func (bs String) Len() int { return len(bs) }

// Matches counts the label occurrences the two codings agree on,
// position by position. Strings of unequal length contribute matches only
// up to the shorter length; callers that require equal length validate it
// before calling.
func Matches(a, b String) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	matches := 0
	for i := 0; i < n; i++ {
		for l := range a[i] {
			if b[i].Has(l) {
				matches++
			}
		}
	}
	return matches
}
