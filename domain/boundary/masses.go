package boundary

import (
	"segscore/domain/core"
)

// DefaultLabel is the boundary type used when a coding is produced from
// plain segment masses, which carry no type information of their own.
const DefaultLabel Label = 1

// FromMasses converts a sequence of segment masses into a boundary string.
// A coding of masses [5 3 5] covers 13 units and has 12 potential boundary
// positions; positions 4 and 7 (zero-based) carry the default label, all
// others are empty. Masses must be positive.
func FromMasses(masses []int) (String, error) {
	total := 0
	for i, m := range masses {
		if m < 1 {
			return nil, core.NewInvalidMassError(i, m)
		}
		total += m
	}
	if total < 1 {
		return String{}, nil
	}

	bs := make(String, total-1)
	for i := range bs {
		bs[i] = NewSet()
	}
	pos := 0
	for _, m := range masses[:len(masses)-1] {
		pos += m
		bs[pos-1] = NewSet(DefaultLabel)
	}
	return bs, nil
}

// PotentialBoundaries returns the number of potential boundary positions
// implied by a mass sequence.
func PotentialBoundaries(masses []int) int {
	total := 0
	for _, m := range masses {
		total += m
	}
	if total < 1 {
		return 0
	}
	return total - 1
}

// Units returns the number of minimal units covered by a mass sequence.
func Units(masses []int) int {
	total := 0
	for _, m := range masses {
		total += m
	}
	return total
}

// Positions returns the unit offsets at which internal boundaries sit.
// For masses [5 3 5] the boundaries fall after units 5 and 8.
func Positions(masses []int) []int {
	out := make([]int, 0, len(masses))
	pos := 0
	for i, m := range masses {
		pos += m
		if i < len(masses)-1 {
			out = append(out, pos)
		}
	}
	return out
}
