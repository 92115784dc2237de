// Package editdist computes the multiple-boundary edit distance between
// two boundary strings: the decomposition of their disagreement into
// additions, substitutions, and transpositions.
package editdist

import "segscore/domain/boundary"

// Side marks which coding an unmatched boundary came from.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

// Addition is a boundary label present on exactly one side at a position,
// unresolved by substitution or transposition.
type Addition struct {
	Label boundary.Label `json:"label"`
	Side  Side           `json:"side"`
}

// Substitution pairs one A-only and one B-only label at the same position.
// It counts as a single edit regardless of the label values.
type Substitution struct {
	A boundary.Label `json:"a"`
	B boundary.Label `json:"b"`
}

// Transposition is a boundary label whose presence pattern indicates it
// shifted between two positions within the allowed span rather than being
// independently removed and added.
type Transposition struct {
	Start int            `json:"start"`
	End   int            `json:"end"`
	Label boundary.Label `json:"label"`
}

// Span returns the number of positions the transposition covers,
// endpoints inclusive.
func (t Transposition) Span() int { return t.End - t.Start + 1 }

// Decomposition is the full account of the disagreement between two
// boundary strings: every differing label occurrence appears in exactly
// one addition or as one endpoint of exactly one substitution or
// transposition.
type Decomposition struct {
	Additions      []Addition      `json:"additions"`
	Substitutions  []Substitution  `json:"substitutions"`
	Transpositions []Transposition `json:"transpositions"`
}

// Empty reports whether the two codings agreed completely.
func (d Decomposition) Empty() bool {
	return len(d.Additions) == 0 && len(d.Substitutions) == 0 && len(d.Transpositions) == 0
}

// Count returns the unweighted number of edit operations.
func (d Decomposition) Count() int {
	return len(d.Additions) + len(d.Substitutions) + len(d.Transpositions)
}
