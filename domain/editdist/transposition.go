package editdist

import "segscore/domain/boundary"

// claim marks one endpoint of an accepted transposition for one label.
type claim struct {
	pos   int
	label boundary.Label
}

// findTranspositions identifies non-overlapping transpositions between two
// boundary strings and removes every label/position pair they consume from
// the difference table.
//
// Scan order is part of the contract: ascending span length, then
// ascending start index, then ascending candidate label. The first
// acceptable interpretation wins; the result is reproducible but not
// globally optimal.
func findTranspositions(a, b boundary.String, spans []int, table *differenceTable) []Transposition {
	claimed := make(map[claim]bool)
	transpositions := []Transposition{}

	for _, n := range spans {
		width := n - 1
		for i := 0; i+width < len(a); i++ {
			j := i + width

			// A label is a transposition candidate at (i, j) when it
			// appears in all four pairwise symmetric differences of the
			// endpoint sets: it exists in A at one endpoint and in B at
			// the other, and nowhere else among the four.
			candidates := boundary.Intersect(
				boundary.SymmetricDiff(a[i], b[i]),
				boundary.SymmetricDiff(a[j], b[j]),
				boundary.SymmetricDiff(a[i], a[j]),
				boundary.SymmetricDiff(b[i], b[j]),
			)

			for _, l := range candidates.Labels() {
				if claimed[claim{i, l}] || claimed[claim{j, l}] {
					continue
				}
				if wouldRemoveSubstitutions(i, j, l, table) {
					continue
				}

				transpositions = append(transpositions, Transposition{Start: i, End: j, Label: l})
				claimed[claim{i, l}] = true
				claimed[claim{j, l}] = true

				if p, ok := table.at(i); ok {
					p.discard(l)
				}
				if p, ok := table.at(j); ok {
					p.discard(l)
				}
			}
		}
	}
	return transpositions
}

// wouldRemoveSubstitutions reports whether accepting a transposition of
// label l spanning (i, j) would consume label occurrences that still
// support a genuine substitution at both endpoints. Two substitutions are
// worth more than one transposition, so such candidates are rejected.
func wouldRemoveSubstitutions(i, j int, l boundary.Label, table *differenceTable) bool {
	pi, ok := table.at(i)
	if !ok || !pi.d.Has(l) {
		return false
	}
	pj, ok := table.at(j)
	if !ok || !pj.d.Has(l) {
		return false
	}
	_, subsI := pi.editCounts()
	_, subsJ := pj.editCounts()
	return subsI > 0 && subsJ > 0
}
