package editdist

import "segscore/domain/boundary"

// DefaultMaxSpan is the default maximum transposition span: only
// adjacent-position transpositions are considered.
const DefaultMaxSpan = 2

// Distance computes the multiple-boundary edit distance between two
// equal-length boundary strings.
//
// The comparison runs in three sequential phases over one working
// difference table owned exclusively by this call: per-position difference
// extraction, transposition resolution across ascending span lengths from
// 2 to maxSpan inclusive, and per-position substitution matching over
// whatever remains. A maxSpan below 2 disables transposition detection;
// those disagreements resolve as additions and substitutions instead.
//
// The result is deterministic for identical inputs. Distance allocates all
// mutable state fresh per call, so concurrent calls on distinct inputs
// need no synchronization.
func Distance(a, b boundary.String, maxSpan int) (Decomposition, error) {
	table, err := newDifferenceTable(a, b)
	if err != nil {
		return Decomposition{}, err
	}

	var spans []int
	for n := 2; n <= maxSpan; n++ {
		spans = append(spans, n)
	}
	transpositions := findTranspositions(a, b, spans, table)

	additions := []Addition{}
	substitutions := []Substitution{}
	for _, i := range table.positions {
		adds, subs := matchPosition(table.byPos[i])
		additions = append(additions, adds...)
		substitutions = append(substitutions, subs...)
	}

	return Decomposition{
		Additions:      additions,
		Substitutions:  substitutions,
		Transpositions: transpositions,
	}, nil
}
