package similarity

import (
	"segscore/domain/boundary"
	"segscore/domain/editdist"
)

// Parts carries the intermediate quantities behind a similarity value so
// callers can aggregate across comparisons before normalizing.
type Parts struct {
	Numerator     float64
	Denominator   float64
	Matches       int
	WeightedEdits float64
	Decomposition editdist.Decomposition
}

// Score normalizes the parts into a similarity in [0, 1]. Comparisons
// with nothing to agree or disagree on score as perfect agreement.
func (p Parts) Score() float64 {
	if p.Denominator == 0 {
		return 1
	}
	return p.Numerator / p.Denominator
}

// BoundaryStrings computes boundary similarity between two equal-length
// boundary strings: the weighted share of boundary placements the coders
// agree on, out of every placement either made. Full matches count toward
// agreement; each edit subtracts its weight from it.
func BoundaryStrings(a, b boundary.String, opts Options) (float64, Parts, error) {
	opts = opts.withDefaults()

	d, err := editdist.Distance(a, b, opts.MaxSpan)
	if err != nil {
		return 0, Parts{}, err
	}

	matches := boundary.Matches(a, b)
	weighted := opts.weightedEdits(d)
	denominator := float64(d.Count() + matches)

	parts := Parts{
		Numerator:     denominator - weighted,
		Denominator:   denominator,
		Matches:       matches,
		WeightedEdits: weighted,
		Decomposition: d,
	}
	return parts.Score(), parts, nil
}

// Boundary computes boundary similarity between two mass sequences.
func Boundary(massesA, massesB []int, opts Options) (float64, Parts, error) {
	a, err := boundary.FromMasses(massesA)
	if err != nil {
		return 0, Parts{}, err
	}
	b, err := boundary.FromMasses(massesB)
	if err != nil {
		return 0, Parts{}, err
	}
	return BoundaryStrings(a, b, opts)
}
