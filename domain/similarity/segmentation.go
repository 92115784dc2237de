package similarity

import (
	"segscore/domain/boundary"
	"segscore/domain/editdist"
)

// SegmentationStrings computes segmentation similarity between two
// equal-length boundary strings: one minus the weighted edit mass over
// every potential boundary placement. Unlike boundary similarity it
// normalizes by sequence length, so long mostly-unsegmented items drive
// the value toward one.
func SegmentationStrings(a, b boundary.String, opts Options) (float64, Parts, error) {
	opts = opts.withDefaults()

	d, err := editdist.Distance(a, b, opts.MaxSpan)
	if err != nil {
		return 0, Parts{}, err
	}

	weighted := opts.weightedEdits(d)
	potential := float64(len(a) * opts.BoundaryTypes.Len())

	parts := Parts{
		Numerator:     potential - weighted,
		Denominator:   potential,
		Matches:       boundary.Matches(a, b),
		WeightedEdits: weighted,
		Decomposition: d,
	}
	return parts.Score(), parts, nil
}

// Segmentation computes segmentation similarity between two mass
// sequences.
func Segmentation(massesA, massesB []int, opts Options) (float64, Parts, error) {
	a, err := boundary.FromMasses(massesA)
	if err != nil {
		return 0, Parts{}, err
	}
	b, err := boundary.FromMasses(massesB)
	if err != nil {
		return 0, Parts{}, err
	}
	return SegmentationStrings(a, b, opts)
}
