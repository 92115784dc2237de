package similarity

import (
	"segscore/domain/boundary"
	"segscore/domain/editdist"
)

// Confusion summarizes an edit-distance comparison of a hypothesis
// against a reference as boundary-level retrieval counts.
//
// Full matches are true positives. A transposition is a near miss: it
// earns partial true-positive credit, with the weighted remainder split
// evenly between false positive and false negative since the boundary
// exists on both sides but at different places. Hypothesis-side additions
// are false positives, reference-side additions false negatives, and a
// substitution is one of each (wrong type on both sides).
type Confusion struct {
	TruePositives  float64 `json:"true_positives"`
	FalsePositives float64 `json:"false_positives"`
	FalseNegatives float64 `json:"false_negatives"`
}

// Precision is the weighted share of hypothesized boundaries that are
// correct. With no hypothesized boundaries at all it reports 1.
func (c Confusion) Precision() float64 {
	den := c.TruePositives + c.FalsePositives
	if den == 0 {
		return 1
	}
	return c.TruePositives / den
}

// Recall is the weighted share of reference boundaries that were found.
// With no reference boundaries at all it reports 1.
func (c Confusion) Recall() float64 {
	den := c.TruePositives + c.FalseNegatives
	if den == 0 {
		return 1
	}
	return c.TruePositives / den
}

// FMeasure is the harmonic mean of precision and recall.
func (c Confusion) FMeasure() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// ConfusionStrings builds a confusion summary from two equal-length
// boundary strings, treating hyp as the hypothesis and ref as the
// reference.
func ConfusionStrings(hyp, ref boundary.String, opts Options) (Confusion, error) {
	opts = opts.withDefaults()

	d, err := editdist.Distance(hyp, ref, opts.MaxSpan)
	if err != nil {
		return Confusion{}, err
	}

	matches := float64(boundary.Matches(hyp, ref))
	penalty := opts.Weights.Transpositions(d.Transpositions, opts.MaxSpan)
	credit := float64(len(d.Transpositions)) - penalty

	hypAdds, refAdds := 0, 0
	for _, a := range d.Additions {
		if a.Side == editdist.SideA {
			hypAdds++
		} else {
			refAdds++
		}
	}
	subs := float64(len(d.Substitutions))

	return Confusion{
		TruePositives:  matches + credit,
		FalsePositives: float64(hypAdds) + subs + penalty/2,
		FalseNegatives: float64(refAdds) + subs + penalty/2,
	}, nil
}

// PrecisionRecall builds a confusion summary from two mass sequences.
func PrecisionRecall(massesHyp, massesRef []int, opts Options) (Confusion, error) {
	hyp, err := boundary.FromMasses(massesHyp)
	if err != nil {
		return Confusion{}, err
	}
	ref, err := boundary.FromMasses(massesRef)
	if err != nil {
		return Confusion{}, err
	}
	return ConfusionStrings(hyp, ref, opts)
}
