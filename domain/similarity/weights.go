// Package similarity turns boundary edit distances into normalized
// similarity values between segmentations.
package similarity

import "segscore/domain/editdist"

// AdditionWeight scores a set of addition edits.
type AdditionWeight func(additions []editdist.Addition) float64

// SubstitutionWeight scores a set of substitution edits given the extreme
// boundary types in play.
type SubstitutionWeight func(substitutions []editdist.Substitution, minType, maxType int) float64

// TranspositionWeight scores a set of transposition edits given the
// maximum span they were searched under.
type TranspositionWeight func(transpositions []editdist.Transposition, maxSpan int) float64

// Weights bundles the three edit weighting functions applied when
// converting a decomposition into a penalty.
type Weights struct {
	Additions      AdditionWeight
	Substitutions  SubstitutionWeight
	Transpositions TranspositionWeight
}

// DefaultWeights penalizes additions at full cost and scales
// substitutions and transpositions by severity.
func DefaultWeights() Weights {
	return Weights{
		Additions:      WeightAdditions,
		Substitutions:  WeightSubstitutionsScale,
		Transpositions: WeightTranspositionsScale,
	}
}

// UnweightedWeights counts every edit at full cost.
func UnweightedWeights() Weights {
	return Weights{
		Additions:      WeightAdditions,
		Substitutions:  WeightSubstitutionsCount,
		Transpositions: WeightTranspositionsCount,
	}
}

// WeightAdditions counts each addition as one full edit.
func WeightAdditions(additions []editdist.Addition) float64 {
	return float64(len(additions))
}

// WeightSubstitutionsCount counts each substitution as one full edit.
func WeightSubstitutionsCount(substitutions []editdist.Substitution, _, _ int) float64 {
	return float64(len(substitutions))
}

// WeightSubstitutionsScale scales each substitution by the distance
// between the swapped types relative to the widest possible swap. With a
// single boundary type in play there is no scale to speak of, so it falls
// back to full cost.
func WeightSubstitutionsScale(substitutions []editdist.Substitution, minType, maxType int) float64 {
	span := maxType - minType
	if span <= 0 {
		return float64(len(substitutions))
	}
	total := 0.0
	for _, s := range substitutions {
		d := int(s.A) - int(s.B)
		if d < 0 {
			d = -d
		}
		total += float64(d) / float64(span)
	}
	return total
}

// WeightTranspositionsCount counts each transposition as one full edit.
func WeightTranspositionsCount(transpositions []editdist.Transposition, _ int) float64 {
	return float64(len(transpositions))
}

// WeightTranspositionsScale scales each transposition by how far the
// boundary moved relative to the widest allowed span. At maxSpan 2 every
// transposition is adjacent and costs one full edit.
func WeightTranspositionsScale(transpositions []editdist.Transposition, maxSpan int) float64 {
	span := maxSpan - 1
	if span <= 0 {
		return float64(len(transpositions))
	}
	total := 0.0
	for _, t := range transpositions {
		total += float64(t.End-t.Start) / float64(span)
	}
	return total
}
