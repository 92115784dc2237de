package similarity

import (
	"segscore/domain/boundary"
	"segscore/domain/editdist"
)

// Options controls how segmentations are compared.
type Options struct {
	// MaxSpan is the maximum transposition span passed to the edit
	// distance. Zero means the default.
	MaxSpan int
	// BoundaryTypes is the set of boundary types in play. Nil means the
	// single default type.
	BoundaryTypes boundary.Set
	// Weights are the edit weighting functions. Zero-value fields fall
	// back to the defaults.
	Weights Weights
}

// DefaultOptions compares with adjacent-only transpositions, one boundary
// type, and the default weights.
func DefaultOptions() Options {
	return Options{
		MaxSpan:       editdist.DefaultMaxSpan,
		BoundaryTypes: boundary.NewSet(boundary.DefaultLabel),
		Weights:       DefaultWeights(),
	}
}

func (o Options) withDefaults() Options {
	if o.MaxSpan == 0 {
		o.MaxSpan = editdist.DefaultMaxSpan
	}
	if o.BoundaryTypes == nil || o.BoundaryTypes.Len() == 0 {
		o.BoundaryTypes = boundary.NewSet(boundary.DefaultLabel)
	}
	if o.Weights.Additions == nil {
		o.Weights.Additions = WeightAdditions
	}
	if o.Weights.Substitutions == nil {
		o.Weights.Substitutions = WeightSubstitutionsScale
	}
	if o.Weights.Transpositions == nil {
		o.Weights.Transpositions = WeightTranspositionsScale
	}
	return o
}

// typeRange returns the smallest and largest boundary type in play.
func (o Options) typeRange() (int, int) {
	labels := o.BoundaryTypes.Labels()
	return int(labels[0]), int(labels[len(labels)-1])
}

// weightedEdits applies the configured weights to a decomposition.
func (o Options) weightedEdits(d editdist.Decomposition) float64 {
	minType, maxType := o.typeRange()
	return o.Weights.Additions(d.Additions) +
		o.Weights.Substitutions(d.Substitutions, minType, maxType) +
		o.Weights.Transpositions(d.Transpositions, o.MaxSpan)
}
