// Package agreement computes inter-coder agreement coefficients over a
// segmentation dataset, using boundary similarity as the underlying
// agreement measure.
package agreement

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"segscore/domain/core"
	"segscore/domain/dataset"
	"segscore/domain/similarity"
)

// Stats carries the per-pair and per-coder quantities behind an observed
// agreement value so the chance-corrected coefficients can reuse one
// pass over the dataset.
type Stats struct {
	// Numerators and Denominators are the boundary similarity parts of
	// every coder pair of every item, in dataset pair order.
	Numerators   []float64
	Denominators []float64
	// CoderRatios maps each coder to the fraction of potential
	// boundaries they placed, one entry per item in ascending item
	// order.
	CoderRatios map[dataset.Coder][]float64
}

// Actual computes the observed agreement of a dataset: the aggregate
// boundary similarity across every coder pair of every item. Every coder
// must code every item.
func Actual(ds *dataset.Dataset, opts similarity.Options) (float64, *Stats, error) {
	if err := ds.Validate(); err != nil {
		return 0, nil, err
	}
	if err := ds.RequireSharedItems(); err != nil {
		return 0, nil, err
	}
	opts = similarity.Options{
		MaxSpan:       opts.MaxSpan,
		BoundaryTypes: ds.BoundaryTypes,
		Weights:       opts.Weights,
	}

	st := &Stats{CoderRatios: make(map[dataset.Coder][]float64)}
	for _, pair := range ds.Pairs() {
		_, parts, err := similarity.Boundary(pair.MassesA, pair.MassesB, opts)
		if err != nil {
			return 0, nil, fmt.Errorf("item %s (%s vs %s): %w", pair.Item, pair.CoderA, pair.CoderB, err)
		}
		st.Numerators = append(st.Numerators, parts.Numerator)
		st.Denominators = append(st.Denominators, parts.Denominator)
	}

	types := ds.BoundaryTypes.Len()
	for _, item := range ds.ItemIDs() {
		for _, coder := range ds.CodersFor(item) {
			masses := ds.Items[item][coder]
			placed := len(masses) - 1
			potential := (masses.Units() - 1) * types
			ratio := 0.0
			if potential > 0 {
				ratio = float64(placed) / float64(potential)
			}
			st.CoderRatios[coder] = append(st.CoderRatios[coder], ratio)
		}
	}

	num, _ := stats.Sum(st.Numerators)
	den, _ := stats.Sum(st.Denominators)
	if den == 0 {
		// No boundaries placed by anyone: vacuous full agreement.
		return 1, st, nil
	}
	return num / den, st, nil
}

// FleissPi computes Fleiss's multi-pi over the dataset: observed
// agreement corrected by the chance agreement of a single pooled
// boundary-placement rate shared by all coders.
func FleissPi(ds *dataset.Dataset, opts similarity.Options) (float64, error) {
	observed, st, err := Actual(ds, opts)
	if err != nil {
		return 0, err
	}

	var ratios []float64
	for _, coder := range ds.Coders() {
		ratios = append(ratios, st.CoderRatios[coder]...)
	}
	pooled, err := stats.Mean(ratios)
	if err != nil {
		return 0, fmt.Errorf("pooled placement rate: %w", err)
	}
	return correct(observed, pooled*pooled)
}

// FleissKappa computes Fleiss's multi-kappa over the dataset: observed
// agreement corrected by per-coder placement rates, averaged over coder
// pairs.
func FleissKappa(ds *dataset.Dataset, opts similarity.Options) (float64, error) {
	observed, st, err := Actual(ds, opts)
	if err != nil {
		return 0, err
	}

	rates := make(map[dataset.Coder]float64)
	for coder, ratios := range st.CoderRatios {
		rate, err := stats.Mean(ratios)
		if err != nil {
			return 0, fmt.Errorf("coder %s placement rate: %w", coder, err)
		}
		rates[coder] = rate
	}

	coders := ds.Coders()
	chance, pairs := 0.0, 0
	for i := 0; i < len(coders); i++ {
		for j := i + 1; j < len(coders); j++ {
			chance += rates[coders[i]] * rates[coders[j]]
			pairs++
		}
	}
	if pairs == 0 {
		return 0, core.ErrTooFewCoders
	}
	return correct(observed, chance/float64(pairs))
}

// correct applies the chance correction (Aa - Ae) / (1 - Ae).
func correct(observed, chance float64) (float64, error) {
	if chance >= 1 {
		return 0, fmt.Errorf("chance agreement is %v: coefficient undefined", chance)
	}
	return (observed - chance) / (1 - chance), nil
}
