package editdist

import (
	"gonum.org/v1/gonum/stat/combin"

	"segscore/domain/boundary"
)

// matchPosition pairs the residual one-sided labels of a single position
// into substitutions and classifies the leftovers as additions.
//
// The pairing is a brute-force search over orderings of both sides that
// minimizes the total absolute label distance. Permutations are generated
// in lexicographic order over the ascending label lists, and the first
// strictly smaller pairing wins, so ties resolve to a fixed, reproducible
// choice. Exponential cost is acceptable here: the set sizes are bounded
// by the number of simultaneously active boundary types, not by sequence
// length.
func matchPosition(p *positionDiff) ([]Addition, []Substitution) {
	aLabels := p.a.Labels()
	bLabels := p.b.Labels()

	var best []Substitution
	if len(aLabels) > 0 && len(bLabels) > 0 {
		pairs := len(aLabels)
		if len(bLabels) < pairs {
			pairs = len(bLabels)
		}
		bestDelta := -1
		for _, permA := range combin.Permutations(len(aLabels), len(aLabels)) {
			for _, permB := range combin.Permutations(len(bLabels), len(bLabels)) {
				delta := 0
				for k := 0; k < pairs; k++ {
					d := int(aLabels[permA[k]]) - int(bLabels[permB[k]])
					if d < 0 {
						d = -d
					}
					delta += d
				}
				if bestDelta < 0 || delta < bestDelta {
					bestDelta = delta
					best = best[:0]
					for k := 0; k < pairs; k++ {
						best = append(best, Substitution{
							A: aLabels[permA[k]],
							B: bLabels[permB[k]],
						})
					}
				}
			}
		}
	}

	pairedA := boundary.NewSet()
	pairedB := boundary.NewSet()
	for _, s := range best {
		pairedA[s.A] = struct{}{}
		pairedB[s.B] = struct{}{}
	}

	var additions []Addition
	for _, l := range aLabels {
		if !pairedA.Has(l) {
			additions = append(additions, Addition{Label: l, Side: SideA})
		}
	}
	for _, l := range bLabels {
		if !pairedB.Has(l) {
			additions = append(additions, Addition{Label: l, Side: SideB})
		}
	}
	return additions, best
}
