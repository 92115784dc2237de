// Package window implements the classic sliding-window penalty metrics
// Pk and WindowDiff over single-boundary-type segmentations.
package window

import (
	"math"

	"segscore/domain/core"
)

// Options controls window metric evaluation.
type Options struct {
	// WindowSize overrides the window width k. Zero derives k from the
	// reference as half its mean segment length, rounded half up.
	WindowSize int
	// OneMinus reports 1 - penalty so the value reads as a similarity.
	OneMinus bool
}

// Pk computes the Pk penalty of a hypothesis segmentation against a
// reference, both given as segment masses. A window of width k slides
// over the units; a window is an error when exactly one of the two
// segmentations separates its endpoints.
func Pk(hyp, ref []int, opts Options) (float64, error) {
	return slide(hyp, ref, opts, func(hypCount, refCount int) bool {
		return (hypCount > 0) != (refCount > 0)
	})
}

// WindowDiff computes the WindowDiff penalty of a hypothesis against a
// reference. Stricter than Pk: a window is an error whenever the two
// segmentations place a different number of boundaries inside it.
func WindowDiff(hyp, ref []int, opts Options) (float64, error) {
	return slide(hyp, ref, opts, func(hypCount, refCount int) bool {
		return hypCount != refCount
	})
}

func slide(hyp, ref []int, opts Options, miss func(hypCount, refCount int) bool) (float64, error) {
	total := units(ref)
	if got := units(hyp); got != total {
		return 0, core.NewUnitCountMismatchError(total, got)
	}

	k := opts.WindowSize
	if k <= 0 {
		k = windowSize(ref)
	}
	windows := total - k
	if windows <= 0 {
		// Too short to slide a single window; nothing can be wrong.
		return finish(0, opts), nil
	}

	hypCum := cumulativeBoundaries(hyp, total)
	refCum := cumulativeBoundaries(ref, total)

	misses := 0
	for i := 0; i < windows; i++ {
		// Boundaries falling strictly after unit i and no later than
		// unit i+k separate the window's endpoints.
		hypCount := hypCum[i+k] - hypCum[i]
		refCount := refCum[i+k] - refCum[i]
		if miss(hypCount, refCount) {
			misses++
		}
	}
	return finish(float64(misses)/float64(windows), opts), nil
}

// windowSize derives k from the reference: half its mean segment mass,
// rounded half up, never below one.
func windowSize(ref []int) int {
	mean := float64(units(ref)) / float64(len(ref))
	k := int(math.Round(mean / 2))
	if k < 1 {
		k = 1
	}
	return k
}

// cumulativeBoundaries returns, for each unit count p in 0..total, how
// many boundaries fall at or before position p.
func cumulativeBoundaries(masses []int, total int) []int {
	cum := make([]int, total+1)
	pos, placed := 0, 0
	for i, m := range masses {
		for u := 0; u < m; u++ {
			pos++
			cum[pos] = placed
		}
		if i < len(masses)-1 {
			placed++
			cum[pos] = placed
		}
	}
	return cum
}

func finish(penalty float64, opts Options) float64 {
	if opts.OneMinus {
		return 1 - penalty
	}
	return penalty
}

func units(masses []int) int {
	total := 0
	for _, m := range masses {
		total += m
	}
	return total
}
