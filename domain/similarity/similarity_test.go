package similarity

import (
	"math"
	"testing"

	"segscore/domain/editdist"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBoundaryIdentical(t *testing.T) {
	score, parts, err := Boundary([]int{2, 3, 6}, []int{2, 3, 6}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if score != 1 {
		t.Errorf("score = %v, want 1", score)
	}
	if parts.Matches != 2 || parts.WeightedEdits != 0 {
		t.Errorf("parts = %+v", parts)
	}
}

func TestBoundaryNearMiss(t *testing.T) {
	// One shared boundary and one boundary off by a single unit: the
	// transposition costs one full edit against two placements.
	score, parts, err := Boundary([]int{5, 3, 5}, []int{4, 4, 5}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(score, 0.5) {
		t.Errorf("score = %v, want 0.5", score)
	}
	if parts.Matches != 1 {
		t.Errorf("matches = %d, want 1", parts.Matches)
	}
	if len(parts.Decomposition.Transpositions) != 1 {
		t.Errorf("decomposition = %+v", parts.Decomposition)
	}
}

func TestBoundaryMissingBoundary(t *testing.T) {
	score, _, err := Boundary([]int{2, 3, 6}, []int{5, 6}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(score, 0.5) {
		t.Errorf("score = %v, want 0.5", score)
	}
}

func TestBoundaryNoBoundariesEitherSide(t *testing.T) {
	// Nothing placed and nothing to place: vacuous full agreement.
	score, parts, err := Boundary([]int{10}, []int{10}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if score != 1 || parts.Denominator != 0 {
		t.Errorf("score = %v parts = %+v", score, parts)
	}
}

func TestBoundaryInvalidMasses(t *testing.T) {
	if _, _, err := Boundary([]int{3, 0, 2}, []int{5}, DefaultOptions()); err == nil {
		t.Fatal("expected error for non-positive mass")
	}
}

func TestSegmentationNearMiss(t *testing.T) {
	// Same comparison as the boundary near-miss, normalized by the 12
	// potential placements instead of the 2 actual ones.
	score, _, err := Segmentation([]int{5, 3, 5}, []int{4, 4, 5}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(score, 11.0/12.0) {
		t.Errorf("score = %v, want %v", score, 11.0/12.0)
	}
}

func TestSegmentationIdentical(t *testing.T) {
	score, _, err := Segmentation([]int{2, 3, 6}, []int{2, 3, 6}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if score != 1 {
		t.Errorf("score = %v, want 1", score)
	}
}

func TestWeightSubstitutionsScale(t *testing.T) {
	subs := []editdist.Substitution{{A: 1, B: 3}, {A: 1, B: 2}}
	if got := WeightSubstitutionsScale(subs, 1, 3); !almostEqual(got, 1.5) {
		t.Errorf("scaled = %v, want 1.5", got)
	}
	// A single type in play leaves no scale; fall back to counting.
	if got := WeightSubstitutionsScale(subs, 1, 1); got != 2 {
		t.Errorf("fallback = %v, want 2", got)
	}
}

func TestWeightTranspositionsScale(t *testing.T) {
	trs := []editdist.Transposition{{Start: 0, End: 2, Label: 1}, {Start: 4, End: 5, Label: 1}}
	if got := WeightTranspositionsScale(trs, 3); !almostEqual(got, 1.5) {
		t.Errorf("scaled = %v, want 1.5", got)
	}
	if got := WeightTranspositionsScale(trs, 1); got != 2 {
		t.Errorf("fallback = %v, want 2", got)
	}
}

func TestConfusionPerfect(t *testing.T) {
	c, err := PrecisionRecall([]int{2, 3, 6}, []int{2, 3, 6}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if c.Precision() != 1 || c.Recall() != 1 || c.FMeasure() != 1 {
		t.Errorf("confusion = %+v", c)
	}
}

func TestConfusionExtraHypothesisBoundary(t *testing.T) {
	c, err := PrecisionRecall([]int{2, 3, 6}, []int{5, 6}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(c.Precision(), 0.5) {
		t.Errorf("precision = %v, want 0.5", c.Precision())
	}
	if c.Recall() != 1 {
		t.Errorf("recall = %v, want 1", c.Recall())
	}
	if !almostEqual(c.FMeasure(), 2.0/3.0) {
		t.Errorf("f-measure = %v, want %v", c.FMeasure(), 2.0/3.0)
	}
}

func TestConfusionNearMissSplitsPenalty(t *testing.T) {
	// An adjacent transposition at maxSpan 2 carries a full penalty split
	// between false positive and false negative.
	c, err := PrecisionRecall([]int{5, 3, 5}, []int{4, 4, 5}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(c.TruePositives, 1) || !almostEqual(c.FalsePositives, 0.5) || !almostEqual(c.FalseNegatives, 0.5) {
		t.Errorf("confusion = %+v", c)
	}
	if !almostEqual(c.Precision(), 2.0/3.0) || !almostEqual(c.Recall(), 2.0/3.0) {
		t.Errorf("precision = %v recall = %v", c.Precision(), c.Recall())
	}
}

func TestConfusionEmpty(t *testing.T) {
	c, err := PrecisionRecall([]int{7}, []int{7}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if c.Precision() != 1 || c.Recall() != 1 {
		t.Errorf("confusion = %+v", c)
	}
}
