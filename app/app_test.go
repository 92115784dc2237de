package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"segscore/domain/core"
	"segscore/domain/dataset"
	"segscore/internal/testkit"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

func service() *PairwiseService { return NewPairwiseService(2, nopLogger{}) }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRunBoundaryMean(t *testing.T) {
	result, err := service().Run(context.Background(), testkit.NearMiss(), "b", RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Summary == nil {
		t.Fatal("expected a macro summary")
	}
	// item1 agrees perfectly (1.0), item2's lone near miss scores 0.
	if !almostEqual(result.Summary.Mean, 0.5) || result.Summary.N != 2 {
		t.Errorf("summary = %+v", result.Summary)
	}
	if !almostEqual(result.Summary.StdDev, 0.5) {
		t.Errorf("std dev = %v, want 0.5", result.Summary.StdDev)
	}
	if len(result.Pairs) != 2 {
		t.Errorf("pairs = %+v", result.Pairs)
	}
	if result.RunID == "" || result.DatasetHash.IsEmpty() {
		t.Errorf("missing run metadata: %+v", result)
	}
}

func TestRunBoundaryMicro(t *testing.T) {
	result, err := service().Run(context.Background(), testkit.NearMiss(), "b", RunOptions{Micro: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Micro == nil || !almostEqual(*result.Micro, 0.5) {
		t.Errorf("micro = %v, want 0.5", result.Micro)
	}
	if result.Summary != nil {
		t.Error("micro runs should not carry a macro summary")
	}
}

func TestRunWindowMetricsPermuted(t *testing.T) {
	result, err := service().Run(context.Background(), testkit.NearMiss(), "pk", RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	// Two items, one coder pair each, both orientations.
	if result.Summary.N != 4 {
		t.Errorf("n = %d, want 4", result.Summary.N)
	}
}

func TestRunMicroUnsupported(t *testing.T) {
	if _, err := service().Run(context.Background(), testkit.NearMiss(), "pk", RunOptions{Micro: true}); err == nil {
		t.Fatal("expected error for micro pk")
	}
}

func TestRunUnknownMetric(t *testing.T) {
	_, err := service().Run(context.Background(), testkit.NearMiss(), "rouge", RunOptions{})
	if !errors.Is(err, core.ErrUnknownMetric) {
		t.Fatalf("err = %v, want ErrUnknownMetric", err)
	}
}

func TestRunCoefficients(t *testing.T) {
	result, err := service().Run(context.Background(), testkit.CompleteAgreement(), "pi", RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Coefficient == nil || !almostEqual(*result.Coefficient, 1) {
		t.Errorf("pi = %v, want 1", result.Coefficient)
	}

	result, err = service().Run(context.Background(), testkit.CompleteAgreement(), "kappa", RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Coefficient == nil || !almostEqual(*result.Coefficient, 1) {
		t.Errorf("kappa = %v, want 1", result.Coefficient)
	}
}

func TestRunLargeDisagreement(t *testing.T) {
	result, err := service().Run(context.Background(), testkit.LargeDisagreement(), "pk", RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	// Fully segmented versus unsegmented misses every window.
	if !almostEqual(result.Summary.Mean, 1) {
		t.Errorf("mean pk = %v, want 1", result.Summary.Mean)
	}

	result, err = service().Run(context.Background(), testkit.LargeDisagreement(), "b", RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(result.Summary.Mean, 0) {
		t.Errorf("mean b = %v, want 0", result.Summary.Mean)
	}
}

func TestEvaluateExcludesFailedPairs(t *testing.T) {
	ds := testkit.NearMiss()
	fn := func(c Comparison) (float64, float64, float64, error) {
		if c.Item == "item2" {
			return 0, 0, 0, errors.New("boom")
		}
		return 1, 1, 1, nil
	}

	scores, _, _, failures, err := service().Evaluate(context.Background(), ds, fn, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Item != "item1" {
		t.Errorf("scores = %+v", scores)
	}
	if len(failures) != 1 || failures[0].Item != "item2" || failures[0].Error != "boom" {
		t.Errorf("failures = %+v", failures)
	}
}

func TestEvaluateAllPairsFailed(t *testing.T) {
	fn := func(Comparison) (float64, float64, float64, error) {
		return 0, 0, 0, errors.New("boom")
	}
	_, _, _, failures, err := service().Evaluate(context.Background(), testkit.NearMiss(), fn, false)
	if err == nil {
		t.Fatal("expected error when every pair fails")
	}
	if len(failures) != 2 {
		t.Errorf("failures = %+v", failures)
	}
}

func TestEvaluateStableOrder(t *testing.T) {
	ds := dataset.New()
	ds.Add("item1", "a", dataset.Masses{2, 3})
	ds.Add("item1", "b", dataset.Masses{1, 4})
	ds.Add("item1", "c", dataset.Masses{5})

	fn := func(c Comparison) (float64, float64, float64, error) { return 1, 1, 1, nil }
	scores, _, _, _, err := service().Evaluate(context.Background(), ds, fn, true)
	if err != nil {
		t.Fatal(err)
	}

	want := [][2]dataset.Coder{{"a", "b"}, {"b", "a"}, {"a", "c"}, {"c", "a"}, {"b", "c"}, {"c", "b"}}
	if len(scores) != len(want) {
		t.Fatalf("scores = %d, want %d", len(scores), len(want))
	}
	for i, w := range want {
		if scores[i].Hypothesis != w[0] || scores[i].Reference != w[1] {
			t.Errorf("comparison %d = %s vs %s, want %s vs %s",
				i, scores[i].Hypothesis, scores[i].Reference, w[0], w[1])
		}
	}
}
