package app

import (
	"context"
	"fmt"
	"sort"

	"segscore/domain/agreement"
	"segscore/domain/core"
	"segscore/domain/dataset"
	"segscore/domain/similarity"
	"segscore/domain/window"
	"segscore/internal/errors"
)

// MetricKind distinguishes pairwise metrics, aggregated over coder
// pairs, from whole-dataset coefficients.
type MetricKind string

const (
	KindPairwise    MetricKind = "pairwise"
	KindCoefficient MetricKind = "coefficient"
)

// Metric describes one registered metric.
type Metric struct {
	Name        string
	Description string
	Kind        MetricKind
	// Permuted metrics are directional and evaluate both orientations
	// of every coder pair.
	Permuted bool
	// SupportsMicro marks metrics whose per-pair parts can be pooled
	// into a micro average.
	SupportsMicro bool
}

var registry = map[string]Metric{
	"b":     {Name: "b", Description: "boundary similarity", Kind: KindPairwise, SupportsMicro: true},
	"s":     {Name: "s", Description: "segmentation similarity", Kind: KindPairwise, SupportsMicro: true},
	"pk":    {Name: "pk", Description: "Pk window penalty", Kind: KindPairwise, Permuted: true},
	"wd":    {Name: "wd", Description: "WindowDiff window penalty", Kind: KindPairwise, Permuted: true},
	"p":     {Name: "p", Description: "boundary precision", Kind: KindPairwise, Permuted: true, SupportsMicro: true},
	"r":     {Name: "r", Description: "boundary recall", Kind: KindPairwise, Permuted: true, SupportsMicro: true},
	"f":     {Name: "f", Description: "boundary F-measure", Kind: KindPairwise, Permuted: true},
	"pi":    {Name: "pi", Description: "Fleiss's multi-pi agreement", Kind: KindCoefficient},
	"kappa": {Name: "kappa", Description: "Fleiss's multi-kappa agreement", Kind: KindCoefficient},
}

// Metrics lists every registered metric in name order.
func Metrics() []Metric {
	out := make([]Metric, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupMetric resolves a metric by name.
func LookupMetric(name string) (Metric, error) {
	m, ok := registry[name]
	if !ok {
		return Metric{}, core.NewUnknownMetricError(name)
	}
	return m, nil
}

// RunOptions carries per-run evaluation settings.
type RunOptions struct {
	// MaxSpan is the maximum transposition span; zero means the default.
	MaxSpan int
	// WindowSize overrides the derived window width of pk and wd.
	WindowSize int
	// OneMinus reports window penalties as similarities.
	OneMinus bool
	// Micro pools per-pair parts instead of averaging per-pair scores.
	Micro bool
}

// RunResult is the outcome of evaluating one metric over one dataset.
type RunResult struct {
	RunID       core.RunID     `json:"run_id"`
	Metric      string         `json:"metric"`
	DatasetHash core.Hash      `json:"dataset_hash"`
	CreatedAt   core.Timestamp `json:"created_at"`
	Summary     *Summary       `json:"summary,omitempty"`
	Micro       *float64       `json:"micro,omitempty"`
	Coefficient *float64       `json:"coefficient,omitempty"`
	Pairs       []PairScore    `json:"pairs,omitempty"`
	Failures    []PairFailure  `json:"failures,omitempty"`
}

// Run evaluates the named metric over the dataset.
func (s *PairwiseService) Run(ctx context.Context, ds *dataset.Dataset, name string, opts RunOptions) (*RunResult, error) {
	metric, err := LookupMetric(name)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	result := &RunResult{
		RunID:       core.RunID(core.NewID()),
		Metric:      metric.Name,
		DatasetHash: ds.Hash(),
		CreatedAt:   core.Now(),
	}

	if metric.Kind == KindCoefficient {
		value, err := s.coefficient(ds, metric.Name, opts)
		if err != nil {
			return nil, err
		}
		result.Coefficient = &value
		s.log.Info("[Run] %s = %.4f over %d coders", metric.Name, value, len(ds.Coders()))
		return result, nil
	}

	if opts.Micro && !metric.SupportsMicro {
		return nil, errors.InvalidInput(fmt.Sprintf("metric %q has no micro average", metric.Name))
	}

	fn, err := pairFunc(metric.Name, opts)
	if err != nil {
		return nil, err
	}
	scores, nums, dens, failures, err := s.Evaluate(ctx, ds, fn, metric.Permuted)
	result.Failures = failures
	if err != nil {
		return nil, err
	}
	result.Pairs = scores

	if opts.Micro {
		value, err := Micro(nums, dens)
		if err != nil {
			return nil, err
		}
		result.Micro = &value
		s.log.Info("[Run] %s micro = %.4f over %d comparisons", metric.Name, value, len(scores))
		return result, nil
	}

	summary, err := Summarize(scores)
	if err != nil {
		return nil, err
	}
	result.Summary = &summary
	s.log.Info("[Run] %s mean = %.4f (n=%d, %d excluded)", metric.Name, summary.Mean, summary.N, len(failures))
	return result, nil
}

func (s *PairwiseService) coefficient(ds *dataset.Dataset, name string, opts RunOptions) (float64, error) {
	simOpts := similarity.Options{MaxSpan: opts.MaxSpan}
	var (
		value float64
		err   error
	)
	switch name {
	case "pi":
		value, err = agreement.FleissPi(ds, simOpts)
	case "kappa":
		value, err = agreement.FleissKappa(ds, simOpts)
	default:
		return 0, errors.InvalidInput(fmt.Sprintf("metric %q is not a coefficient", name))
	}
	if err != nil {
		return 0, errors.WithCode(errors.CodeDatasetError, err)
	}
	return value, nil
}

func pairFunc(name string, opts RunOptions) (PairFunc, error) {
	simOpts := similarity.Options{MaxSpan: opts.MaxSpan}
	winOpts := window.Options{WindowSize: opts.WindowSize, OneMinus: opts.OneMinus}

	switch name {
	case "b":
		return func(c Comparison) (float64, float64, float64, error) {
			score, parts, err := similarity.Boundary(c.HypMasses, c.RefMasses, simOpts)
			return score, parts.Numerator, parts.Denominator, err
		}, nil
	case "s":
		return func(c Comparison) (float64, float64, float64, error) {
			score, parts, err := similarity.Segmentation(c.HypMasses, c.RefMasses, simOpts)
			return score, parts.Numerator, parts.Denominator, err
		}, nil
	case "pk":
		return func(c Comparison) (float64, float64, float64, error) {
			score, err := window.Pk(c.HypMasses, c.RefMasses, winOpts)
			return score, score, 1, err
		}, nil
	case "wd":
		return func(c Comparison) (float64, float64, float64, error) {
			score, err := window.WindowDiff(c.HypMasses, c.RefMasses, winOpts)
			return score, score, 1, err
		}, nil
	case "p":
		return func(c Comparison) (float64, float64, float64, error) {
			cm, err := similarity.PrecisionRecall(c.HypMasses, c.RefMasses, simOpts)
			return cm.Precision(), cm.TruePositives, cm.TruePositives + cm.FalsePositives, err
		}, nil
	case "r":
		return func(c Comparison) (float64, float64, float64, error) {
			cm, err := similarity.PrecisionRecall(c.HypMasses, c.RefMasses, simOpts)
			return cm.Recall(), cm.TruePositives, cm.TruePositives + cm.FalseNegatives, err
		}, nil
	case "f":
		return func(c Comparison) (float64, float64, float64, error) {
			cm, err := similarity.PrecisionRecall(c.HypMasses, c.RefMasses, simOpts)
			return cm.FMeasure(), cm.FMeasure(), 1, err
		}, nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("metric %q is not pairwise", name))
	}
}
