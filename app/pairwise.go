// Package app orchestrates metric evaluation over datasets: fanning out
// pairwise comparisons, aggregating scores, and running agreement
// coefficients.
package app

import (
	"context"
	"math"
	"runtime"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"segscore/domain/dataset"
	"segscore/internal/errors"
)

// Comparison is one directed segmentation comparison: the hypothesis
// coder's masses against the reference coder's.
type Comparison struct {
	Item       dataset.ItemID
	Hypothesis dataset.Coder
	Reference  dataset.Coder
	HypMasses  dataset.Masses
	RefMasses  dataset.Masses
}

// PairScore is the metric value of one comparison.
type PairScore struct {
	Item       dataset.ItemID `json:"item"`
	Hypothesis dataset.Coder  `json:"hypothesis"`
	Reference  dataset.Coder  `json:"reference"`
	Score      float64        `json:"score"`
}

// PairFailure records a comparison that could not be evaluated. A failed
// pair is excluded from aggregation without failing the run.
type PairFailure struct {
	Item       dataset.ItemID `json:"item"`
	Hypothesis dataset.Coder  `json:"hypothesis"`
	Reference  dataset.Coder  `json:"reference"`
	Error      string         `json:"error"`
}

// Summary is the macro aggregation of pairwise scores.
type Summary struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	StdErr   float64 `json:"std_err"`
	N        int     `json:"n"`
}

// PairFunc evaluates one comparison, also reporting the numerator and
// denominator parts used for micro aggregation. Metrics without a
// meaningful decomposition report their score over a unit denominator.
type PairFunc func(c Comparison) (score, num, den float64, err error)

// PairwiseService evaluates a metric over every coder pair of a dataset
// concurrently.
type PairwiseService struct {
	workers int
	log     logger
}

type logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// NewPairwiseService creates a service running at most workers
// comparisons at once; zero means one per CPU.
func NewPairwiseService(workers int, log logger) *PairwiseService {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &PairwiseService{workers: workers, log: log}
}

// Evaluate runs fn over every comparison of the dataset and returns the
// scores in a stable order: ascending item, coder pair, then orientation.
// With permuted set, both orientations of each pair are evaluated;
// otherwise only the ascending one. Individual failures are collected,
// not fatal.
func (s *PairwiseService) Evaluate(ctx context.Context, ds *dataset.Dataset, fn PairFunc, permuted bool) ([]PairScore, []float64, []float64, []PairFailure, error) {
	if err := ds.Validate(); err != nil {
		return nil, nil, nil, nil, errors.WithCode(errors.CodeDatasetError, err)
	}

	comparisons := expand(ds.Pairs(), permuted)
	scores := make([]*PairScore, len(comparisons))
	nums := make([]float64, len(comparisons))
	dens := make([]float64, len(comparisons))
	fails := make([]*PairFailure, len(comparisons))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for idx, c := range comparisons {
		idx, c := idx, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			score, num, den, err := fn(c)
			if err != nil {
				fails[idx] = &PairFailure{Item: c.Item, Hypothesis: c.Hypothesis, Reference: c.Reference, Error: err.Error()}
				return nil
			}
			scores[idx] = &PairScore{Item: c.Item, Hypothesis: c.Hypothesis, Reference: c.Reference, Score: score}
			nums[idx], dens[idx] = num, den
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, nil, err
	}

	var (
		outScores []PairScore
		outNums   []float64
		outDens   []float64
		outFails  []PairFailure
	)
	for idx := range comparisons {
		if fails[idx] != nil {
			s.log.Warn("[Pairwise] excluding %s %s vs %s: %s",
				fails[idx].Item, fails[idx].Hypothesis, fails[idx].Reference, fails[idx].Error)
			outFails = append(outFails, *fails[idx])
			continue
		}
		outScores = append(outScores, *scores[idx])
		outNums = append(outNums, nums[idx])
		outDens = append(outDens, dens[idx])
	}
	if len(outScores) == 0 {
		return nil, nil, nil, outFails, errors.DatasetError("no comparable coder pairs in dataset")
	}
	return outScores, outNums, outDens, outFails, nil
}

// Summarize computes the macro summary of a score list using population
// statistics.
func Summarize(scores []PairScore) (Summary, error) {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = s.Score
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return Summary{}, errors.Wrap(err, "failed to compute mean")
	}
	variance, err := stats.PopulationVariance(values)
	if err != nil {
		return Summary{}, errors.Wrap(err, "failed to compute variance")
	}
	std := math.Sqrt(variance)

	return Summary{
		Mean:     mean,
		StdDev:   std,
		Variance: variance,
		StdErr:   std / math.Sqrt(float64(len(values))),
		N:        len(values),
	}, nil
}

// Micro folds per-pair parts into a single micro-average value.
func Micro(nums, dens []float64) (float64, error) {
	num, _ := stats.Sum(nums)
	den, _ := stats.Sum(dens)
	if den == 0 {
		// Nothing to agree or disagree on anywhere in the dataset.
		return 1, nil
	}
	return num / den, nil
}

func expand(pairs []dataset.Pair, permuted bool) []Comparison {
	var out []Comparison
	for _, p := range pairs {
		out = append(out, Comparison{
			Item: p.Item, Hypothesis: p.CoderA, Reference: p.CoderB,
			HypMasses: p.MassesA, RefMasses: p.MassesB,
		})
		if permuted {
			out = append(out, Comparison{
				Item: p.Item, Hypothesis: p.CoderB, Reference: p.CoderA,
				HypMasses: p.MassesB, RefMasses: p.MassesA,
			})
		}
	}
	return out
}
