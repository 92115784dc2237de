// Package render formats metric run results for terminals and files.
package render

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"segscore/app"
)

// WriteText renders a run result as a human-readable report.
func WriteText(w io.Writer, run *app.RunResult) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintf(tw, "metric\t%s\n", run.Metric)
	switch {
	case run.Coefficient != nil:
		fmt.Fprintf(tw, "coefficient\t%.6f\n", *run.Coefficient)
	case run.Micro != nil:
		fmt.Fprintf(tw, "micro\t%.6f\n", *run.Micro)
	case run.Summary != nil:
		fmt.Fprintf(tw, "mean\t%.6f\n", run.Summary.Mean)
		fmt.Fprintf(tw, "std dev\t%.6f\n", run.Summary.StdDev)
		fmt.Fprintf(tw, "variance\t%.6f\n", run.Summary.Variance)
		fmt.Fprintf(tw, "std err\t%.6f\n", run.Summary.StdErr)
		fmt.Fprintf(tw, "n\t%d\n", run.Summary.N)
	}
	if len(run.Failures) > 0 {
		fmt.Fprintf(tw, "excluded\t%d\n", len(run.Failures))
		for _, f := range run.Failures {
			fmt.Fprintf(tw, "\t%s: %s vs %s: %s\n", f.Item, f.Hypothesis, f.Reference, f.Error)
		}
	}
	return tw.Flush()
}

// PairRows converts per-pair scores into a header and rows for tabular
// output.
func PairRows(run *app.RunResult) ([]string, [][]string) {
	header := []string{"item", "hypothesis", "reference", run.Metric}
	rows := make([][]string, 0, len(run.Pairs))
	for _, p := range run.Pairs {
		rows = append(rows, []string{
			string(p.Item),
			string(p.Hypothesis),
			string(p.Reference),
			strconv.FormatFloat(p.Score, 'f', 6, 64),
		})
	}
	return header, rows
}
