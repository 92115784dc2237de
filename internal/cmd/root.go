// Package cmd implements the segscore command line interface.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"segscore/internal"
	"segscore/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "segscore",
	Short: "segmentation comparison and agreement metrics",
	Long: `segscore compares text segmentations and measures inter-coder
agreement using boundary edit distance.

Datasets are JSON, TSV, or xlsx files (or a directory of them) holding
segment masses per coder per item.`,
	SilenceUsage: true,
}

var (
	flagNT         int
	flagFormat     string
	flagOutput     string
	flagMicro      bool
	flagOneMinus   bool
	flagWindowSize int
	flagStore      bool
	flagPairs      bool
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Missing .env files are fine; the environment still applies.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().IntVar(&flagNT, "nt", 0, "maximum transposition span (default from SEGSCORE_NT)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "input format: json, tsv, or xlsx (default: by extension)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "write per-pair scores to a TSV file")
	rootCmd.PersistentFlags().BoolVar(&flagMicro, "micro", false, "pool per-pair parts instead of averaging scores")
	rootCmd.PersistentFlags().BoolVar(&flagOneMinus, "one-minus", false, "report window penalties as similarities")
	rootCmd.PersistentFlags().IntVar(&flagWindowSize, "window-size", 0, "window width for pk and wd (default: derived from the reference)")
	rootCmd.PersistentFlags().BoolVar(&flagStore, "store", false, "persist the run to the configured database")
	rootCmd.PersistentFlags().BoolVar(&flagPairs, "pairs", false, "print per-pair scores")

	for _, m := range metricCommands() {
		rootCmd.AddCommand(m)
	}
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(convertCmd)
}

func loadEnv() (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, internal.NewDefaultLogger(), nil
}
