package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"segscore/adapters/data"
	"segscore/adapters/postgres"
	"segscore/adapters/render"
	"segscore/app"
	"segscore/ports"
)

// metricCommands builds one subcommand per registered metric, all sharing
// the same dataset-in, report-out behavior.
func metricCommands() []*cobra.Command {
	var out []*cobra.Command
	for _, metric := range app.Metrics() {
		metric := metric
		out = append(out, &cobra.Command{
			Use:   fmt.Sprintf("%s <dataset>", metric.Name),
			Short: metric.Description,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMetric(cmd, metric.Name, args[0])
			},
		})
	}
	return out
}

func runMetric(cmd *cobra.Command, metric, path string) error {
	cfg, log, err := loadEnv()
	if err != nil {
		return err
	}

	format := data.Format("")
	if flagFormat != "" {
		format, err = data.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
	}
	ds, err := data.Load(path, format)
	if err != nil {
		return err
	}

	maxSpan := flagNT
	if maxSpan == 0 {
		maxSpan = cfg.Metrics.MaxSpan
	}

	service := app.NewPairwiseService(cfg.Metrics.Workers, log)
	result, err := service.Run(cmd.Context(), ds, metric, app.RunOptions{
		MaxSpan:    maxSpan,
		WindowSize: flagWindowSize,
		OneMinus:   flagOneMinus,
		Micro:      flagMicro,
	})
	if err != nil {
		return err
	}

	if flagStore {
		store, err := openStore(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		if err := store.SaveRun(cmd.Context(), result); err != nil {
			return err
		}
		log.Info("[CLI] stored run %s", result.RunID)
	}

	if err := render.WriteText(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if flagPairs {
		header, rows := render.PairRows(result)
		if err := data.WriteResultsTSV(cmd.OutOrStdout(), header, rows); err != nil {
			return err
		}
	}
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", flagOutput, err)
		}
		defer f.Close()
		header, rows := render.PairRows(result)
		if err := data.WriteResultsTSV(f, header, rows); err != nil {
			return err
		}
	}
	return nil
}

func openStore(url string) (ports.ResultStore, error) {
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL is not configured")
	}
	return postgres.NewResultStore(url)
}
