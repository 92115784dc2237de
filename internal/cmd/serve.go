package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"segscore/adapters/api"
	"segscore/app"
	"segscore/ports"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the metric evaluation HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", "", "listen port (default from PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadEnv()
	if err != nil {
		return err
	}

	var store ports.ResultStore
	if cfg.Database.URL != "" {
		store, err = openStore(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
	}

	service := app.NewPairwiseService(cfg.Metrics.Workers, log)
	server := api.NewServer(service, store, log)

	port := flagPort
	if port == "" {
		port = cfg.Server.Port
	}
	log.Info("[API] listening on :%s", port)
	return http.ListenAndServe(":"+port, server.Router())
}
