package cmd

import (
	"os/signal"
	"syscall"

	"github.com/heartdash/server"
	"github.com/spf13/cobra"
)

const serveCommand = "serve"

var serveCmd = &cobra.Command{
	Use:   serveCommand + " [dataset]",
	Short: "Serve the heart rate dashboard.",
	Long: `Serve the dashboard and its JSON API until interrupted.

Routes:
- /             dashboard page, ?date=YYYY-MM-DD or ?date=all
- /charts       chart section only
- /api/series   processed samples as JSON
- /api/summary  summary figures as JSON
- /api/dates    distinct dates
- /metrics      Prometheus metrics`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, _ []string) error {
		dataset, err := loadDataset()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.New(cfg, dataset).Serve(ctx)
	},
}
