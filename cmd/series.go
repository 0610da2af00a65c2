package cmd

import (
	"fmt"

	"github.com/heartdash/config"
	"github.com/heartdash/export"
	"github.com/heartdash/models"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series [dataset]",
	Short: "Print the time-ordered heart rate series.",
	Long: `Flatten the dataset into samples sorted by instant, restricted to --date.

Readings above the threshold are flagged and shown in red.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, _ []string) error {
		dataset, err := loadDataset()
		if err != nil {
			return err
		}

		series := models.NewProcessor(cfg.Location()).FlattenAndFilter(dataset, models.ParseDateFilter(cfg.Date))

		w, closeOut, err := selectOutputFile(cfg.OutputFile)
		if err != nil {
			return err
		}

		switch cfg.Output {
		case config.JSONOut:
			err = export.WriteJSON(w, series)
		case config.CSVOut:
			err = export.WriteCSV(w, series.Samples)
		default:
			err = printSeriesTable(w, series)
		}
		if err != nil {
			_ = closeOut()
			return fmt.Errorf("failed to write series: %w", err)
		}
		if err := closeOut(); err != nil {
			return err
		}

		if cfg.OutputFile != "" {
			log.Info().Str("file", cfg.OutputFile).Str("format", cfg.Output).Int("samples", len(series.Samples)).Msg("series written")
		}
		return nil
	},
}
