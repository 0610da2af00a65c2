package cmd

import (
	"fmt"
	"os"

	"github.com/heartdash/export"
	"github.com/heartdash/models"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [dataset]",
	Short: "Write the processed series to a CSV, JSON or Parquet file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}

		dataset, err := loadDataset()
		if err != nil {
			return err
		}
		series := models.NewProcessor(cfg.Location()).FlattenAndFilter(dataset, models.ParseDateFilter(cfg.Date))

		if err := writeExport(format, out, series); err != nil {
			return err
		}

		log.Info().Str("file", out).Str("format", format).Int("samples", len(series.Samples)).Str("condition", series.Condition.String()).Msg("series exported")
		return nil
	},
}

func writeExport(format, path string, series models.Series) error {
	switch format {
	case export.FormatCSV, export.FormatJSON:
	case export.FormatParquet:
		return export.WriteParquetFile(path, series.Samples)
	default:
		return fmt.Errorf("invalid format %q: want csv or json or parquet", format)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if format == export.FormatCSV {
		err = export.WriteCSV(file, series.Samples)
	} else {
		err = export.WriteJSON(file, series)
	}
	if err != nil {
		return err
	}
	return file.Close()
}
