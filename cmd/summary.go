package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/heartdash/config"
	"github.com/heartdash/models"
	"github.com/spf13/cobra"
)

// Values of the summary --source flag.
const (
	sourceSamples = "samples"
	sourceRecord  = "record"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [dataset]",
	Short: "Print max, min and resting heart rate.",
	Long: `Print the summary card for --date.

With --source samples, max and min come from the processed samples and
missing figures fall back to the record. With --source record, figures are
passed through from the record as stored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, _ []string) error {
		source, err := cmd.Flags().GetString("source")
		if err != nil {
			return err
		}

		dataset, err := loadDataset()
		if err != nil {
			return err
		}

		filter := models.ParseDateFilter(cfg.Date)
		view := models.NewProcessor(cfg.Location()).BuildView(dataset, filter)

		var stats models.SummaryStats
		switch source {
		case sourceSamples:
			stats = view.Stats
		case sourceRecord:
			stats = recordStats(dataset, filter)
		default:
			return fmt.Errorf("invalid source %q: want %s or %s", source, sourceSamples, sourceRecord)
		}

		w, closeOut, err := selectOutputFile(cfg.OutputFile)
		if err != nil {
			return err
		}

		switch cfg.Output {
		case config.JSONOut:
			err = writeSummaryJSON(w, filter, stats)
		case config.CSVOut:
			err = writeSummaryCSV(w, stats)
		default:
			err = printSummaryTable(w, view.Title, stats)
		}
		if err != nil {
			_ = closeOut()
			return fmt.Errorf("failed to write summary: %w", err)
		}
		return closeOut()
	},
}

// recordStats passes the stored figures through without looking at samples.
func recordStats(dataset models.Dataset, filter models.DateFilter) models.SummaryStats {
	if filter.IsAll() {
		return models.SummarizeDataset(dataset)
	}
	record, ok := dataset.Find(string(filter))
	if !ok {
		return models.SummaryStats{}
	}
	return models.SummarizeRecord(record)
}

func writeSummaryJSON(w io.Writer, filter models.DateFilter, stats models.SummaryStats) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Date  models.DateFilter   `json:"date"`
		Stats models.SummaryStats `json:"stats"`
	}{filter, stats})
}

func writeSummaryCSV(w io.Writer, stats models.SummaryStats) error {
	writer := csv.NewWriter(w)
	rows := [][]string{
		{"figure", "value"},
		{"max", stats.Max.String()},
		{"min", stats.Min.String()},
		{"resting", stats.Resting.String()},
		{"seven_day_avg_resting", stats.SevenDayAvgResting.String()},
		{"samples", strconv.Itoa(stats.Samples)},
		{"highlighted", strconv.Itoa(stats.Highlighted)},
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}
