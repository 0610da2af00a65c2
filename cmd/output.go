package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/heartdash/models"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// selectOutputFile returns the writer for command output and a function
// that closes it. Without a path, output goes to stdout.
func selectOutputFile(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return file, file.Close, nil
}

// printSeriesTable writes one row per sample, red when highlighted, and a
// footer with the counts or the empty-state message.
func printSeriesTable(w io.Writer, series models.Series) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Time", "BPM", "Zone", "Flag"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	red := color.New(color.FgRed).SprintFunc()
	var data [][]string
	for _, s := range series.Samples {
		row := []string{
			s.Timestamp,
			strconv.FormatFloat(s.HeartRate, 'f', -1, 64),
			models.ZoneOf(s.HeartRate).Name,
			"",
		}
		if s.Highlighted {
			row[3] = "HIGH"
			for i := range row {
				row[i] = red(row[i])
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if series.Empty() {
		_, err := fmt.Fprintln(w, series.Condition.Message())
		return err
	}
	_, err := fmt.Fprintf(w, "%d readings, %d above %s bpm\n",
		len(series.Samples), series.HighlightedCount(), strconv.FormatFloat(models.HighlightThreshold, 'f', -1, 64))
	return err
}

// printSummaryTable writes the summary card as a two-column table.
func printSummaryTable(w io.Writer, title string, stats models.SummaryStats) error {
	if _, err := fmt.Fprintln(w, color.New(color.Bold).Sprint(title)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Figure", "Value"})
	rows := [][]string{
		{"Max HR", stats.Max.String() + " bpm"},
		{"Min HR", stats.Min.String() + " bpm"},
		{"Resting HR", stats.Resting.String() + " bpm"},
		{"7-Day Avg Resting HR", stats.SevenDayAvgResting.String() + " bpm"},
		{"Readings", strconv.Itoa(stats.Samples)},
		{"Above Threshold", strconv.Itoa(stats.Highlighted)},
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
