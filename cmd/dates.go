package cmd

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/heartdash/config"
	"github.com/heartdash/models"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var datesCmd = &cobra.Command{
	Use:   "dates [dataset]",
	Short: "List the dates in the dataset.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, _ []string) error {
		dataset, err := loadDataset()
		if err != nil {
			return err
		}

		if cfg.Output == config.JSONOut {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string][]string{"dates": dataset.Dates()})
		}
		return printDatesTable(cmd.OutOrStdout(), dataset)
	},
}

// printDatesTable lists each distinct date with its reading count.
func printDatesTable(w io.Writer, dataset models.Dataset) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Readings"})

	var data [][]string
	for _, d := range dataset.Dates() {
		readings := 0
		if record, ok := dataset.Find(d); ok && record.HeartRate != nil {
			readings = len(record.HeartRate.HeartRateValues)
		}
		data = append(data, []string{d, strconv.Itoa(readings)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
