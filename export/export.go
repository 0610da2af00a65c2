// Package export writes processed heart rate series to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/heartdash/models"
)

// Formats accepted by the export command.
const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

var csvHeader = []string{"timestamp_millis", "date", "display", "heart_rate", "highlighted", "zone"}

// WriteCSV writes one row per sample, in series order.
func WriteCSV(w io.Writer, samples []models.Sample) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range samples {
		row := []string{
			strconv.FormatInt(s.TimestampMillis, 10),
			s.Date,
			s.Timestamp,
			strconv.FormatFloat(s.HeartRate, 'f', -1, 64),
			strconv.FormatBool(s.Highlighted),
			models.ZoneOf(s.HeartRate).Name,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// seriesDocument is the JSON shape of an exported series.
type seriesDocument struct {
	Date      models.DateFilter `json:"date"`
	Condition models.Condition  `json:"condition"`
	Message   string            `json:"message,omitempty"`
	Threshold float64           `json:"threshold"`
	Samples   []models.Sample   `json:"samples"`
}

// WriteJSON writes the series with its condition and threshold.
func WriteJSON(w io.Writer, series models.Series) error {
	samples := series.Samples
	if samples == nil {
		samples = []models.Sample{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(seriesDocument{
		Date:      series.Filter,
		Condition: series.Condition,
		Message:   series.Condition.Message(),
		Threshold: models.HighlightThreshold,
		Samples:   samples,
	})
	if err != nil {
		return fmt.Errorf("failed to encode series: %w", err)
	}
	return nil
}
