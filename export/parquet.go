package export

import (
	"fmt"
	"os"

	"github.com/heartdash/models"
	"github.com/parquet-go/parquet-go"
)

// SampleRow is the Parquet schema of one exported sample.
type SampleRow struct {
	// TimestampMillis is the reading instant in Unix milliseconds
	TimestampMillis int64 `parquet:"timestamp_millis,snappy"`

	// Date is the calendar date of the record the reading came from
	Date string `parquet:"date,snappy"`

	// Display is the formatted label used on the chart axis
	Display string `parquet:"display,snappy"`

	HeartRate   float64 `parquet:"heart_rate,snappy"`
	Highlighted bool    `parquet:"highlighted,snappy"`
	Zone        string  `parquet:"zone,snappy"`
}

// SampleRows converts samples to Parquet rows.
func SampleRows(samples []models.Sample) []SampleRow {
	rows := make([]SampleRow, len(samples))
	for i, s := range samples {
		rows[i] = SampleRow{
			TimestampMillis: s.TimestampMillis,
			Date:            s.Date,
			Display:         s.Timestamp,
			HeartRate:       s.HeartRate,
			Highlighted:     s.Highlighted,
			Zone:            models.ZoneOf(s.HeartRate).Name,
		}
	}
	return rows
}

// WriteParquetFile writes samples to a Parquet file at outputPath.
func WriteParquetFile(outputPath string, samples []models.Sample) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the SampleRow struct tags
	writer := parquet.NewGenericWriter[SampleRow](file)
	if _, err := writer.Write(SampleRows(samples)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return file.Close()
}
