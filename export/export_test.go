package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/heartdash/models"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSamples() []models.Sample {
	return []models.Sample{
		{Timestamp: "Jan 01, 08:00 AM", TimestampMillis: 1704096000000, HeartRate: 110, Date: "2024-01-01"},
		{Timestamp: "Jan 01, 08:05 AM", TimestampMillis: 1704096300000, HeartRate: 130, Highlighted: true, Date: "2024-01-01"},
		{Timestamp: "Jan 02, 07:30 AM", TimestampMillis: 1704180600000, HeartRate: 90.5, Date: "2024-01-02"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testSamples()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"1704096300000", "2024-01-01", "Jan 01, 08:05 AM", "130", "true", "Cardio"}, records[2])
	assert.Equal(t, "90.5", records[3][3])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "timestamp_millis,date,display,heart_rate,highlighted,zone\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	series := models.Series{Filter: models.AllDates, Samples: testSamples()}
	require.NoError(t, WriteJSON(&buf, series))

	var doc seriesDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, models.AllDates, doc.Date)
	assert.Equal(t, models.ConditionOK, doc.Condition)
	assert.Equal(t, models.HighlightThreshold, doc.Threshold)
	assert.Equal(t, testSamples(), doc.Samples)
}

func TestWriteJSONNoMatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, models.Series{Filter: "2024-05-05", Condition: models.ConditionNoMatch}))

	assert.Contains(t, buf.String(), `"condition": "no_match"`)
	assert.Contains(t, buf.String(), `"samples": []`)
}

func TestSampleRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(SampleRow))
	require.NotNil(t, schema)

	for _, colName := range []string{"timestamp_millis", "date", "display", "heart_rate", "highlighted", "zone"} {
		_, ok := schema.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteParquetFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "samples.parquet")
	require.NoError(t, WriteParquetFile(outputPath, testSamples()))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	rows, err := parquet.ReadFile[SampleRow](outputPath)
	require.NoError(t, err)
	assert.Equal(t, SampleRows(testSamples()), rows)
}
