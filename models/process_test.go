package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utcProcessor() *Processor {
	return NewProcessor(time.UTC)
}

func TestFlattenAndFilterAllDates(t *testing.T) {
	series := utcProcessor().FlattenAndFilter(mustLoad(t, twoDaysJSON), AllDates)

	require.Equal(t, ConditionOK, series.Condition)
	require.Len(t, series.Samples, 3)

	assert.Equal(t, []Sample{
		{Timestamp: "Jan 01, 08:00 AM", TimestampMillis: jan01at0800, HeartRate: 110, Date: "2024-01-01"},
		{Timestamp: "Jan 01, 08:05 AM", TimestampMillis: jan01at0805, HeartRate: 130, Highlighted: true, Date: "2024-01-01"},
		{Timestamp: "Jan 02, 07:30 AM", TimestampMillis: jan02at0730, HeartRate: 90, Date: "2024-01-02"},
	}, series.Samples)
	assert.Equal(t, 1, series.HighlightedCount())
}

func TestFlattenAndFilterSingleDate(t *testing.T) {
	series := utcProcessor().FlattenAndFilter(mustLoad(t, twoDaysJSON), ParseDateFilter("2024-01-02"))

	require.Equal(t, ConditionOK, series.Condition)
	require.Len(t, series.Samples, 1)
	assert.Equal(t, "02, 07:30 AM", series.Samples[0].Timestamp)
	assert.Equal(t, 90.0, series.Samples[0].HeartRate)
	assert.False(t, series.Samples[0].Highlighted)
}

func TestFlattenAndFilterMissingDate(t *testing.T) {
	series := utcProcessor().FlattenAndFilter(mustLoad(t, twoDaysJSON), "2024-02-01")

	assert.Equal(t, ConditionNoMatch, series.Condition)
	assert.Empty(t, series.Samples)
	assert.NotNil(t, series.Samples)
}

func TestFlattenAndFilterNoData(t *testing.T) {
	p := utcProcessor()

	for _, dataset := range []Dataset{nil, {}} {
		series := p.FlattenAndFilter(dataset, AllDates)
		assert.Equal(t, ConditionNoData, series.Condition)
		assert.Empty(t, series.Samples)
		assert.Equal(t, "No heart rate data available", series.Condition.Message())
	}

	malformed, err := LoadDataset([]byte(`{"not": "a list"}`))
	require.Error(t, err)
	assert.Equal(t, ConditionNoData, p.FlattenAndFilter(malformed, AllDates).Condition)
}

func TestFlattenAndFilterSkipsRecordGaps(t *testing.T) {
	dataset := mustLoad(t, `[
        {"date": "2024-01-01"},
        {"date": "2024-01-02", "heart_rate": {"restingHeartRate": 50}},
        {"date": "2024-01-03", "heart_rate": {"heartRateValues": []}},
        {"date": "2024-01-04", "heart_rate": {"heartRateValues": [[1704355200000, 70], [1704355260000, null]]}}
    ]`)
	p := utcProcessor()

	series := p.FlattenAndFilter(dataset, AllDates)
	require.Len(t, series.Samples, 1)
	assert.Equal(t, 70.0, series.Samples[0].HeartRate)

	for _, date := range []DateFilter{"2024-01-01", "2024-01-02", "2024-01-03"} {
		series := p.FlattenAndFilter(dataset, date)
		assert.Equal(t, ConditionNoValues, series.Condition, string(date))
		assert.Empty(t, series.Samples)
	}
}

func TestFlattenAndFilterSortsByInstant(t *testing.T) {
	// "Dec" sorts after "Jan" as text, but the December reading is earlier.
	dataset := Dataset{
		{Date: "2024-01-01", HeartRate: &HeartRateBlock{HeartRateValues: []HeartRateValue{
			{TimestampMillis: jan01at0800, BPM: 80, Valid: true},
		}}},
		{Date: "2023-12-31", HeartRate: &HeartRateBlock{HeartRateValues: []HeartRateValue{
			{TimestampMillis: dec31at2359, BPM: 75, Valid: true},
		}}},
	}

	series := utcProcessor().FlattenAndFilter(dataset, AllDates)

	require.Len(t, series.Samples, 2)
	assert.Equal(t, "Dec 31, 11:59 PM", series.Samples[0].Timestamp)
	assert.Equal(t, "Jan 01, 08:00 AM", series.Samples[1].Timestamp)
}

func TestFlattenAndFilterStableForEqualInstants(t *testing.T) {
	dataset := Dataset{{Date: "2024-01-01", HeartRate: &HeartRateBlock{HeartRateValues: []HeartRateValue{
		{TimestampMillis: jan01at0800, BPM: 101, Valid: true},
		{TimestampMillis: jan01at0800, BPM: 102, Valid: true},
		{TimestampMillis: jan01at0800, BPM: 103, Valid: true},
	}}}}

	series := utcProcessor().FlattenAndFilter(dataset, AllDates)

	require.Len(t, series.Samples, 3)
	assert.Equal(t, 101.0, series.Samples[0].HeartRate)
	assert.Equal(t, 102.0, series.Samples[1].HeartRate)
	assert.Equal(t, 103.0, series.Samples[2].HeartRate)
}

func TestFlattenAndFilterDuplicateDateFirstMatch(t *testing.T) {
	dataset := Dataset{
		{Date: "2024-01-01", HeartRate: &HeartRateBlock{HeartRateValues: []HeartRateValue{
			{TimestampMillis: jan01at0800, BPM: 60, Valid: true},
		}}},
		{Date: "2024-01-01", HeartRate: &HeartRateBlock{HeartRateValues: []HeartRateValue{
			{TimestampMillis: jan01at0805, BPM: 140, Valid: true},
		}}},
	}
	p := utcProcessor()

	filtered := p.FlattenAndFilter(dataset, "2024-01-01")
	require.Len(t, filtered.Samples, 1)
	assert.Equal(t, 60.0, filtered.Samples[0].HeartRate)

	assert.Len(t, p.FlattenAndFilter(dataset, AllDates).Samples, 2)
}

func TestFlattenAndFilterThresholdBoundary(t *testing.T) {
	values := []HeartRateValue{}
	for i, bpm := range []float64{119, 120, 120.5, 121} {
		values = append(values, HeartRateValue{TimestampMillis: jan01at0800 + int64(i)*60000, BPM: bpm, Valid: true})
	}
	dataset := Dataset{{Date: "2024-01-01", HeartRate: &HeartRateBlock{HeartRateValues: values}}}

	series := utcProcessor().FlattenAndFilter(dataset, AllDates)

	require.Len(t, series.Samples, 4)
	assert.False(t, series.Samples[0].Highlighted)
	assert.False(t, series.Samples[1].Highlighted)
	assert.True(t, series.Samples[2].Highlighted)
	assert.True(t, series.Samples[3].Highlighted)
}

func TestFlattenAndFilterCountsEveryPair(t *testing.T) {
	dataset := mustLoad(t, twoDaysJSON)
	p := utcProcessor()

	for _, date := range []DateFilter{AllDates, "2024-01-01", "2024-01-02"} {
		series := p.FlattenAndFilter(dataset, date)

		want := 0
		for _, record := range dataset {
			if date.IsAll() || DateFilter(record.Date) == date {
				want += len(record.HeartRate.HeartRateValues)
			}
		}
		assert.Len(t, series.Samples, want, string(date))

		for i := 1; i < len(series.Samples); i++ {
			assert.LessOrEqual(t, series.Samples[i-1].TimestampMillis, series.Samples[i].TimestampMillis)
		}
	}
}

func TestFlattenAndFilterUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	series := NewProcessor(tokyo).FlattenAndFilter(mustLoad(t, twoDaysJSON), "2024-01-02")

	require.Len(t, series.Samples, 1)
	assert.Equal(t, "02, 04:30 PM", series.Samples[0].Timestamp)
}

func TestParseDateFilter(t *testing.T) {
	assert.Equal(t, AllDates, ParseDateFilter(""))
	assert.Equal(t, AllDates, ParseDateFilter(" ALL "))
	assert.Equal(t, DateFilter("2024-01-01"), ParseDateFilter("2024-01-01"))
	assert.True(t, DateFilter("").IsAll())
	assert.False(t, DateFilter("2024-01-01").IsAll())
}
