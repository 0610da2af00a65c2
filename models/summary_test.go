package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplesOf(bpms ...float64) []Sample {
	samples := make([]Sample, 0, len(bpms))
	for i, bpm := range bpms {
		samples = append(samples, Sample{
			TimestampMillis: jan01at0800 + int64(i)*60000,
			HeartRate:       bpm,
			Highlighted:     bpm > HighlightThreshold,
		})
	}
	return samples
}

func TestSummarize(t *testing.T) {
	stats := Summarize(samplesOf(110, 130, 90))

	assert.Equal(t, Some(130), stats.Max)
	assert.Equal(t, Some(90), stats.Min)
	assert.Equal(t, 3, stats.Samples)
	assert.Equal(t, 1, stats.Highlighted)
	assert.False(t, stats.Resting.Valid)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)

	assert.False(t, stats.Max.Valid)
	assert.False(t, stats.Min.Valid)
	assert.False(t, math.IsInf(stats.Max.Value, 0))
	assert.False(t, math.IsInf(stats.Min.Value, 0))
	assert.Equal(t, "N/A", stats.Max.String())
	assert.Equal(t, "N/A", stats.Min.String())
}

func TestSummarizeRecord(t *testing.T) {
	dataset := mustLoad(t, twoDaysJSON)

	first := SummarizeRecord(dataset[0])
	assert.Equal(t, Some(130), first.Max)
	assert.Equal(t, Some(110), first.Min)
	assert.Equal(t, Some(58), first.Resting)
	assert.Equal(t, Some(60), first.SevenDayAvgResting)

	second := SummarizeRecord(dataset[1])
	assert.Equal(t, NotAvailable, second.Max)
	assert.Equal(t, NotAvailable, second.Min)
	assert.Equal(t, Some(55), second.Resting)
	assert.Equal(t, NotAvailable, second.SevenDayAvgResting)

	assert.Equal(t, SummaryStats{}, SummarizeRecord(DailyRecord{Date: "2024-01-03"}))
}

func TestSummarizeDataset(t *testing.T) {
	assert.Equal(t, Some(58), SummarizeDataset(mustLoad(t, twoDaysJSON)).Resting)
	assert.Equal(t, SummaryStats{}, SummarizeDataset(nil))
}

func TestReadingString(t *testing.T) {
	assert.Equal(t, "N/A", NotAvailable.String())
	assert.Equal(t, "0", Some(0).String())
	assert.Equal(t, "61.5", Some(61.5).String())
}

func TestReadingJSON(t *testing.T) {
	out, err := json.Marshal(SummaryStats{Max: Some(130)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"max":130,"min":null,"resting":null,"sevenDayAvgResting":null,"samples":0,"highlighted":0}`, string(out))

	var stats SummaryStats
	require.NoError(t, json.Unmarshal(out, &stats))
	assert.Equal(t, Some(130), stats.Max)
	assert.False(t, stats.Min.Valid)
}

func TestSummaryStatsOr(t *testing.T) {
	stats := SummaryStats{Max: Some(150)}.Or(SummaryStats{Max: Some(1), Min: Some(40), Resting: Some(55)})

	assert.Equal(t, Some(150), stats.Max)
	assert.Equal(t, Some(40), stats.Min)
	assert.Equal(t, Some(55), stats.Resting)
	assert.False(t, stats.SevenDayAvgResting.Valid)
}

func TestZoneOf(t *testing.T) {
	tests := []struct {
		bpm  float64
		want string
	}{
		{0, "Out of Range"},
		{85, "Out of Range"},
		{86, "Fat Burn"},
		{120, "Fat Burn"},
		{121, "Cardio"},
		{146.9, "Cardio"},
		{147, "Peak"},
		{230, "Peak"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZoneOf(tt.bpm).Name, "bpm %v", tt.bpm)
	}
}

func TestZoneCounts(t *testing.T) {
	counts := ZoneCounts(samplesOf(60, 90, 100, 130))

	require.Len(t, counts, len(Zones))
	assert.Equal(t, "Out of Range", counts[0].Name)
	assert.Equal(t, 1, counts[0].Samples)
	assert.Equal(t, 25.0, counts[0].Percentage)
	assert.Equal(t, 2, counts[1].Samples)
	assert.Equal(t, 50.0, counts[1].Percentage)
	assert.Equal(t, 1, counts[2].Samples)
	assert.Equal(t, 0, counts[3].Samples)

	for _, count := range ZoneCounts(nil) {
		assert.Zero(t, count.Samples)
		assert.Zero(t, count.Percentage)
	}
}

func TestBuildViewAllDates(t *testing.T) {
	view := NewProcessor(time.UTC).BuildView(mustLoad(t, twoDaysJSON), AllDates)

	assert.Equal(t, "Heart Rate Analysis - 2024-01-01 to 2024-01-02", view.Title)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, view.Dates)
	assert.Len(t, view.Series.Samples, 3)
	assert.Equal(t, Some(130), view.Stats.Max)
	assert.Equal(t, Some(90), view.Stats.Min)
	assert.Equal(t, Some(58), view.Stats.Resting)
	assert.Equal(t, Some(60), view.Stats.SevenDayAvgResting)
	assert.Equal(t, HighlightThreshold, view.Threshold)
	assert.Len(t, view.Resting, 2)
}

func TestBuildViewSelectedDate(t *testing.T) {
	view := NewProcessor(time.UTC).BuildView(mustLoad(t, twoDaysJSON), "2024-01-02")

	assert.Equal(t, "Heart Rate Analysis - 2024-01-02", view.Title)
	assert.Equal(t, Some(90), view.Stats.Max)
	assert.Equal(t, Some(90), view.Stats.Min)
	assert.Equal(t, Some(55), view.Stats.Resting)
	assert.False(t, view.Stats.SevenDayAvgResting.Valid)
}

func TestBuildViewFallsBackToRecordFigures(t *testing.T) {
	dataset := mustLoad(t, `[{"date": "2024-01-01", "heart_rate": {"maxHeartRate": 140, "minHeartRate": 50}}]`)

	view := NewProcessor(time.UTC).BuildView(dataset, "2024-01-01")

	assert.Equal(t, ConditionNoValues, view.Series.Condition)
	assert.Equal(t, Some(140), view.Stats.Max)
	assert.Equal(t, Some(50), view.Stats.Min)
}

func TestBuildViewNoData(t *testing.T) {
	view := NewProcessor(time.UTC).BuildView(nil, AllDates)

	assert.Equal(t, "Heart Rate Analysis - No Data", view.Title)
	assert.Equal(t, ConditionNoData, view.Series.Condition)
	assert.Equal(t, "N/A", view.Stats.Max.String())
	assert.Empty(t, view.Dates)
}
