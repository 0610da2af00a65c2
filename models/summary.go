package models

import (
	"encoding/json"
	"strconv"
)

// Reading is an optional figure. The zero value is "not available".
type Reading struct {
	Value float64
	Valid bool
}

// NotAvailable is the sentinel for a missing figure.
var NotAvailable = Reading{}

// Some wraps a known value.
func Some(v float64) Reading {
	return Reading{Value: v, Valid: true}
}

func readingOf(v *float64) Reading {
	if v == nil {
		return NotAvailable
	}
	return Some(*v)
}

// String renders the value, or "N/A".
func (r Reading) String() string {
	if !r.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// Or returns r if it is valid and fallback otherwise.
func (r Reading) Or(fallback Reading) Reading {
	if r.Valid {
		return r
	}
	return fallback
}

func (r Reading) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Reading) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = readingOf(v)
	return nil
}

// SummaryStats are the figures shown next to the chart.
type SummaryStats struct {
	Max                Reading `json:"max"`
	Min                Reading `json:"min"`
	Resting            Reading `json:"resting"`
	SevenDayAvgResting Reading `json:"sevenDayAvgResting"`
	Samples            int     `json:"samples"`
	Highlighted        int     `json:"highlighted"`
}

// Or fills every missing figure of s from fallback.
func (s SummaryStats) Or(fallback SummaryStats) SummaryStats {
	s.Max = s.Max.Or(fallback.Max)
	s.Min = s.Min.Or(fallback.Min)
	s.Resting = s.Resting.Or(fallback.Resting)
	s.SevenDayAvgResting = s.SevenDayAvgResting.Or(fallback.SevenDayAvgResting)
	return s
}

// Summarize derives max and min from samples. An empty input leaves both
// not available instead of producing infinities.
func Summarize(samples []Sample) SummaryStats {
	stats := SummaryStats{Samples: len(samples)}
	for _, sample := range samples {
		if !stats.Max.Valid || sample.HeartRate > stats.Max.Value {
			stats.Max = Some(sample.HeartRate)
		}
		if !stats.Min.Valid || sample.HeartRate < stats.Min.Value {
			stats.Min = Some(sample.HeartRate)
		}
		if sample.Highlighted {
			stats.Highlighted++
		}
	}
	return stats
}

// SummarizeRecord passes through the pre-aggregated figures of one record.
func SummarizeRecord(record DailyRecord) SummaryStats {
	block := record.HeartRate
	if block == nil {
		return SummaryStats{}
	}
	return SummaryStats{
		Max:                readingOf(block.MaxHeartRate),
		Min:                readingOf(block.MinHeartRate),
		Resting:            readingOf(block.RestingHeartRate),
		SevenDayAvgResting: readingOf(block.LastSevenDaysAvgRestingHeartRate),
	}
}

// SummarizeDataset reads the figures of the first record, the way the
// unfiltered dashboard card shows them.
func SummarizeDataset(dataset Dataset) SummaryStats {
	if len(dataset) == 0 {
		return SummaryStats{}
	}
	return SummarizeRecord(dataset[0])
}
