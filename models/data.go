package models

import (
	"fmt"
	"strings"
)

// AllDates is the DateFilter sentinel selecting every record.
const AllDates DateFilter = "all"

// DateFilter selects either every record or the record of one date.
type DateFilter string

// ParseDateFilter maps user input to a filter. Empty input and "all" select every date.
func ParseDateFilter(s string) DateFilter {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(AllDates)) {
		return AllDates
	}
	return DateFilter(s)
}

// IsAll reports whether the filter selects every record.
func (f DateFilter) IsAll() bool {
	return f == AllDates || f == ""
}

// Sample is one normalized heart rate reading ready for charting.
type Sample struct {
	Timestamp       string  `json:"timestamp"`
	TimestampMillis int64   `json:"timestampMillis"`
	HeartRate       float64 `json:"heartRate"`
	Highlighted     bool    `json:"highlighted"`
	Date            string  `json:"date"`
}

// Condition describes why a series is empty, if it is.
type Condition int

const (
	ConditionOK Condition = iota
	ConditionNoData
	ConditionNoMatch
	ConditionNoValues
)

func (c Condition) String() string {
	switch c {
	case ConditionOK:
		return "ok"
	case ConditionNoData:
		return "no_data"
	case ConditionNoMatch:
		return "no_match"
	case ConditionNoValues:
		return "no_values"
	default:
		return "unknown"
	}
}

// Message is the text shown in place of the chart.
func (c Condition) Message() string {
	switch c {
	case ConditionOK:
		return ""
	case ConditionNoMatch:
		return "No heart rate data recorded for the selected date"
	default:
		return "No heart rate data available"
	}
}

// MarshalText lets conditions appear by name in JSON output.
func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a condition name produced by MarshalText.
func (c *Condition) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ok":
		*c = ConditionOK
	case "no_data":
		*c = ConditionNoData
	case "no_match":
		*c = ConditionNoMatch
	case "no_values":
		*c = ConditionNoValues
	default:
		return fmt.Errorf("unknown condition %q", text)
	}
	return nil
}

// Series is the result of one flattening pass.
type Series struct {
	Filter    DateFilter `json:"date"`
	Samples   []Sample   `json:"samples"`
	Condition Condition  `json:"condition"`
}

// Empty reports whether there is nothing to chart.
func (s Series) Empty() bool {
	return len(s.Samples) == 0
}

// HighlightedCount counts samples above the threshold.
func (s Series) HighlightedCount() int {
	n := 0
	for _, sample := range s.Samples {
		if sample.Highlighted {
			n++
		}
	}
	return n
}
