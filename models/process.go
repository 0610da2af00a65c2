package models

import (
	"sort"
	"time"

	"github.com/phuslu/log"
)

const (
	// layoutAllDates keeps the month so labels from different days stay distinct.
	layoutAllDates = "Jan 02, 03:04 PM"
	layoutOneDate  = "02, 03:04 PM"
)

// Processor turns a Dataset into chartable series. It keeps no state between
// calls besides the time zone used for display labels.
type Processor struct {
	Location *time.Location
}

// NewProcessor returns a Processor labelling timestamps in loc (time.Local if nil).
func NewProcessor(loc *time.Location) *Processor {
	if loc == nil {
		loc = time.Local
	}
	return &Processor{Location: loc}
}

// FlattenAndFilter extracts every reading of the records selected by filter,
// formats and flags it, and orders the result by instant.
func (p *Processor) FlattenAndFilter(dataset Dataset, filter DateFilter) Series {
	series := Series{Filter: filter, Samples: []Sample{}}
	if filter == "" {
		series.Filter = AllDates
	}

	if len(dataset) == 0 {
		log.Warn().Str("date", string(series.Filter)).Msg("heart rate dataset is empty or malformed")
		series.Condition = ConditionNoData
		return series
	}

	var records []DailyRecord
	layout := layoutAllDates
	if series.Filter.IsAll() {
		records = dataset
	} else {
		record, ok := dataset.Find(string(series.Filter))
		if !ok {
			log.Info().Str("date", string(series.Filter)).Msg("no heart rate record for selected date")
			series.Condition = ConditionNoMatch
			return series
		}
		records = []DailyRecord{record}
		layout = layoutOneDate
	}

	invalid := 0
	for _, record := range records {
		if record.HeartRate == nil {
			continue
		}
		for _, value := range record.HeartRate.HeartRateValues {
			if !value.Valid {
				invalid++
				continue
			}
			series.Samples = append(series.Samples, p.newSample(record.Date, value, layout))
		}
	}
	if invalid > 0 {
		log.Warn().Int("invalid", invalid).Str("date", string(series.Filter)).Msg("skipped malformed heart rate values")
	}

	// Sort on the instant; display labels drop the year and do not order correctly.
	sort.SliceStable(series.Samples, func(i, j int) bool {
		return series.Samples[i].TimestampMillis < series.Samples[j].TimestampMillis
	})

	if series.Empty() {
		series.Condition = ConditionNoValues
	}

	log.Debug().Str("date", string(series.Filter)).Int("samples", len(series.Samples)).Msg("heart rate series processed")
	return series
}

func (p *Processor) newSample(date string, value HeartRateValue, layout string) Sample {
	at := time.UnixMilli(value.TimestampMillis).In(p.location())
	return Sample{
		Timestamp:       at.Format(layout),
		TimestampMillis: value.TimestampMillis,
		HeartRate:       value.BPM,
		Highlighted:     value.BPM > HighlightThreshold,
		Date:            date,
	}
}

func (p *Processor) location() *time.Location {
	if p == nil || p.Location == nil {
		return time.Local
	}
	return p.Location
}
