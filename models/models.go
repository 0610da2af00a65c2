package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/phuslu/log"
)

// HighlightThreshold is the bpm value above which a reading is flagged.
// The dashboard draws its reference line at the same value.
const HighlightThreshold = 120.0

// ErrMalformedDataset is returned when the document is not a JSON array of records.
var ErrMalformedDataset = errors.New("heart rate dataset is not a list of daily records")

// Dataset is the ordered list of daily records loaded from the source document.
type Dataset []DailyRecord

// DailyRecord holds one calendar day of measurements.
type DailyRecord struct {
	Date      string          `json:"date"`
	HeartRate *HeartRateBlock `json:"heart_rate,omitempty"`
}

// HeartRateBlock is the nested heart rate payload of a DailyRecord.
// Fields the device did not report stay nil.
type HeartRateBlock struct {
	MaxHeartRate                     *float64         `json:"maxHeartRate,omitempty"`
	MinHeartRate                     *float64         `json:"minHeartRate,omitempty"`
	RestingHeartRate                 *float64         `json:"restingHeartRate,omitempty"`
	LastSevenDaysAvgRestingHeartRate *float64         `json:"lastSevenDaysAvgRestingHeartRate,omitempty"`
	HeartRateValues                  []HeartRateValue `json:"heartRateValues,omitempty"`
}

// HeartRateValue is a single [timestampMillis, bpm] pair.
type HeartRateValue struct {
	TimestampMillis int64
	BPM             float64
	// Valid is false when the pair was not two numbers, e.g. [ts, null].
	Valid bool
}

// UnmarshalJSON accepts both "heart_rate" and the camelCase "heartRate" key.
// A block that is not an object is dropped; the record and its date are kept.
func (r *DailyRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date      string          `json:"date"`
		HeartRate json.RawMessage `json:"heart_rate"`
		CamelCase json.RawMessage `json:"heartRate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Date = raw.Date
	r.HeartRate = nil

	block := raw.HeartRate
	if isNull(block) {
		block = raw.CamelCase
	}
	if isNull(block) {
		return nil
	}

	var decoded HeartRateBlock
	if err := json.Unmarshal(block, &decoded); err != nil {
		log.Warn().Str("date", r.Date).Err(err).Msg("dropping malformed heart rate block")
		return nil
	}
	r.HeartRate = &decoded
	return nil
}

// UnmarshalJSON decodes the summary figures one by one, so a figure of the
// wrong type is left nil without affecting the others or the readings.
func (b *HeartRateBlock) UnmarshalJSON(data []byte) error {
	var raw struct {
		Max             json.RawMessage `json:"maxHeartRate"`
		Min             json.RawMessage `json:"minHeartRate"`
		Resting         json.RawMessage `json:"restingHeartRate"`
		SevenDayAvg     json.RawMessage `json:"lastSevenDaysAvgRestingHeartRate"`
		HeartRateValues json.RawMessage `json:"heartRateValues"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = HeartRateBlock{
		MaxHeartRate:                     figure(raw.Max),
		MinHeartRate:                     figure(raw.Min),
		RestingHeartRate:                 figure(raw.Resting),
		LastSevenDaysAvgRestingHeartRate: figure(raw.SevenDayAvg),
	}
	if isNull(raw.HeartRateValues) {
		return nil
	}
	if err := json.Unmarshal(raw.HeartRateValues, &b.HeartRateValues); err != nil {
		log.Warn().Err(err).Msg("heartRateValues is not a list, ignoring readings")
		b.HeartRateValues = nil
	}
	return nil
}

// figure decodes an optional number. Anything else reads as absent.
func figure(data json.RawMessage) *float64 {
	var v *float64
	if isNull(data) || json.Unmarshal(data, &v) != nil {
		return nil
	}
	return v
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// UnmarshalJSON decodes a pair. Malformed pairs are kept as invalid values
// so that one bad reading never discards the rest of the day.
func (v *HeartRateValue) UnmarshalJSON(data []byte) error {
	*v = HeartRateValue{}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil || len(pair) != 2 {
		return nil
	}

	var ts, bpm *float64
	if err := json.Unmarshal(pair[0], &ts); err != nil || ts == nil {
		return nil
	}
	if err := json.Unmarshal(pair[1], &bpm); err != nil || bpm == nil {
		return nil
	}

	v.TimestampMillis = int64(math.Round(*ts))
	v.BPM = *bpm
	v.Valid = true
	return nil
}

// MarshalJSON writes the pair back in its source shape.
func (v HeartRateValue) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal([]any{v.TimestampMillis, v.BPM})
}

// LoadDataset decodes the raw document. A document that is not a JSON array
// yields a nil Dataset and ErrMalformedDataset; array elements that are not
// records are skipped with a warning.
func LoadDataset(data []byte) (Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformedDataset
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}

	dataset := make(Dataset, 0, len(elements))
	skipped := 0
	for i, element := range elements {
		var record DailyRecord
		if err := json.Unmarshal(element, &record); err != nil {
			log.Warn().Int("index", i).Err(err).Msg("skipping malformed daily record")
			skipped++
			continue
		}
		dataset = append(dataset, record)
	}

	log.Debug().Int("records", len(dataset)).Int("skipped", skipped).Msg("heart rate dataset decoded")
	return dataset, nil
}

// Dates returns the distinct record dates in first-occurrence order.
func (d Dataset) Dates() []string {
	seen := make(map[string]bool, len(d))
	dates := make([]string, 0, len(d))
	for _, record := range d {
		if record.Date == "" || seen[record.Date] {
			continue
		}
		seen[record.Date] = true
		dates = append(dates, record.Date)
	}
	return dates
}

// Find returns the first record dated date. Duplicate dates are not merged.
func (d Dataset) Find(date string) (DailyRecord, bool) {
	for _, record := range d {
		if record.Date == date {
			return record, true
		}
	}
	return DailyRecord{}, false
}

// DailyFigure is one point of the resting heart rate trend.
type DailyFigure struct {
	Date               string  `json:"date"`
	Resting            Reading `json:"resting"`
	SevenDayAvgResting Reading `json:"sevenDayAvgResting"`
}

// DailyResting lists the resting figures of every dated record.
func (d Dataset) DailyResting() []DailyFigure {
	figures := make([]DailyFigure, 0, len(d))
	for _, record := range d {
		if record.Date == "" {
			continue
		}
		stats := SummarizeRecord(record)
		figures = append(figures, DailyFigure{
			Date:               record.Date,
			Resting:            stats.Resting,
			SevenDayAvgResting: stats.SevenDayAvgResting,
		})
	}
	return figures
}
