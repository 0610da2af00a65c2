package models

// View is everything one dashboard render needs, computed from scratch per request.
type View struct {
	Title     string        `json:"title"`
	Filter    DateFilter    `json:"date"`
	Dates     []string      `json:"dates"`
	Series    Series        `json:"series"`
	Stats     SummaryStats  `json:"stats"`
	Zones     []ZoneCount   `json:"zones"`
	Resting   []DailyFigure `json:"resting"`
	Threshold float64       `json:"threshold"`
}

// BuildView flattens the dataset for filter and derives the summary card.
// Max and min come from the samples; resting figures come from the selected
// record, or from the first record when every date is shown.
func (p *Processor) BuildView(dataset Dataset, filter DateFilter) View {
	series := p.FlattenAndFilter(dataset, filter)

	var block SummaryStats
	if series.Filter.IsAll() {
		block = SummarizeDataset(dataset)
	} else if record, ok := dataset.Find(string(series.Filter)); ok {
		block = SummarizeRecord(record)
	}

	stats := Summarize(series.Samples)
	stats.Resting = block.Resting
	stats.SevenDayAvgResting = block.SevenDayAvgResting

	return View{
		Title:     title(dataset, series.Filter),
		Filter:    series.Filter,
		Dates:     dataset.Dates(),
		Series:    series,
		Stats:     stats.Or(block),
		Zones:     ZoneCounts(series.Samples),
		Resting:   dataset.DailyResting(),
		Threshold: HighlightThreshold,
	}
}

func title(dataset Dataset, filter DateFilter) string {
	const prefix = "Heart Rate Analysis - "
	if !filter.IsAll() {
		return prefix + string(filter)
	}

	dates := dataset.Dates()
	switch len(dates) {
	case 0:
		return prefix + "No Data"
	case 1:
		return prefix + dates[0]
	default:
		return prefix + dates[0] + " to " + dates[len(dates)-1]
	}
}
