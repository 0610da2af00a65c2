package server

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/heartdash/config"
	"github.com/heartdash/models"
	"github.com/heartdash/templates"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// xAxisLabels is roughly how many timestamps the heart rate axis shows.
const xAxisLabels = 6

// titleCase builds a fresh Caser per call; Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

var thresholdLabel = fmt.Sprintf("Threshold %s bpm", strconv.FormatFloat(models.HighlightThreshold, 'f', -1, 64))

type renderer interface {
	Render(w io.Writer) error
}

// renderCharts builds every chart for view. The heart rate chart is left
// empty when the series has nothing to plot.
func renderCharts(view models.View, chart config.Chart) (templates.Charts, error) {
	var out templates.Charts
	var err error

	if !view.Series.Empty() {
		if out.Heart, err = renderChart(generateHeartRateChart(view, chart)); err != nil {
			return out, fmt.Errorf("failed to render heart rate chart: %w", err)
		}
		if out.Zones, err = renderChart(generateZoneChart(view.Zones, chart.Theme)); err != nil {
			return out, fmt.Errorf("failed to render zone chart: %w", err)
		}
	}
	if len(view.Resting) > 0 {
		if out.Resting, err = renderChart(generateRestingChart(view.Resting, chart.Theme)); err != nil {
			return out, fmt.Errorf("failed to render resting heart rate chart: %w", err)
		}
	}
	return out, nil
}

func renderChart(c renderer) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// generateHeartRateChart plots the series with the threshold line and red
// markers on highlighted readings.
func generateHeartRateChart(view models.View, chart config.Chart) *charts.Line {
	samples := view.Series.Samples
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: chart.Theme, Width: "100%", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    titleCase("heart rate over time"),
			Subtitle: fmt.Sprintf("%d readings, %d above %s bpm", len(samples), view.Stats.Highlighted, strconv.FormatFloat(view.Threshold, 'f', -1, 64)),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate:   15,
				Interval: strconv.Itoa(labelInterval(len(samples))),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "bpm",
			Min:  chart.YMin,
			Max:  chart.YMax,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:            opts.Bool(true),
			Trigger:         "axis",
			BackgroundColor: "#f5f5f5",
			BorderColor:     "#ccc",
		}),
	)

	labels := make([]string, len(samples))
	values := make([]opts.LineData, len(samples))
	var highlighted []opts.ScatterData
	for i, s := range samples {
		labels[i] = s.Timestamp
		values[i] = opts.LineData{Value: s.HeartRate}
		if s.Highlighted {
			highlighted = append(highlighted, opts.ScatterData{Value: []any{i, s.HeartRate}, Symbol: "pin"})
		}
	}

	line.SetXAxis(labels)
	line.AddSeries("Heart Rate", values,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#3182CE", Width: 1.5}),
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: thresholdLabel, YAxis: view.Threshold}),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none"},
			LineStyle: &opts.LineStyle{Color: "red", Type: "dashed"},
			Label:     &opts.Label{Show: opts.Bool(true), Formatter: "Threshold {c} bpm"},
		}),
	)

	if len(highlighted) > 0 {
		scatter := charts.NewScatter()
		scatter.AddSeries("Above Threshold", highlighted,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}),
		)
		line.Overlap(scatter)
	}

	return line
}

// labelInterval is how many labels ECharts skips between the ones it draws.
func labelInterval(n int) int {
	if n <= xAxisLabels {
		return 0
	}
	return int(math.Ceil(float64(n) / xAxisLabels))
}

// generateZoneChart shows the share of readings spent in each heart rate zone.
func generateZoneChart(zones []models.ZoneCount, theme string) *charts.Bar {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: theme, Width: "100%"}),
		charts.WithTitleOpts(opts.Title{
			Title:    titleCase("time in heart rate zones"),
			Subtitle: "Share of readings per zone",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "Percentage of Readings",
			NameLocation: "middle",
			NameGap:      50,
			AxisLabel: &opts.AxisLabel{
				Formatter: "{value}%",
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "shadow",
			},
			BackgroundColor: "rgba(255, 255, 255, 0.9)",
			BorderColor:     "#ccc",
		}),
	)

	names := make([]string, len(zones))
	data := make([]opts.BarData, len(zones))
	for i, zone := range zones {
		names[i] = zone.Name + " (" + strconv.Itoa(zone.Min) + " - " + strconv.Itoa(zone.Max) + " bpm)"
		data[i] = opts.BarData{Value: zone.Percentage}
	}

	bar.SetXAxis(names)
	bar.AddSeries("Readings", data)
	return bar
}

// generateRestingChart plots daily resting heart rate against its 7-day average.
func generateRestingChart(figures []models.DailyFigure, theme string) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: theme, Width: "100%"}),
		charts.WithTitleOpts(opts.Title{
			Title: titleCase("resting heart rate"),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "bpm",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	dates := make([]string, len(figures))
	resting := make([]opts.LineData, len(figures))
	average := make([]opts.LineData, len(figures))
	for i, f := range figures {
		dates[i] = f.Date
		resting[i] = lineValue(f.Resting)
		average[i] = lineValue(f.SevenDayAvgResting)
	}

	line.SetXAxis(dates)
	line.AddSeries("Resting HR", resting)
	line.AddSeries("7-Day Avg Resting HR", average)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// lineValue leaves a gap in the line for missing figures.
func lineValue(r models.Reading) opts.LineData {
	if !r.Valid {
		return opts.LineData{Value: nil}
	}
	return opts.LineData{Value: r.Value}
}
