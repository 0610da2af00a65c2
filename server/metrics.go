package server

import (
	"strconv"

	"github.com/heartdash/models"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heartdash",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route template and status code.",
	}, []string{"route", "code"})
	samplesEmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "heartdash",
		Subsystem: "series",
		Name:      "samples_emitted_total",
		Help:      "Heart rate samples produced by series processing.",
	})
	samplesHighlighted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "heartdash",
		Subsystem: "series",
		Name:      "samples_highlighted_total",
		Help:      "Heart rate samples above the highlight threshold.",
	})
	seriesConditions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heartdash",
		Subsystem: "series",
		Name:      "conditions_total",
		Help:      "Processed series by resulting data condition.",
	}, []string{"condition"})
	datasetRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "heartdash",
		Subsystem: "dataset",
		Name:      "records",
		Help:      "Daily records in the loaded dataset.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, samplesEmitted, samplesHighlighted, seriesConditions, datasetRecords)
}

// recordSeries counts one processed series.
func recordSeries(series models.Series) {
	samplesEmitted.Add(float64(len(series.Samples)))
	samplesHighlighted.Add(float64(series.HighlightedCount()))
	seriesConditions.WithLabelValues(series.Condition.String()).Inc()
}

// recordRequest counts one served request.
func recordRequest(route string, code int) {
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// recordDataset publishes the size of the loaded dataset.
func recordDataset(dataset models.Dataset) {
	datasetRecords.Set(float64(len(dataset)))
}
