package models

import "math"

// Zone is a heart rate band. Min is inclusive, Max exclusive.
type Zone struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

// Zones are ordered bottom to top.
var Zones = []Zone{
	{Name: "Out of Range", Min: 0, Max: 86},
	{Name: "Fat Burn", Min: 86, Max: 121},
	{Name: "Cardio", Min: 121, Max: 147},
	{Name: "Peak", Min: 147, Max: 220},
}

// ZoneOf returns the zone bpm falls into. Readings above the top band count as Peak.
func ZoneOf(bpm float64) Zone {
	for _, zone := range Zones {
		if bpm < float64(zone.Max) {
			return zone
		}
	}
	return Zones[len(Zones)-1]
}

// ZoneCount is the share of samples spent in one zone.
type ZoneCount struct {
	Zone
	Samples    int     `json:"samples"`
	Percentage float64 `json:"percentage"`
}

// ZoneCounts buckets samples by zone, in zone order.
func ZoneCounts(samples []Sample) []ZoneCount {
	counts := make([]ZoneCount, len(Zones))
	index := make(map[string]int, len(Zones))
	for i, zone := range Zones {
		counts[i] = ZoneCount{Zone: zone}
		index[zone.Name] = i
	}

	for _, sample := range samples {
		counts[index[ZoneOf(sample.HeartRate).Name]].Samples++
	}

	if len(samples) == 0 {
		return counts
	}
	for i := range counts {
		percentage := float64(counts[i].Samples) / float64(len(samples)) * 100
		counts[i].Percentage = math.Round(percentage*10) / 10
	}
	return counts
}
