// Package templates holds the dashboard's templ components. The *_templ.go
// files are generated from the .templ sources with `templ generate`.
package templates

import (
	"html/template"

	"github.com/heartdash/models"
)

// Charts are pre-rendered chart fragments. Heart is empty when there is nothing to plot.
type Charts struct {
	Heart   template.HTML
	Zones   template.HTML
	Resting template.HTML
}

type dateOption struct {
	Value    string
	Label    string
	Selected bool
}

// dateOptions lists "All dates" followed by every distinct date.
func dateOptions(view models.View) []dateOption {
	options := []dateOption{{Value: string(models.AllDates), Label: "All dates", Selected: view.Filter.IsAll()}}
	for _, date := range view.Dates {
		options = append(options, dateOption{Value: date, Label: date, Selected: string(view.Filter) == date})
	}
	return options
}
