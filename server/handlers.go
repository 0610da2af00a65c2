package server

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/heartdash/export"
	"github.com/heartdash/models"
	"github.com/heartdash/templates"
	"github.com/phuslu/log"
)

// filter reads the date selection, falling back to the configured default.
func (s *Server) filter(r *http.Request) models.DateFilter {
	if date := r.URL.Query().Get("date"); date != "" {
		return models.ParseDateFilter(date)
	}
	return models.ParseDateFilter(s.cfg.Date)
}

func (s *Server) view(r *http.Request) models.View {
	view := s.processor.BuildView(s.dataset, s.filter(r))
	recordSeries(view.Series)
	return view
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	view := s.view(r)
	charts, err := renderCharts(view, s.cfg.Chart)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	templ.Handler(templates.Index(view, charts)).ServeHTTP(w, r)
}

func (s *Server) chartsHandler(w http.ResponseWriter, r *http.Request) {
	view := s.view(r)
	charts, err := renderCharts(view, s.cfg.Chart)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	templ.Handler(templates.ChartsSection(view, charts)).ServeHTTP(w, r)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("endpoint", r.URL.Path).Msg("failed to render dashboard")
	component := templates.Error("Failed to render dashboard: " + err.Error())
	templ.Handler(component, templ.WithStatus(http.StatusInternalServerError)).ServeHTTP(w, r)
}

func (s *Server) seriesHandler(w http.ResponseWriter, r *http.Request) {
	series := s.processor.FlattenAndFilter(s.dataset, s.filter(r))
	recordSeries(series)

	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteJSON(w, series); err != nil {
		log.Error().Err(err).Msg("failed to write series response")
	}
}

// SummaryResponse is the body of GET /api/summary.
type SummaryResponse struct {
	Date  models.DateFilter   `json:"date"`
	Stats models.SummaryStats `json:"stats"`
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	view := s.view(r)
	writeJSON(w, SummaryResponse{Date: view.Filter, Stats: view.Stats})
}

// DatesResponse is the body of GET /api/dates.
type DatesResponse struct {
	Dates []string `json:"dates"`
}

func (s *Server) datesHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, DatesResponse{Dates: s.dataset.Dates()})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}
