// Package server serves the heart rate dashboard and its JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cli/browser"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/heartdash/config"
	"github.com/heartdash/models"
	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Server renders views of a dataset loaded once at startup. The dataset is
// never modified, so concurrent requests share it without locking.
type Server struct {
	cfg       *config.Config
	dataset   models.Dataset
	processor *models.Processor
}

// New returns a Server for dataset.
func New(cfg *config.Config, dataset models.Dataset) *Server {
	recordDataset(dataset)
	return &Server{
		cfg:       cfg,
		dataset:   dataset,
		processor: models.NewProcessor(cfg.Location()),
	}
}

// Handler returns the routed, wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.indexHandler).Methods(http.MethodGet)
	router.HandleFunc("/charts", s.chartsHandler).Methods(http.MethodGet)
	router.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/series", s.seriesHandler).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.summaryHandler).Methods(http.MethodGet)
	api.HandleFunc("/dates", s.datesHandler).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler())

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handlers.CompressHandler(loggingMiddleware(router)))
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	url := "http://" + listener.Addr().String()
	log.Info().Str("url", url).Int("records", len(s.dataset)).Msg("heart rate dashboard listening")

	if s.cfg.Open {
		if err := browser.OpenURL(url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to open browser")
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info().Msg("shutting down heart rate dashboard")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}
