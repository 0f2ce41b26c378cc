// Package server exposes the ingestion pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fcstern/bfvcal/internal/fetch"
	"github.com/fcstern/bfvcal/internal/pipeline"
)

// Server routes calendar requests into the pipeline.
type Server struct {
	pipe   *pipeline.Pipeline
	router *mux.Router
	log    zerolog.Logger
}

func New(pipe *pipeline.Pipeline, log zerolog.Logger) *Server {
	s := &Server{pipe: pipe, router: mux.NewRouter(), log: log}
	s.router.HandleFunc("/bfv/calendar", s.handleCalendar).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe blocks serving on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("listening")
	return srv.ListenAndServe()
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := pipeline.Request{
		URL:      q.Get("url"),
		MoreURL:  q.Get("moreUrl"),
		Clean:    q.Get("clean") == "1",
		HomeOnly: q.Get("homeOnly") == "1",
	}

	res, err := s.pipe.Run(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if q.Get("debug") == "1" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(res.Report); err != nil {
			s.log.Error().Err(err).Msg("writing debug report")
		}
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Disposition", `attachment; filename="bfv-calendar.ics"`)
	if _, err := w.Write([]byte(res.Calendar)); err != nil {
		s.log.Error().Err(err).Msg("writing calendar response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// writeError maps the error taxonomy onto HTTP statuses. Diagnostic
// strings are bounded; upstream bodies never pass through unclipped.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var upstream *fetch.UpstreamError
	switch {
	case errors.Is(err, pipeline.ErrMissingParameter),
		errors.Is(err, fetch.ErrInvalidURL),
		errors.Is(err, fetch.ErrUnsupportedScheme):
		status = http.StatusBadRequest
	case errors.Is(err, fetch.ErrHostNotAllowed):
		status = http.StatusForbidden
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	s.log.Warn().Err(err).Int("status", status).Msg("request failed")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": fetch.Snippet(err.Error()),
	})
}
