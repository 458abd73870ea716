// Package server exposes the HTTP surface: the lead API, the static mini app,
// health and Prometheus metrics.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kartabot/kartabot/internal/lead"
	"github.com/kartabot/kartabot/pkg/logger"
)

// Server builds the HTTP router around the lead notifier.
type Server struct {
	notifier lead.Notifier
	webDir   string
	log      *slog.Logger
}

// New constructs a Server. webDir is optional; when empty no static files are
// served.
func New(notifier lead.Notifier, webDir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	return &Server{
		notifier: notifier,
		webDir:   webDir,
		log:      log,
	}
}

// Handler returns the assembled HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(logger.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/lead", s.handleLead)

	if s.webDir != "" {
		fs := http.FileServer(http.Dir(s.webDir))
		r.Handle("/*", fs)
	}

	return r
}

// HTTPServer wraps the handler in an http.Server bound to addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
