package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/nws-alert-relay/internal/pipeline"
)

// Resender injects a named fixture alert through the dispatch path.
type Resender interface {
	Resend(ctx context.Context, name string) error
}

// Server exposes health, readiness, metrics, and admin HTTP endpoints.
type Server struct {
	httpServer *http.Server
	admin      Admin
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /admin operator routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, admin Admin, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		admin:  admin,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	if admin.Resender != nil {
		mux.HandleFunc("POST /admin/resend/{fixture}", s.handleResend)
	}
	if admin.Stats != nil {
		mux.HandleFunc("GET /admin/status", s.handleStatus)
		mux.HandleFunc("GET /admin/glossary/{term}", s.handleGlossary)
	}
	if admin.Forecaster != nil {
		mux.HandleFunc("GET /admin/forecast", s.handleForecast)
	}
	if admin.Settings != nil {
		mux.HandleFunc("DELETE /admin/guilds/{guild}", s.handleDeleteGuild)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleResend broadcasts a canned alert to every subscriber, for verifying
// channel wiring without waiting for real weather.
func (s *Server) handleResend(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("fixture")

	err := s.admin.Resender.Resend(r.Context(), name)
	switch {
	case errors.Is(err, pipeline.ErrUnknownFixture):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case err != nil:
		s.logger.Error("Fixture resend failed", "fixture", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "resend failed"})
	default:
		s.logger.Info("Fixture resent", "fixture", name)
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "dispatched", "fixture": name})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort admin response
}
