package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AlertSource reports the hazard alert currently raised for the operator.
type AlertSource interface {
	Active() (domain.HazardEvent, bool)
}

// Server exposes health, readiness, alert status, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and, when
// alerts is non-nil, /alerts/active routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, alerts AlertSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	if alerts != nil {
		mux.HandleFunc("GET /alerts/active", handleActiveAlert(alerts))
	}
	mux.Handle("GET /metrics", promhttp.Handler())

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

type activeAlertResponse struct {
	Active bool                `json:"active"`
	Alert  *domain.HazardEvent `json:"alert,omitempty"`
}

func handleActiveAlert(alerts AlertSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ev, ok := alerts.Active()
		if !ok {
			sharedobs.WriteJSON(w, http.StatusOK, activeAlertResponse{})
			return
		}
		sharedobs.WriteJSON(w, http.StatusOK, activeAlertResponse{Active: true, Alert: &ev})
	}
}
