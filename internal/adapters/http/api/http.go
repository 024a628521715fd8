// Package api declares the ops HTTP surface: health and Prometheus metrics.
package api

import (
	"context"
	"net/http"
)

// Server wires the ops HTTP routes.
type Server struct {
	healthHandler *HealthHandler
}

// NewServer creates the ops server.
func NewServer() *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
	}
}

// Register attaches the ops routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
}
