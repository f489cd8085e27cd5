package http

import (
	"context"
	"net/http"
	"time"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz pings the storage backend. Without a pinger (memory
// backend) the process being up is the whole story.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.pinger.Ping(ctx); err != nil {
			s.logger.ErrorContext(r.Context(), "Readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, envelope{
				Success: false,
				Message: "El almacenamiento no está disponible",
			})
			return
		}
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"})
}
