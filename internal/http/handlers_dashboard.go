package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// handleDashboard serves the summary payload, cache-aside. Scope comes
// from the optional month and year query parameters; an empty scope
// summarizes everything.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var scope core.Scope
	var errs core.ValidationErrors

	if v := q.Get("month"); v != "" {
		if !core.ValidMonth(v) {
			errs.Add("month", "mes inválido: "+v)
		} else {
			scope.Month = v
		}
	}
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs.Add("year", "el año debe ser un número")
		case y < 2000 || y > 2100:
			errs.Add("year", "el año debe estar entre 2000 y 2100")
		default:
			scope.Year = y
		}
	}
	if len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	key := fmt.Sprintf("%d-%s", scope.Year, scope.Month)
	if dash, ok := s.dashCache.Get(key); ok {
		respondData(w, http.StatusOK, dash)
		return
	}

	dash, err := s.dashboard.Assemble(r.Context(), scope)
	if err != nil {
		s.respondFailure(w, r, err, "Recurso no encontrado")
		return
	}

	s.dashCache.Set(key, dash)
	respondData(w, http.StatusOK, dash)
}
