package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// envelope is the uniform response shape every endpoint returns.
type envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Message    string            `json:"message,omitempty"`
	Errors     []core.FieldError `json:"errors,omitempty"`
	Pagination *pagination       `json:"pagination,omitempty"`
	Detail     string            `json:"detail,omitempty"`
}

// pagination reports the window applied to a list response. Pages is
// ceil(total/limit), 0 when nothing matched.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondCreated(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data, Message: message})
}

func respondMessage(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func respondList(w http.ResponseWriter, data any, p core.Page, total int) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    data,
		Pagination: &pagination{
			Page:  p.Page,
			Limit: p.Limit,
			Total: total,
			Pages: p.PageCount(total),
		},
	})
}

func respondValidation(w http.ResponseWriter, errs core.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Message: "Datos de entrada inválidos",
		Errors:  errs,
	})
}

func respondNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: message})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: message})
}

// respondFailure maps a service error onto the taxonomy: validation
// errors carry the full field list, missing ids are 404, anything else
// is a generic 500 (raw store errors never reach clients).
func (s *Server) respondFailure(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	var verrs core.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respondValidation(w, verrs)
	case errors.Is(err, core.ErrNotFound):
		respondNotFound(w, notFoundMsg)
	default:
		s.logger.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		body := envelope{Success: false, Message: "Error interno del servidor"}
		if s.diagnostics {
			body.Detail = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}
