package http

import (
	"net/http"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

type debtPayload struct {
	Type   *core.DebtType `json:"type"`
	Item   *string        `json:"item"`
	Amount *core.Money    `json:"amount"`
	Date   *core.Date     `json:"date"`
}

func (p debtPayload) applyTo(d *core.Debt) {
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.Item != nil {
		d.Item = *p.Item
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.Date != nil {
		d.Date = *p.Date
	}
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.debts.List(r.Context())
	if err != nil {
		s.respondFailure(w, r, err, "Deuda no encontrada")
		return
	}
	if debts == nil {
		debts = []core.Debt{}
	}
	respondData(w, http.StatusOK, debts)
}

func (s *Server) handleGetDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "El id debe ser un entero positivo")
		return
	}

	d, err := s.debts.Get(r.Context(), id)
	if err != nil {
		s.respondFailure(w, r, err, "Deuda no encontrada")
		return
	}
	respondData(w, http.StatusOK, d)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var payload debtPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondBadRequest(w, "Cuerpo de la solicitud inválido")
		return
	}

	var d core.Debt
	payload.applyTo(&d)

	created, err := s.debts.Create(r.Context(), d)
	if err != nil {
		s.respondFailure(w, r, err, "Deuda no encontrada")
		return
	}

	s.invalidateDashboard()
	respondCreated(w, created, "Deuda creada exitosamente")
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "El id debe ser un entero positivo")
		return
	}

	var payload debtPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondBadRequest(w, "Cuerpo de la solicitud inválido")
		return
	}

	stored, err := s.debts.Get(r.Context(), id)
	if err != nil {
		s.respondFailure(w, r, err, "Deuda no encontrada")
		return
	}
	payload.applyTo(&stored)

	updated, err := s.debts.Update(r.Context(), stored)
	if err != nil {
		s.respondFailure(w, r, err, "Deuda no encontrada")
		return
	}

	s.invalidateDashboard()
	respondMessage(w, updated, "Deuda actualizada exitosamente")
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "El id debe ser un entero positivo")
		return
	}

	if err := s.debts.Delete(r.Context(), id); err != nil {
		s.respondFailure(w, r, err, "Deuda no encontrada")
		return
	}

	s.invalidateDashboard()
	respondMessage(w, nil, "Deuda eliminada exitosamente")
}
