package http

import (
	"net/http"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

type balancePayload struct {
	Type       *core.BalanceItemType `json:"type"`
	Concept    *string               `json:"concept"`
	Amount     *core.Money           `json:"amount"`
	Expected   *core.Money           `json:"expected_amount"`
	Difference *core.Money           `json:"difference"`
	Comments   *string               `json:"comments"`
}

func (p balancePayload) applyTo(b *core.BalanceItem) {
	if p.Type != nil {
		b.Type = *p.Type
	}
	if p.Concept != nil {
		b.Concept = *p.Concept
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Expected != nil {
		b.Expected = *p.Expected
	}
	if p.Difference != nil {
		b.Difference = p.Difference
	}
	if p.Comments != nil {
		b.Comments = p.Comments
	}
}

func (s *Server) handleListBalance(w http.ResponseWriter, r *http.Request) {
	items, err := s.balance.List(r.Context())
	if err != nil {
		s.respondFailure(w, r, err, "Partida no encontrada")
		return
	}
	if items == nil {
		items = []core.BalanceItem{}
	}
	respondData(w, http.StatusOK, items)
}

func (s *Server) handleGetBalanceItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "El id debe ser un entero positivo")
		return
	}

	item, err := s.balance.Get(r.Context(), id)
	if err != nil {
		s.respondFailure(w, r, err, "Partida no encontrada")
		return
	}
	respondData(w, http.StatusOK, item)
}

func (s *Server) handleCreateBalanceItem(w http.ResponseWriter, r *http.Request) {
	var payload balancePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondBadRequest(w, "Cuerpo de la solicitud inválido")
		return
	}

	var item core.BalanceItem
	payload.applyTo(&item)

	created, err := s.balance.Create(r.Context(), item)
	if err != nil {
		s.respondFailure(w, r, err, "Partida no encontrada")
		return
	}
	respondCreated(w, created, "Partida creada exitosamente")
}

func (s *Server) handleUpdateBalanceItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "El id debe ser un entero positivo")
		return
	}

	var payload balancePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondBadRequest(w, "Cuerpo de la solicitud inválido")
		return
	}

	stored, err := s.balance.Get(r.Context(), id)
	if err != nil {
		s.respondFailure(w, r, err, "Partida no encontrada")
		return
	}
	// Recompute the difference unless the client pinned one explicitly.
	if payload.Difference == nil {
		stored.Difference = nil
	}
	payload.applyTo(&stored)

	updated, err := s.balance.Update(r.Context(), stored)
	if err != nil {
		s.respondFailure(w, r, err, "Partida no encontrada")
		return
	}
	respondMessage(w, updated, "Partida actualizada exitosamente")
}

func (s *Server) handleDeleteBalanceItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "El id debe ser un entero positivo")
		return
	}

	if err := s.balance.Delete(r.Context(), id); err != nil {
		s.respondFailure(w, r, err, "Partida no encontrada")
		return
	}
	respondMessage(w, nil, "Partida eliminada exitosamente")
}
