package http

import (
	"encoding/json"
	"net/http"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// recordPayload carries a record create or update body. Every field is
// optional at the decoding layer; create validates the assembled record
// and update merges onto the stored one, so absent fields keep their
// current value.
type recordPayload struct {
	Concept             *string           `json:"concept"`
	Amount              *core.Money       `json:"amount"`
	ExpenseType         *core.ExpenseType `json:"expense_type"`
	PaymentMethod       *string           `json:"payment_method"`
	Month               *string           `json:"month"`
	Year                *int              `json:"year"`
	ChargeDate          *core.Date        `json:"charge_date"`
	PayDate             *core.Date        `json:"pay_date"`
	Category            *core.Category    `json:"category"`
	Installments        *bool             `json:"installments"`
	InstallmentIndex    *int              `json:"installment_index"`
	InstallmentTotal    *int              `json:"installment_total"`
	Split               *bool             `json:"split"`
	Tag                 *string           `json:"tag"`
	MonthlyExpenseLabel *string           `json:"monthly_expense_label"`
}

func (p recordPayload) applyTo(rec *core.Record) {
	if p.Concept != nil {
		rec.Concept = *p.Concept
	}
	if p.Amount != nil {
		rec.Amount = *p.Amount
	}
	if p.ExpenseType != nil {
		rec.ExpenseType = *p.ExpenseType
	}
	if p.PaymentMethod != nil {
		rec.PaymentMethod = *p.PaymentMethod
	}
	if p.Month != nil {
		rec.MonthName = *p.Month
	}
	if p.Year != nil {
		rec.Year = *p.Year
	}
	if p.ChargeDate != nil {
		rec.ChargeDate = *p.ChargeDate
	}
	if p.PayDate != nil {
		rec.PayDate = *p.PayDate
	}
	if p.Category != nil {
		rec.Category = *p.Category
	}
	if p.Installments != nil {
		rec.Installments = *p.Installments
	}
	if p.InstallmentIndex != nil {
		rec.InstallmentIndex = *p.InstallmentIndex
	}
	if p.InstallmentTotal != nil {
		rec.InstallmentTotal = *p.InstallmentTotal
	}
	if p.Split != nil {
		rec.Split = *p.Split
	}
	if p.Tag != nil {
		rec.Tag = *p.Tag
	}
	if p.MonthlyExpenseLabel != nil {
		rec.MonthlyExpenseLabel = *p.MonthlyExpenseLabel
	}
}

// decodeJSON decodes the body, ignoring unknown keys. Clients echo
// whole objects back on update (id, timestamps included); only the
// recognized fields count.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, ferrs := parseFilter(q)
	p, perrs := parsePage(q)
	if errs := append(ferrs, perrs...); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	records, total, err := s.records.List(r.Context(), f, p)
	if err != nil {
		s.respondFailure(w, r, err, "Registro no encontrado")
		return
	}
	if records == nil {
		records = []core.Record{}
	}
	respondList(w, records, p, total)
}

func (s *Server) handleListInstallments(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.ListInstallments(r.Context())
	if err != nil {
		s.respondFailure(w, r, err, "Registro no encontrado")
		return
	}
	if records == nil {
		records = []core.Record{}
	}
	respondData(w, http.StatusOK, records)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "El id debe ser un entero positivo")
		return
	}

	rec, err := s.records.Get(r.Context(), id)
	if err != nil {
		s.respondFailure(w, r, err, "Registro no encontrado")
		return
	}
	respondData(w, http.StatusOK, rec)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondBadRequest(w, "Cuerpo de la solicitud inválido")
		return
	}

	var rec core.Record
	payload.applyTo(&rec)

	created, err := s.records.Create(r.Context(), rec)
	if err != nil {
		s.respondFailure(w, r, err, "Registro no encontrado")
		return
	}

	s.invalidateDashboard()
	respondCreated(w, created, "Registro creado exitosamente")
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "El id debe ser un entero positivo")
		return
	}

	var payload recordPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondBadRequest(w, "Cuerpo de la solicitud inválido")
		return
	}

	stored, err := s.records.Get(r.Context(), id)
	if err != nil {
		s.respondFailure(w, r, err, "Registro no encontrado")
		return
	}
	payload.applyTo(&stored)

	updated, err := s.records.Update(r.Context(), stored)
	if err != nil {
		s.respondFailure(w, r, err, "Registro no encontrado")
		return
	}

	s.invalidateDashboard()
	respondMessage(w, updated, "Registro actualizado exitosamente")
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "El id debe ser un entero positivo")
		return
	}

	if err := s.records.Delete(r.Context(), id); err != nil {
		s.respondFailure(w, r, err, "Registro no encontrado")
		return
	}

	s.invalidateDashboard()
	respondMessage(w, nil, "Registro eliminado exitosamente")
}
