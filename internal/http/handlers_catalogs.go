package http

import (
	"net/http"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

func (s *Server) handleExpenseTypes(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, core.ExpenseTypes)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	type category struct {
		Code  core.Category `json:"code"`
		Label string        `json:"label"`
	}
	respondData(w, http.StatusOK, []category{
		{Code: core.CategoryExpense, Label: "Egreso"},
		{Code: core.CategoryIncome, Label: "Ingreso"},
	})
}

func (s *Server) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, core.PaymentMethods)
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, core.Months)
}
