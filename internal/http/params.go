package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// idParam extracts the {id} path parameter. ok is false when the value
// is not a positive integer.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// multiValues gathers every value for a query key, splitting
// comma-separated lists. Repeated keys and "a,b" both yield two values.
func multiValues(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// parseFilter compiles the recognized query parameters into filter
// criteria. Unknown parameters are ignored; malformed values for known
// parameters are collected so the client sees every problem at once.
func parseFilter(q url.Values) (core.Filter, core.ValidationErrors) {
	var f core.Filter
	var errs core.ValidationErrors

	for _, v := range multiValues(q, "expense_type") {
		f.ExpenseTypes = append(f.ExpenseTypes, core.ExpenseType(v))
	}
	for _, v := range multiValues(q, "category") {
		f.Categories = append(f.Categories, core.Category(v))
	}
	f.PaymentMethods = multiValues(q, "payment_method")
	f.Months = multiValues(q, "month")
	f.Tags = multiValues(q, "tag")

	for _, v := range multiValues(q, "year") {
		y, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("year", "el año debe ser un número: "+v)
			continue
		}
		f.Years = append(f.Years, y)
	}

	if v := q.Get("charge_date_from"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			errs.Add("charge_date_from", "la fecha debe tener formato YYYY-MM-DD")
		} else {
			f.ChargeDateFrom = d
		}
	}
	if v := q.Get("charge_date_to"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			errs.Add("charge_date_to", "la fecha debe tener formato YYYY-MM-DD")
		} else {
			f.ChargeDateTo = d
		}
	}

	if v := q.Get("installments"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs.Add("installments", "el valor debe ser true o false")
		} else {
			f.Installments = &b
		}
	}
	if v := q.Get("split"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs.Add("split", "el valor debe ser true o false")
		} else {
			f.Split = &b
		}
	}

	return f, errs
}

// parsePage reads the pagination window, falling back to the default
// when absent.
func parsePage(q url.Values) (core.Page, core.ValidationErrors) {
	p := core.DefaultPage
	var errs core.ValidationErrors

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("page", "la página debe ser un número")
		} else {
			p.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("limit", "el límite debe ser un número")
		} else {
			p.Limit = n
		}
	}

	return p, errs
}
