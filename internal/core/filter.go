package core

// Filter is the compiled form of the optional, possibly multi-valued
// criteria a record list or aggregate query accepts. A record matches
// iff every populated field matches (AND across fields); within a
// multi-valued field, membership suffices (OR across values). Empty
// fields impose no constraint.
type Filter struct {
	ExpenseTypes   []ExpenseType
	Categories     []Category
	PaymentMethods []string
	Months         []string
	Years          []int
	ChargeDateFrom Date // zero = open-ended
	ChargeDateTo   Date // zero = open-ended
	Installments   *bool
	Split          *bool
	Tags           []string
}

// Validate checks enum membership of the supplied values, collecting
// every violation. Unknown criteria never reach a Filter; the request
// parser strips them.
func (f Filter) Validate() error {
	var errs ValidationErrors

	for _, t := range f.ExpenseTypes {
		if !ValidExpenseType(t) {
			errs.Add("expense_type", "tipo de gasto inválido: "+string(t))
		}
	}
	for _, c := range f.Categories {
		if !ValidCategory(c) {
			errs.Add("category", "categoría inválida: "+string(c))
		}
	}
	for _, m := range f.Months {
		if !ValidMonth(m) {
			errs.Add("month", "mes inválido: "+m)
		}
	}
	for _, y := range f.Years {
		if y < 2000 || y > 2100 {
			errs.Add("year", "el año debe estar entre 2000 y 2100")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Matches reports whether r satisfies every populated criterion.
// The date range on ChargeDate is inclusive on both bounds.
func (f Filter) Matches(r Record) bool {
	if len(f.ExpenseTypes) > 0 && !containsType(f.ExpenseTypes, r.ExpenseType) {
		return false
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, r.Category) {
		return false
	}
	if len(f.PaymentMethods) > 0 && !containsString(f.PaymentMethods, r.PaymentMethod) {
		return false
	}
	if len(f.Months) > 0 && !containsString(f.Months, r.MonthName) {
		return false
	}
	if len(f.Years) > 0 && !containsInt(f.Years, r.Year) {
		return false
	}
	if !f.ChargeDateFrom.IsZero() && r.ChargeDate.Before(f.ChargeDateFrom.Time) {
		return false
	}
	if !f.ChargeDateTo.IsZero() && r.ChargeDate.After(f.ChargeDateTo.Time) {
		return false
	}
	if f.Installments != nil && r.Installments != *f.Installments {
		return false
	}
	if f.Split != nil && r.Split != *f.Split {
		return false
	}
	if len(f.Tags) > 0 && !containsString(f.Tags, r.Tag) {
		return false
	}
	return true
}

// WithCategory returns a copy of f constrained to a single category,
// replacing any category criteria already present.
func (f Filter) WithCategory(c Category) Filter {
	f.Categories = []Category{c}
	return f
}

func containsType(set []ExpenseType, v ExpenseType) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsCategory(set []Category, v Category) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
