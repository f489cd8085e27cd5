package core

// Page is a 1-based pagination window over an ordered, filtered set.
type Page struct {
	Page  int
	Limit int
}

// DefaultPage is the window applied when the client supplies nothing.
var DefaultPage = Page{Page: 1, Limit: 20}

// Validate checks the window bounds, collecting every violation.
func (p Page) Validate() error {
	var errs ValidationErrors

	if p.Page < 1 {
		errs.Add("page", "la página debe ser mayor o igual a 1")
	}
	if p.Limit < 1 || p.Limit > 100 {
		errs.Add("limit", "el límite debe estar entre 1 y 100")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Offset returns the number of rows to skip: (page-1) * limit.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageCount returns ceil(total/limit), 0 when total is 0. Pages beyond
// the count yield empty slices, never errors.
func (p Page) PageCount(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
