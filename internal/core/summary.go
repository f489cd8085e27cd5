package core

import "sort"

// Scope narrows a dashboard query to a billing period. Zero values
// impose no constraint (empty scope = all records).
type Scope struct {
	Year  int
	Month string
}

// Filter compiles the scope into record filter criteria.
func (s Scope) Filter() Filter {
	var f Filter
	if s.Year != 0 {
		f.Years = []int{s.Year}
	}
	if s.Month != "" {
		f.Months = []string{s.Month}
	}
	return f
}

// MonthTotal is one point of the expense trend: the expense sum for a
// (month, year) billing period.
type MonthTotal struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Total Money  `json:"total"`
}

// Dashboard is the assembled summary payload. TotalDebt is the standing
// liability figure over all debts, never scoped to the period.
type Dashboard struct {
	TotalExpenses  Money                 `json:"total_expenses"`
	TotalIncome    Money                 `json:"total_income"`
	MonthlyBalance Money                 `json:"monthly_balance"`
	ByType         map[ExpenseType]Money `json:"by_type"`
	ByCategory     map[Category]Money    `json:"by_category"`
	ByMonth        []MonthTotal          `json:"by_month"`
	TotalDebt      Money                 `json:"total_debt"`
}

// SortMonthTotals orders trend points ascending by (year, calendar
// month). Month names must go through MonthOrdinal: their lexical order
// is not calendar order. Unknown names sort last.
func SortMonthTotals(items []MonthTotal) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Year != items[j].Year {
			return items[i].Year < items[j].Year
		}
		oi, oki := MonthOrdinal(items[i].Month)
		oj, okj := MonthOrdinal(items[j].Month)
		if !oki {
			oi = len(Months) + 1
		}
		if !okj {
			oj = len(Months) + 1
		}
		return oi < oj
	})
}
