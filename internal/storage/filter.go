package storage

import (
	"strings"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// buildRecordWhere compiles a core.Filter into a SQL WHERE clause and
// its arguments. Fields combine with AND; values within a multi-valued
// field become an IN list (OR). The charge-date range is inclusive on
// both bounds; either bound may be absent. An empty filter yields an
// empty clause.
func buildRecordWhere(f core.Filter) (string, []any) {
	var conds []string
	var args []any

	if len(f.ExpenseTypes) > 0 {
		conds = append(conds, "expense_type IN ("+placeholders(len(f.ExpenseTypes))+")")
		for _, v := range f.ExpenseTypes {
			args = append(args, string(v))
		}
	}
	if len(f.Categories) > 0 {
		conds = append(conds, "category IN ("+placeholders(len(f.Categories))+")")
		for _, v := range f.Categories {
			args = append(args, string(v))
		}
	}
	if len(f.PaymentMethods) > 0 {
		conds = append(conds, "payment_method IN ("+placeholders(len(f.PaymentMethods))+")")
		for _, v := range f.PaymentMethods {
			args = append(args, v)
		}
	}
	if len(f.Months) > 0 {
		conds = append(conds, "month_name IN ("+placeholders(len(f.Months))+")")
		for _, v := range f.Months {
			args = append(args, v)
		}
	}
	if len(f.Years) > 0 {
		conds = append(conds, "year IN ("+placeholders(len(f.Years))+")")
		for _, v := range f.Years {
			args = append(args, v)
		}
	}
	if !f.ChargeDateFrom.IsZero() {
		conds = append(conds, "charge_date >= ?")
		args = append(args, f.ChargeDateFrom.Format("2006-01-02"))
	}
	if !f.ChargeDateTo.IsZero() {
		conds = append(conds, "charge_date <= ?")
		args = append(args, f.ChargeDateTo.Format("2006-01-02"))
	}
	if f.Installments != nil {
		conds = append(conds, "installments = ?")
		args = append(args, boolToInt(*f.Installments))
	}
	if f.Split != nil {
		conds = append(conds, "split = ?")
		args = append(args, boolToInt(*f.Split))
	}
	if len(f.Tags) > 0 {
		conds = append(conds, "tag IN ("+placeholders(len(f.Tags))+")")
		for _, v := range f.Tags {
			args = append(args, v)
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
