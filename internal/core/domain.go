package core

import (
	"strings"
	"time"
)

type (
	// Category classifies a record as expense ("E") or income ("I").
	Category string

	// ExpenseType is the closed classification of spending pattern.
	ExpenseType string

	// DebtType distinguishes card debts ("T") from other debts ("O").
	DebtType string

	// BalanceItemType distinguishes debit ("D") from credit ("C") items.
	BalanceItemType string

	// Date is a calendar date without a time component.
	Date struct {
		time.Time
	}

	// Record is one expense or income transaction. MonthName and Year are
	// denormalized billing-period fields and need not match the calendar
	// month of ChargeDate.
	Record struct {
		ID                  int64       `json:"id"`
		Concept             string      `json:"concept"`
		Amount              Money       `json:"amount"`
		ExpenseType         ExpenseType `json:"expense_type"`
		PaymentMethod       string      `json:"payment_method"`
		MonthName           string      `json:"month"`
		Year                int         `json:"year"`
		ChargeDate          Date        `json:"charge_date"`
		PayDate             Date        `json:"pay_date"`
		Category            Category    `json:"category"`
		Installments        bool        `json:"installments"`
		InstallmentIndex    int         `json:"installment_index"`
		InstallmentTotal    int         `json:"installment_total"`
		Split               bool        `json:"split"`
		Tag                 string      `json:"tag"`
		MonthlyExpenseLabel string      `json:"monthly_expense_label"`
		CreatedAt           time.Time   `json:"created_at"`
		UpdatedAt           time.Time   `json:"updated_at"`
	}

	// Debt is a standing liability, independent of periodic records. Only
	// its aggregate sum feeds the dashboard.
	Debt struct {
		ID        int64     `json:"id"`
		Type      DebtType  `json:"type"`
		Item      string    `json:"item"`
		Amount    Money     `json:"amount"`
		Date      Date      `json:"date"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// BalanceItem is a reconciliation entry comparing the actual amount on
	// an account against what it should be.
	BalanceItem struct {
		ID         int64           `json:"id"`
		Type       BalanceItemType `json:"type"`
		Concept    string          `json:"concept"`
		Amount     Money           `json:"amount"`
		Expected   Money           `json:"expected_amount"`
		Difference *Money          `json:"difference,omitempty"`
		Comments   *string         `json:"comments,omitempty"`
		CreatedAt  time.Time       `json:"created_at"`
		UpdatedAt  time.Time       `json:"updated_at"`
	}
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// MarshalJSON emits the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate collects every violation in the record into one error list.
// Returns nil when the record is valid.
func (r Record) Validate() error {
	var errs ValidationErrors

	concept := strings.TrimSpace(r.Concept)
	if concept == "" {
		errs.Add("concept", "el concepto es requerido")
	} else if len(r.Concept) > 255 {
		errs.Add("concept", "el concepto no puede tener más de 255 caracteres")
	}

	if err := r.Amount.Validate(); err != nil {
		errs.Add("amount", "el monto es requerido y debe ser distinto de cero")
	}

	if !ValidExpenseType(r.ExpenseType) {
		errs.Add("expense_type", "el tipo de gasto debe ser uno de: Fijo, Variable, MSI, MCI")
	}

	pm := strings.TrimSpace(r.PaymentMethod)
	if pm == "" {
		errs.Add("payment_method", "la forma de pago es requerida")
	} else if len(r.PaymentMethod) > 100 {
		errs.Add("payment_method", "la forma de pago no puede tener más de 100 caracteres")
	}

	if !ValidMonth(r.MonthName) {
		errs.Add("month", "el mes debe ser un nombre de mes válido")
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "el año debe estar entre 2000 y 2100")
	}

	if r.ChargeDate.IsZero() {
		errs.Add("charge_date", "la fecha de cargo es requerida")
	}
	if r.PayDate.IsZero() {
		errs.Add("pay_date", "la fecha de pago es requerida")
	}

	if !ValidCategory(r.Category) {
		errs.Add("category", "la categoría debe ser E o I")
	}

	if r.InstallmentIndex < 0 {
		errs.Add("installment_index", "el número de mensualidad no puede ser negativo")
	}
	if r.InstallmentTotal < 0 {
		errs.Add("installment_total", "el total de meses no puede ser negativo")
	}

	if len(r.Tag) > 50 {
		errs.Add("tag", "el tag no puede tener más de 50 caracteres")
	}
	if len(r.MonthlyExpenseLabel) > 20 {
		errs.Add("monthly_expense_label", "la etiqueta mensual no puede tener más de 20 caracteres")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplyDefaults fills the free-text defaults on empty optional fields.
func (r *Record) ApplyDefaults() {
	if r.Tag == "" {
		r.Tag = "NA"
	}
	if r.MonthlyExpenseLabel == "" {
		r.MonthlyExpenseLabel = "NA"
	}
}

// Validate collects every violation in the debt into one error list.
func (d Debt) Validate() error {
	var errs ValidationErrors

	if d.Type != DebtCard && d.Type != DebtOther {
		errs.Add("type", "el tipo debe ser T (tarjeta) u O (otro)")
	}
	item := strings.TrimSpace(d.Item)
	if item == "" {
		errs.Add("item", "el item es requerido")
	} else if len(d.Item) > 255 {
		errs.Add("item", "el item no puede tener más de 255 caracteres")
	}
	if err := d.Amount.Validate(); err != nil {
		errs.Add("amount", "el monto es requerido y debe ser distinto de cero")
	}
	if d.Date.IsZero() {
		errs.Add("date", "la fecha es requerida")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate collects every violation in the balance item into one error list.
func (b BalanceItem) Validate() error {
	var errs ValidationErrors

	if b.Type != BalanceDebit && b.Type != BalanceCredit {
		errs.Add("type", "el tipo debe ser D (debe) o C (crédito)")
	}
	concept := strings.TrimSpace(b.Concept)
	if concept == "" {
		errs.Add("concept", "el concepto es requerido")
	} else if len(b.Concept) > 255 {
		errs.Add("concept", "el concepto no puede tener más de 255 caracteres")
	}
	if err := b.Amount.Validate(); err != nil {
		errs.Add("amount", "el monto es requerido y debe ser distinto de cero")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ComputeDifference fills Difference with expected − amount when the
// client did not supply one.
func (b *BalanceItem) ComputeDifference() {
	if b.Difference == nil {
		b.Difference = &Money{Cents: b.Expected.Cents - b.Amount.Cents}
	}
}
