package core

// Static catalogs. These are the enumerations the validation layer
// enforces; payment methods are advisory only (the field stays free
// text so imported statements keep their original labels).

const (
	CategoryExpense Category = "E"
	CategoryIncome  Category = "I"
)

const (
	TypeFixed            ExpenseType = "Fijo"
	TypeVariable         ExpenseType = "Variable"
	TypeInstallmentsMSI  ExpenseType = "MSI"
	TypeInstallmentsMCI  ExpenseType = "MCI"
)

const (
	DebtCard  DebtType = "T"
	DebtOther DebtType = "O"
)

const (
	BalanceDebit  BalanceItemType = "D"
	BalanceCredit BalanceItemType = "C"
)

// ExpenseTypes lists the closed set of spending classifications.
var ExpenseTypes = []ExpenseType{TypeFixed, TypeVariable, TypeInstallmentsMSI, TypeInstallmentsMCI}

// Categories lists the record categories: E (egreso) and I (ingreso).
var Categories = []Category{CategoryExpense, CategoryIncome}

// PaymentMethods is the advisory catalog served to clients.
var PaymentMethods = []string{
	"Efectivo",
	"Tarjeta Débito",
	"Tarjeta Crédito",
	"Transferencia",
	"PayPal",
	"Otro",
}

// Months lists the Spanish month names in calendar order. Month names on
// records are billing-period labels, independent of the charge date.
var Months = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var monthOrdinals = func() map[string]int {
	m := make(map[string]int, len(Months))
	for i, name := range Months {
		m[name] = i + 1
	}
	return m
}()

// MonthOrdinal maps a Spanish month name to its 1-based calendar
// position. Lexical order of the names is NOT calendar order, so every
// month sort must go through this mapping.
func MonthOrdinal(name string) (int, bool) {
	n, ok := monthOrdinals[name]
	return n, ok
}

// ValidExpenseType reports whether t belongs to the closed set.
func ValidExpenseType(t ExpenseType) bool {
	for _, v := range ExpenseTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is E or I.
func ValidCategory(c Category) bool {
	return c == CategoryExpense || c == CategoryIncome
}

// ValidMonth reports whether name is a known Spanish month name.
func ValidMonth(name string) bool {
	_, ok := monthOrdinals[name]
	return ok
}
