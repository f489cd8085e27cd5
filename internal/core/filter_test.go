package core

import "testing"

func sampleRecord() Record {
	return Record{
		Concept:       "Depósito",
		Amount:        Money{Cents: 28100},
		ExpenseType:   TypeVariable,
		PaymentMethod: "Transferencia",
		MonthName:     "Agosto",
		Year:          2025,
		ChargeDate:    NewDate(2025, 8, 10),
		PayDate:       NewDate(2025, 8, 15),
		Category:      CategoryExpense,
	}
}

func TestFilterEmptyMatchesEverything(t *testing.T) {
	if !(Filter{}).Matches(sampleRecord()) {
		t.Error("empty filter should match any record")
	}
}

func TestFilterAndAcrossFields(t *testing.T) {
	r := sampleRecord()

	f := Filter{
		Categories: []Category{CategoryExpense},
		Months:     []string{"Agosto"},
	}
	if !f.Matches(r) {
		t.Error("record should match when every field matches")
	}

	// One failing field rejects the record even if the rest match.
	f.Years = []int{2024}
	if f.Matches(r) {
		t.Error("record should not match when any populated field fails")
	}
}

func TestFilterOrWithinField(t *testing.T) {
	r := sampleRecord()

	f := Filter{ExpenseTypes: []ExpenseType{TypeFixed, TypeVariable}}
	if !f.Matches(r) {
		t.Error("membership in a multi-valued field should suffice")
	}

	f = Filter{ExpenseTypes: []ExpenseType{TypeFixed, TypeInstallmentsMSI}}
	if f.Matches(r) {
		t.Error("record outside every value of the field should not match")
	}
}

func TestFilterDateRangeInclusive(t *testing.T) {
	r := sampleRecord() // charge date 2025-08-10

	tests := []struct {
		name string
		from Date
		to   Date
		want bool
	}{
		{"inside range", NewDate(2025, 8, 1), NewDate(2025, 8, 31), true},
		{"on lower bound", NewDate(2025, 8, 10), Date{}, true},
		{"on upper bound", Date{}, NewDate(2025, 8, 10), true},
		{"before range", NewDate(2025, 8, 11), Date{}, false},
		{"after range", Date{}, NewDate(2025, 8, 9), false},
		{"open both ends", Date{}, Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Filter{ChargeDateFrom: tt.from, ChargeDateTo: tt.to}
			if got := f.Matches(r); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterBooleanCriteria(t *testing.T) {
	r := sampleRecord()
	r.Installments = true

	yes, no := true, false
	if !(Filter{Installments: &yes}).Matches(r) {
		t.Error("installments=true should match")
	}
	if (Filter{Installments: &no}).Matches(r) {
		t.Error("installments=false should not match")
	}
	if !(Filter{Split: &no}).Matches(r) {
		t.Error("split=false should match a non-split record")
	}
}

func TestFilterValidateCollectsAllViolations(t *testing.T) {
	f := Filter{
		ExpenseTypes: []ExpenseType{"Fijo", "Mensual"},
		Categories:   []Category{"X"},
		Months:       []string{"Agosto", "Augusto"},
		Years:        []int{1999},
	}

	err := f.Validate()
	verrs, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 4 {
		t.Errorf("expected 4 violations, got %d: %v", len(verrs), verrs)
	}
}

func TestFilterWithCategoryReplaces(t *testing.T) {
	f := Filter{Categories: []Category{CategoryIncome}}
	g := f.WithCategory(CategoryExpense)

	if len(g.Categories) != 1 || g.Categories[0] != CategoryExpense {
		t.Errorf("WithCategory = %v, want [E]", g.Categories)
	}
	if f.Categories[0] != CategoryIncome {
		t.Error("WithCategory must not mutate the receiver")
	}
}
