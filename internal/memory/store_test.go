package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

func testRecord(concept string, cents int64, cat core.Category) core.Record {
	return core.Record{
		Concept:       concept,
		Amount:        core.Money{Cents: cents},
		ExpenseType:   core.TypeVariable,
		PaymentMethod: "Efectivo",
		MonthName:     "Agosto",
		Year:          2025,
		ChargeDate:    core.NewDate(2025, 8, 10),
		PayDate:       core.NewDate(2025, 8, 15),
		Category:      cat,
	}
}

func TestStoreRecordLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateRecord(ctx, testRecord("café", 4500, core.CategoryExpense))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("first id = %d, want 1", created.ID)
	}

	created.Concept = "café y pan"
	updated, err := s.UpdateRecord(ctx, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Concept != "café y pan" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Error("update must preserve CreatedAt")
	}

	if err := s.DeleteRecord(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetRecord(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteRecord(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestStoreListOrderingAndPaging(t *testing.T) {
	s := New()
	ctx := context.Background()

	dates := []core.Date{
		core.NewDate(2025, 8, 5),
		core.NewDate(2025, 8, 20),
		core.NewDate(2025, 8, 12),
	}
	for i, d := range dates {
		rec := testRecord("r", int64(100*(i+1)), core.CategoryExpense)
		rec.ChargeDate = d
		if _, err := s.CreateRecord(ctx, rec); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	records, total, err := s.ListRecords(ctx, core.Filter{}, core.Page{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(records) != 2 {
		t.Fatalf("total = %d, len = %d, want 3, 2", total, len(records))
	}
	if !records[0].ChargeDate.Equal(core.NewDate(2025, 8, 20).Time) {
		t.Errorf("first record = %v, want newest charge date", records[0].ChargeDate)
	}

	records, total, err = s.ListRecords(ctx, core.Filter{}, core.Page{Page: 9, Limit: 2})
	if err != nil || total != 3 || len(records) != 0 {
		t.Errorf("overshoot: records = %d, total = %d, err = %v", len(records), total, err)
	}
}

func TestStoreAggregates(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, rec := range []core.Record{
		testRecord("Depósito", 28100, core.CategoryExpense),
		testRecord("Puntos", -1000, core.CategoryIncome),
		testRecord("Vianney má", 86700, core.CategoryExpense),
	} {
		if _, err := s.CreateRecord(ctx, rec); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	f := (core.Scope{Year: 2025, Month: "Agosto"}).Filter()

	expenses, _ := s.SumByCategory(ctx, f, core.CategoryExpense)
	if expenses.Cents != 114800 {
		t.Errorf("expenses = %s, want 1148.00", expenses)
	}
	income, _ := s.SumByCategory(ctx, f, core.CategoryIncome)
	if income.Cents != -1000 {
		t.Errorf("income = %s, want -10.00", income)
	}

	byType, _ := s.SumByType(ctx, f)
	if byType[core.TypeVariable].Cents != 114800 {
		t.Errorf("by type = %v", byType)
	}

	byMonth, _ := s.SumByMonth(ctx, f)
	if len(byMonth) != 1 || byMonth[0].Total.Cents != 114800 {
		t.Errorf("by month = %v", byMonth)
	}
}

func TestStoreDebtsAndBalance(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateDebt(ctx, core.Debt{Type: core.DebtCard, Item: "TDC", Amount: core.Money{Cents: 500000}, Date: core.NewDate(2025, 8, 1)}); err != nil {
		t.Fatalf("create debt: %v", err)
	}
	if _, err := s.CreateDebt(ctx, core.Debt{Type: core.DebtOther, Item: "Préstamo", Amount: core.Money{Cents: 250000}, Date: core.NewDate(2025, 7, 1)}); err != nil {
		t.Fatalf("create debt: %v", err)
	}

	total, err := s.DebtTotal(ctx)
	if err != nil {
		t.Fatalf("debt total: %v", err)
	}
	if total.Cents != 750000 {
		t.Errorf("debt total = %s, want 7500.00", total)
	}

	item, err := s.CreateBalanceItem(ctx, core.BalanceItem{
		Type: core.BalanceDebit, Concept: "Cuenta", Amount: core.Money{Cents: 90000}, Expected: core.Money{Cents: 100000},
	})
	if err != nil {
		t.Fatalf("create balance item: %v", err)
	}
	if _, err := s.GetBalanceItem(ctx, item.ID); err != nil {
		t.Errorf("get balance item: %v", err)
	}
	if err := s.DeleteBalanceItem(ctx, item.ID); err != nil {
		t.Errorf("delete balance item: %v", err)
	}
}
