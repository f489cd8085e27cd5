package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// DashboardService assembles the summary payload. The six queries are
// independent, so they fan out concurrently; any failure aborts the
// whole assembly (fail-fast, no partial payload).
type DashboardService struct {
	agg   AggregateStore
	debts DebtStore
}

func NewDashboardService(agg AggregateStore, debts DebtStore) *DashboardService {
	return &DashboardService{agg: agg, debts: debts}
}

// Assemble computes the dashboard for the given scope. The debt total
// ignores the scope: a liability figure is point-in-time, not periodic.
func (s *DashboardService) Assemble(ctx context.Context, scope core.Scope) (core.Dashboard, error) {
	f := scope.Filter()

	var dash core.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := s.agg.SumByCategory(gctx, f, core.CategoryExpense)
		if err != nil {
			return fmt.Errorf("total expenses: %w", err)
		}
		dash.TotalExpenses = m
		return nil
	})
	g.Go(func() error {
		m, err := s.agg.SumByCategory(gctx, f, core.CategoryIncome)
		if err != nil {
			return fmt.Errorf("total income: %w", err)
		}
		dash.TotalIncome = m
		return nil
	})
	g.Go(func() error {
		byType, err := s.agg.SumByType(gctx, f)
		if err != nil {
			return fmt.Errorf("by type: %w", err)
		}
		dash.ByType = byType
		return nil
	})
	g.Go(func() error {
		byCat, err := s.agg.SumByCategoryGroup(gctx, f)
		if err != nil {
			return fmt.Errorf("by category: %w", err)
		}
		dash.ByCategory = byCat
		return nil
	})
	g.Go(func() error {
		byMonth, err := s.agg.SumByMonth(gctx, f)
		if err != nil {
			return fmt.Errorf("by month: %w", err)
		}
		dash.ByMonth = byMonth
		return nil
	})
	g.Go(func() error {
		total, err := s.debts.DebtTotal(gctx)
		if err != nil {
			return fmt.Errorf("debt total: %w", err)
		}
		dash.TotalDebt = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.Dashboard{}, fmt.Errorf("assemble dashboard: %w", err)
	}

	dash.MonthlyBalance = core.Money{Cents: dash.TotalIncome.Cents - dash.TotalExpenses.Cents}
	return dash, nil
}
