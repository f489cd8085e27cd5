// Package services orchestrates the stores: CRUD with mutation event
// publishing, and the dashboard assembly fan-out.
package services

import (
	"context"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// Ports for the storage backends. The SQLite repository and the
// in-memory store both satisfy them.
type (
	RecordStore interface {
		CreateRecord(ctx context.Context, rec core.Record) (core.Record, error)
		GetRecord(ctx context.Context, id int64) (core.Record, error)
		UpdateRecord(ctx context.Context, rec core.Record) (core.Record, error)
		DeleteRecord(ctx context.Context, id int64) error
		ListRecords(ctx context.Context, f core.Filter, p core.Page) ([]core.Record, int, error)
		ListInstallmentRecords(ctx context.Context) ([]core.Record, error)
	}

	// AggregateStore serves the dashboard queries. Every method takes the
	// same filter the list view uses.
	AggregateStore interface {
		SumByCategory(ctx context.Context, f core.Filter, c core.Category) (core.Money, error)
		SumByType(ctx context.Context, f core.Filter) (map[core.ExpenseType]core.Money, error)
		SumByCategoryGroup(ctx context.Context, f core.Filter) (map[core.Category]core.Money, error)
		SumByMonth(ctx context.Context, f core.Filter) ([]core.MonthTotal, error)
	}

	DebtStore interface {
		ListDebts(ctx context.Context) ([]core.Debt, error)
		CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error)
		GetDebt(ctx context.Context, id int64) (core.Debt, error)
		UpdateDebt(ctx context.Context, d core.Debt) (core.Debt, error)
		DeleteDebt(ctx context.Context, id int64) error
		DebtTotal(ctx context.Context) (core.Money, error)
	}

	BalanceStore interface {
		ListBalanceItems(ctx context.Context) ([]core.BalanceItem, error)
		CreateBalanceItem(ctx context.Context, b core.BalanceItem) (core.BalanceItem, error)
		GetBalanceItem(ctx context.Context, id int64) (core.BalanceItem, error)
		UpdateBalanceItem(ctx context.Context, b core.BalanceItem) (core.BalanceItem, error)
		DeleteBalanceItem(ctx context.Context, id int64) error
	}

	// EventPublisher emits mutation events after a committed write.
	// Publish failures are logged by callers, never surfaced to clients:
	// the write already happened.
	EventPublisher interface {
		PublishMutation(ctx context.Context, entity, action string, id int64) error
	}
)
