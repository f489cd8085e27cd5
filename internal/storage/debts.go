package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

const debtColumns = "id, type, item, amount_cents, date, created_at, updated_at"

// ListDebts returns every debt ordered by date descending.
func (r *SQLiteRepository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+debtColumns+" FROM debts ORDER BY date DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	debts := []core.Debt{}
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate debts: %w", err)
	}
	return debts, nil
}

// CreateDebt inserts the debt and returns it with the assigned id.
func (r *SQLiteRepository) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO debts (type, item, amount_cents, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(d.Type), d.Item, d.Amount.Cents, dateText(d.Date), timeText(now), timeText(now))
	if err != nil {
		return core.Debt{}, fmt.Errorf("insert debt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Debt{}, fmt.Errorf("debt insert id: %w", err)
	}
	return r.GetDebt(ctx, id)
}

// GetDebt returns the debt or core.ErrNotFound.
func (r *SQLiteRepository) GetDebt(ctx context.Context, id int64) (core.Debt, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE id = ?", id)
	d, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Debt{}, core.ErrNotFound
	}
	if err != nil {
		return core.Debt{}, fmt.Errorf("get debt %d: %w", id, err)
	}
	return d, nil
}

// UpdateDebt replaces every mutable field of the debt.
func (r *SQLiteRepository) UpdateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE debts SET type = ?, item = ?, amount_cents = ?, date = ?, updated_at = ?
		WHERE id = ?`,
		string(d.Type), d.Item, d.Amount.Cents, dateText(d.Date),
		timeText(time.Now().UTC()), d.ID)
	if err != nil {
		return core.Debt{}, fmt.Errorf("update debt %d: %w", d.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.Debt{}, core.ErrNotFound
	}
	return r.GetDebt(ctx, d.ID)
}

// DeleteDebt removes the debt, core.ErrNotFound when missing.
func (r *SQLiteRepository) DeleteDebt(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM debts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete debt %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete debt %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// DebtTotal sums every debt. The total is a point-in-time liability
// figure, never scoped to a dashboard period.
func (r *SQLiteRepository) DebtTotal(ctx context.Context) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount_cents), 0) FROM debts").Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("debt total: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

func scanDebt(row rowScanner) (core.Debt, error) {
	var (
		d                    core.Debt
		typ                  string
		cents                int64
		date                 string
		createdAt, updatedAt string
	)
	if err := row.Scan(&d.ID, &typ, &d.Item, &cents, &date, &createdAt, &updatedAt); err != nil {
		return core.Debt{}, err
	}
	d.Type = core.DebtType(typ)
	d.Amount = core.Money{Cents: cents}
	var err error
	if d.Date, err = core.ParseDate(date); err != nil {
		return core.Debt{}, fmt.Errorf("parse debt date: %w", err)
	}
	if d.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return core.Debt{}, err
	}
	if d.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return core.Debt{}, err
	}
	return d, nil
}
