package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

const balanceColumns = "id, type, concept, amount_cents, expected_cents, difference_cents, comments, created_at, updated_at"

// ListBalanceItems returns every balance item, newest first.
func (r *SQLiteRepository) ListBalanceItems(ctx context.Context) ([]core.BalanceItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+balanceColumns+" FROM balance_items ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list balance items: %w", err)
	}
	defer rows.Close()

	items := []core.BalanceItem{}
	for rows.Next() {
		b, err := scanBalanceItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan balance item: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balance items: %w", err)
	}
	return items, nil
}

// CreateBalanceItem inserts the item and returns it with the assigned id.
func (r *SQLiteRepository) CreateBalanceItem(ctx context.Context, b core.BalanceItem) (core.BalanceItem, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO balance_items (type, concept, amount_cents, expected_cents,
			difference_cents, comments, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(b.Type), b.Concept, b.Amount.Cents, b.Expected.Cents,
		nullableCents(b.Difference), b.Comments, timeText(now), timeText(now))
	if err != nil {
		return core.BalanceItem{}, fmt.Errorf("insert balance item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.BalanceItem{}, fmt.Errorf("balance insert id: %w", err)
	}
	return r.GetBalanceItem(ctx, id)
}

// GetBalanceItem returns the item or core.ErrNotFound.
func (r *SQLiteRepository) GetBalanceItem(ctx context.Context, id int64) (core.BalanceItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+balanceColumns+" FROM balance_items WHERE id = ?", id)
	b, err := scanBalanceItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BalanceItem{}, core.ErrNotFound
	}
	if err != nil {
		return core.BalanceItem{}, fmt.Errorf("get balance item %d: %w", id, err)
	}
	return b, nil
}

// UpdateBalanceItem replaces every mutable field of the item.
func (r *SQLiteRepository) UpdateBalanceItem(ctx context.Context, b core.BalanceItem) (core.BalanceItem, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE balance_items SET type = ?, concept = ?, amount_cents = ?,
			expected_cents = ?, difference_cents = ?, comments = ?, updated_at = ?
		WHERE id = ?`,
		string(b.Type), b.Concept, b.Amount.Cents, b.Expected.Cents,
		nullableCents(b.Difference), b.Comments, timeText(time.Now().UTC()), b.ID)
	if err != nil {
		return core.BalanceItem{}, fmt.Errorf("update balance item %d: %w", b.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.BalanceItem{}, core.ErrNotFound
	}
	return r.GetBalanceItem(ctx, b.ID)
}

// DeleteBalanceItem removes the item, core.ErrNotFound when missing.
func (r *SQLiteRepository) DeleteBalanceItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM balance_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete balance item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete balance item %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func nullableCents(m *core.Money) any {
	if m == nil {
		return nil
	}
	return m.Cents
}

func scanBalanceItem(row rowScanner) (core.BalanceItem, error) {
	var (
		b                    core.BalanceItem
		typ                  string
		cents, expected      int64
		difference           sql.NullInt64
		comments             sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&b.ID, &typ, &b.Concept, &cents, &expected, &difference,
		&comments, &createdAt, &updatedAt)
	if err != nil {
		return core.BalanceItem{}, err
	}
	b.Type = core.BalanceItemType(typ)
	b.Amount = core.Money{Cents: cents}
	b.Expected = core.Money{Cents: expected}
	if difference.Valid {
		b.Difference = &core.Money{Cents: difference.Int64}
	}
	if comments.Valid {
		b.Comments = &comments.String
	}
	if b.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return core.BalanceItem{}, err
	}
	if b.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return core.BalanceItem{}, err
	}
	return b, nil
}
