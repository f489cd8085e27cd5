// Package storage implements the durable stores on SQLite: records,
// debts and balance items, plus the aggregate queries the dashboard
// consumes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const recordColumns = `id, concept, amount_cents, expense_type, payment_method,
	month_name, year, charge_date, pay_date, category, installments,
	installment_index, installment_total, split, tag, monthly_expense_label,
	created_at, updated_at`

// CreateRecord inserts the record and returns it with the assigned id
// and timestamps.
func (r *SQLiteRepository) CreateRecord(ctx context.Context, rec core.Record) (core.Record, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO records (concept, amount_cents, expense_type, payment_method,
			month_name, year, charge_date, pay_date, category, installments,
			installment_index, installment_total, split, tag, monthly_expense_label,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Concept, rec.Amount.Cents, string(rec.ExpenseType), rec.PaymentMethod,
		rec.MonthName, rec.Year, dateText(rec.ChargeDate), dateText(rec.PayDate),
		string(rec.Category), boolToInt(rec.Installments), rec.InstallmentIndex,
		rec.InstallmentTotal, boolToInt(rec.Split), rec.Tag, rec.MonthlyExpenseLabel,
		timeText(now), timeText(now))
	if err != nil {
		return core.Record{}, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Record{}, fmt.Errorf("record insert id: %w", err)
	}

	return r.GetRecord(ctx, id)
}

// GetRecord returns the record or core.ErrNotFound.
func (r *SQLiteRepository) GetRecord(ctx context.Context, id int64) (core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, core.ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record %d: %w", id, err)
	}
	return rec, nil
}

// UpdateRecord replaces every mutable field of the record. The caller
// resolves partial updates against the stored row first.
func (r *SQLiteRepository) UpdateRecord(ctx context.Context, rec core.Record) (core.Record, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE records SET concept = ?, amount_cents = ?, expense_type = ?,
			payment_method = ?, month_name = ?, year = ?, charge_date = ?,
			pay_date = ?, category = ?, installments = ?, installment_index = ?,
			installment_total = ?, split = ?, tag = ?, monthly_expense_label = ?,
			updated_at = ?
		WHERE id = ?`,
		rec.Concept, rec.Amount.Cents, string(rec.ExpenseType), rec.PaymentMethod,
		rec.MonthName, rec.Year, dateText(rec.ChargeDate), dateText(rec.PayDate),
		string(rec.Category), boolToInt(rec.Installments), rec.InstallmentIndex,
		rec.InstallmentTotal, boolToInt(rec.Split), rec.Tag, rec.MonthlyExpenseLabel,
		timeText(time.Now().UTC()), rec.ID)
	if err != nil {
		return core.Record{}, fmt.Errorf("update record %d: %w", rec.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.Record{}, core.ErrNotFound
	}
	return r.GetRecord(ctx, rec.ID)
}

// DeleteRecord removes the record permanently. Deleting a missing id
// returns core.ErrNotFound, never silent success.
func (r *SQLiteRepository) DeleteRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ListRecords returns one page of matching records ordered by charge
// date descending (id descending as tiebreak, so pages never overlap),
// plus the total match count ignoring pagination.
func (r *SQLiteRepository) ListRecords(ctx context.Context, f core.Filter, p core.Page) ([]core.Record, int, error) {
	where, args := buildRecordWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	query := "SELECT " + recordColumns + " FROM records" + where +
		" ORDER BY charge_date DESC, id DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []core.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate records: %w", err)
	}
	return records, total, nil
}

// ListInstallmentRecords returns the installment-plan view: MSI and
// Variable records ordered by charge date descending.
func (r *SQLiteRepository) ListInstallmentRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordColumns+` FROM records
		WHERE expense_type IN (?, ?) ORDER BY charge_date DESC, id DESC`,
		string(core.TypeInstallmentsMSI), string(core.TypeVariable))
	if err != nil {
		return nil, fmt.Errorf("list installment records: %w", err)
	}
	defer rows.Close()

	records := []core.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// SumByCategory sums amounts over matching records of the given
// category. Zero (not an error) when nothing matches.
func (r *SQLiteRepository) SumByCategory(ctx context.Context, f core.Filter, c core.Category) (core.Money, error) {
	where, args := buildRecordWhere(f.WithCategory(c))
	var cents int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount_cents), 0) FROM records"+where, args...).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum by category %s: %w", c, err)
	}
	return core.Money{Cents: cents}, nil
}

// SumByType partitions matching expense records (category E) by expense
// type. Partitions with no presence are omitted, not zero-valued.
func (r *SQLiteRepository) SumByType(ctx context.Context, f core.Filter) (map[core.ExpenseType]core.Money, error) {
	where, args := buildRecordWhere(f.WithCategory(core.CategoryExpense))
	rows, err := r.db.QueryContext(ctx,
		"SELECT expense_type, SUM(amount_cents) FROM records"+where+
			" GROUP BY expense_type", args...)
	if err != nil {
		return nil, fmt.Errorf("sum by type: %w", err)
	}
	defer rows.Close()

	out := map[core.ExpenseType]core.Money{}
	for rows.Next() {
		var t string
		var cents int64
		if err := rows.Scan(&t, &cents); err != nil {
			return nil, fmt.Errorf("scan type sum: %w", err)
		}
		out[core.ExpenseType(t)] = core.Money{Cents: cents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate type sums: %w", err)
	}
	return out, nil
}

// SumByCategoryGroup partitions all matching records by category.
func (r *SQLiteRepository) SumByCategoryGroup(ctx context.Context, f core.Filter) (map[core.Category]core.Money, error) {
	where, args := buildRecordWhere(f)
	rows, err := r.db.QueryContext(ctx,
		"SELECT category, SUM(amount_cents) FROM records"+where+
			" GROUP BY category", args...)
	if err != nil {
		return nil, fmt.Errorf("sum by category group: %w", err)
	}
	defer rows.Close()

	out := map[core.Category]core.Money{}
	for rows.Next() {
		var c string
		var cents int64
		if err := rows.Scan(&c, &cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		out[core.Category(c)] = core.Money{Cents: cents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return out, nil
}

// SumByMonth partitions matching expense records by (month, year). The
// result is sorted ascending by (year, calendar month) in Go; SQL text
// ordering of Spanish month names would be wrong.
func (r *SQLiteRepository) SumByMonth(ctx context.Context, f core.Filter) ([]core.MonthTotal, error) {
	where, args := buildRecordWhere(f.WithCategory(core.CategoryExpense))
	rows, err := r.db.QueryContext(ctx,
		"SELECT month_name, year, SUM(amount_cents) FROM records"+where+
			" GROUP BY month_name, year", args...)
	if err != nil {
		return nil, fmt.Errorf("sum by month: %w", err)
	}
	defer rows.Close()

	out := []core.MonthTotal{}
	for rows.Next() {
		var mt core.MonthTotal
		var cents int64
		if err := rows.Scan(&mt.Month, &mt.Year, &cents); err != nil {
			return nil, fmt.Errorf("scan month sum: %w", err)
		}
		mt.Total = core.Money{Cents: cents}
		out = append(out, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate month sums: %w", err)
	}
	core.SortMonthTotals(out)
	return out, nil
}

func dateText(d core.Date) string {
	return d.Format("2006-01-02")
}

func timeText(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		rec                  core.Record
		cents                int64
		expenseType          string
		category             string
		chargeDate, payDate  string
		installments, split  int
		createdAt, updatedAt string
	)
	err := row.Scan(&rec.ID, &rec.Concept, &cents, &expenseType, &rec.PaymentMethod,
		&rec.MonthName, &rec.Year, &chargeDate, &payDate, &category, &installments,
		&rec.InstallmentIndex, &rec.InstallmentTotal, &split, &rec.Tag,
		&rec.MonthlyExpenseLabel, &createdAt, &updatedAt)
	if err != nil {
		return core.Record{}, err
	}
	rec.Amount = core.Money{Cents: cents}
	rec.ExpenseType = core.ExpenseType(expenseType)
	rec.Category = core.Category(category)
	rec.Installments = installments != 0
	rec.Split = split != 0
	if rec.ChargeDate, err = core.ParseDate(chargeDate); err != nil {
		return core.Record{}, fmt.Errorf("parse charge_date: %w", err)
	}
	if rec.PayDate, err = core.ParseDate(payDate); err != nil {
		return core.Record{}, fmt.Errorf("parse pay_date: %w", err)
	}
	if rec.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return core.Record{}, err
	}
	if rec.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return core.Record{}, err
	}
	return rec, nil
}

func parseTimeText(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// Rows written by SQLite defaults use the space-separated layout.
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
