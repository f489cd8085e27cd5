// Package memory implements the storage ports in process. It backs the
// default dev backend and the handler tests; the predicate and
// aggregation semantics are shared with the SQLite repository through
// core.Filter.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

type Store struct {
	mu       sync.Mutex
	records  []core.Record
	debts    []core.Debt
	balance  []core.BalanceItem
	nextID   int64
}

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) nextIDLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// CreateRecord stores a copy of rec with a fresh id and timestamps.
func (s *Store) CreateRecord(_ context.Context, rec core.Record) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rec.ID = s.nextIDLocked()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *Store) GetRecord(_ context.Context, id int64) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.Record{}, core.ErrNotFound
}

func (s *Store) UpdateRecord(_ context.Context, rec core.Record) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == rec.ID {
			rec.CreatedAt = r.CreatedAt
			rec.UpdatedAt = time.Now().UTC()
			s.records[i] = rec
			return rec, nil
		}
	}
	return core.Record{}, core.ErrNotFound
}

func (s *Store) DeleteRecord(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

// ListRecords applies the filter predicate, orders by charge date
// descending (id descending as tiebreak) and windows the result.
func (s *Store) ListRecords(_ context.Context, f core.Filter, p core.Page) ([]core.Record, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.matchedLocked(f)
	sortRecords(matched)

	total := len(matched)
	start := p.Offset()
	if start >= total {
		return []core.Record{}, total, nil
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	page := make([]core.Record, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func (s *Store) ListInstallmentRecords(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := core.Filter{ExpenseTypes: []core.ExpenseType{core.TypeInstallmentsMSI, core.TypeVariable}}
	matched := s.matchedLocked(f)
	sortRecords(matched)
	return matched, nil
}

func (s *Store) SumByCategory(_ context.Context, f core.Filter, c core.Category) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cents int64
	for _, r := range s.matchedLocked(f.WithCategory(c)) {
		cents += r.Amount.Cents
	}
	return core.Money{Cents: cents}, nil
}

func (s *Store) SumByType(_ context.Context, f core.Filter) (map[core.ExpenseType]core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[core.ExpenseType]core.Money{}
	for _, r := range s.matchedLocked(f.WithCategory(core.CategoryExpense)) {
		m := out[r.ExpenseType]
		m.Cents += r.Amount.Cents
		out[r.ExpenseType] = m
	}
	return out, nil
}

func (s *Store) SumByCategoryGroup(_ context.Context, f core.Filter) (map[core.Category]core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[core.Category]core.Money{}
	for _, r := range s.matchedLocked(f) {
		m := out[r.Category]
		m.Cents += r.Amount.Cents
		out[r.Category] = m
	}
	return out, nil
}

func (s *Store) SumByMonth(_ context.Context, f core.Filter) ([]core.MonthTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type key struct {
		month string
		year  int
	}
	sums := map[key]int64{}
	for _, r := range s.matchedLocked(f.WithCategory(core.CategoryExpense)) {
		sums[key{r.MonthName, r.Year}] += r.Amount.Cents
	}

	out := make([]core.MonthTotal, 0, len(sums))
	for k, cents := range sums {
		out = append(out, core.MonthTotal{Month: k.month, Year: k.year, Total: core.Money{Cents: cents}})
	}
	core.SortMonthTotals(out)
	return out, nil
}

func (s *Store) matchedLocked(f core.Filter) []core.Record {
	matched := []core.Record{}
	for _, r := range s.records {
		if f.Matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

func sortRecords(records []core.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].ChargeDate.Equal(records[j].ChargeDate.Time) {
			return records[i].ChargeDate.After(records[j].ChargeDate.Time)
		}
		return records[i].ID > records[j].ID
	})
}
