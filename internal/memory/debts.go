package memory

import (
	"context"
	"sort"
	"time"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

func (s *Store) ListDebts(_ context.Context) ([]core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	debts := make([]core.Debt, len(s.debts))
	copy(debts, s.debts)
	sort.SliceStable(debts, func(i, j int) bool {
		if !debts[i].Date.Equal(debts[j].Date.Time) {
			return debts[i].Date.After(debts[j].Date.Time)
		}
		return debts[i].ID > debts[j].ID
	})
	return debts, nil
}

func (s *Store) CreateDebt(_ context.Context, d core.Debt) (core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	d.ID = s.nextIDLocked()
	d.CreatedAt = now
	d.UpdatedAt = now
	s.debts = append(s.debts, d)
	return d, nil
}

func (s *Store) GetDebt(_ context.Context, id int64) (core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.debts {
		if d.ID == id {
			return d, nil
		}
	}
	return core.Debt{}, core.ErrNotFound
}

func (s *Store) UpdateDebt(_ context.Context, d core.Debt) (core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.debts {
		if existing.ID == d.ID {
			d.CreatedAt = existing.CreatedAt
			d.UpdatedAt = time.Now().UTC()
			s.debts[i] = d
			return d, nil
		}
	}
	return core.Debt{}, core.ErrNotFound
}

func (s *Store) DeleteDebt(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.debts {
		if d.ID == id {
			s.debts = append(s.debts[:i], s.debts[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DebtTotal(_ context.Context) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cents int64
	for _, d := range s.debts {
		cents += d.Amount.Cents
	}
	return core.Money{Cents: cents}, nil
}
