package memory

import (
	"context"
	"sort"
	"time"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

func (s *Store) ListBalanceItems(_ context.Context) ([]core.BalanceItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]core.BalanceItem, len(s.balance))
	copy(items, s.balance)
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (s *Store) CreateBalanceItem(_ context.Context, b core.BalanceItem) (core.BalanceItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	b.ID = s.nextIDLocked()
	b.CreatedAt = now
	b.UpdatedAt = now
	s.balance = append(s.balance, b)
	return b, nil
}

func (s *Store) GetBalanceItem(_ context.Context, id int64) (core.BalanceItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.balance {
		if b.ID == id {
			return b, nil
		}
	}
	return core.BalanceItem{}, core.ErrNotFound
}

func (s *Store) UpdateBalanceItem(_ context.Context, b core.BalanceItem) (core.BalanceItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.balance {
		if existing.ID == b.ID {
			b.CreatedAt = existing.CreatedAt
			b.UpdatedAt = time.Now().UTC()
			s.balance[i] = b
			return b, nil
		}
	}
	return core.BalanceItem{}, core.ErrNotFound
}

func (s *Store) DeleteBalanceItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.balance {
		if b.ID == id {
			s.balance = append(s.balance[:i], s.balance[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}
