package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// BalanceService fronts the balance store. Balance items never feed the
// dashboard, but mutations still publish events for the audit feed.
type BalanceService struct {
	store  BalanceStore
	events EventPublisher
}

func NewBalanceService(store BalanceStore, events EventPublisher) *BalanceService {
	return &BalanceService{store: store, events: events}
}

func (s *BalanceService) List(ctx context.Context) ([]core.BalanceItem, error) {
	return s.store.ListBalanceItems(ctx)
}

func (s *BalanceService) Create(ctx context.Context, b core.BalanceItem) (core.BalanceItem, error) {
	if err := b.Validate(); err != nil {
		return core.BalanceItem{}, err
	}
	b.ComputeDifference()
	created, err := s.store.CreateBalanceItem(ctx, b)
	if err != nil {
		return core.BalanceItem{}, fmt.Errorf("create balance item: %w", err)
	}
	s.publish(ctx, "created", created.ID)
	return created, nil
}

func (s *BalanceService) Update(ctx context.Context, b core.BalanceItem) (core.BalanceItem, error) {
	if err := b.Validate(); err != nil {
		return core.BalanceItem{}, err
	}
	b.ComputeDifference()
	updated, err := s.store.UpdateBalanceItem(ctx, b)
	if err != nil {
		return core.BalanceItem{}, err
	}
	s.publish(ctx, "updated", updated.ID)
	return updated, nil
}

func (s *BalanceService) Get(ctx context.Context, id int64) (core.BalanceItem, error) {
	return s.store.GetBalanceItem(ctx, id)
}

func (s *BalanceService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteBalanceItem(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "deleted", id)
	return nil
}

func (s *BalanceService) publish(ctx context.Context, action string, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishMutation(ctx, "balance", action, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mutation event",
			"entity", "balance", "action", action, "id", id, "error", err)
	}
}
