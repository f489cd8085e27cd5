package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// DebtService fronts the debt store. Debt mutations also publish
// events: the dashboard debt total depends on them.
type DebtService struct {
	store  DebtStore
	events EventPublisher
}

func NewDebtService(store DebtStore, events EventPublisher) *DebtService {
	return &DebtService{store: store, events: events}
}

func (s *DebtService) List(ctx context.Context) ([]core.Debt, error) {
	return s.store.ListDebts(ctx)
}

func (s *DebtService) Create(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	created, err := s.store.CreateDebt(ctx, d)
	if err != nil {
		return core.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	s.publish(ctx, "created", created.ID)
	return created, nil
}

func (s *DebtService) Update(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	updated, err := s.store.UpdateDebt(ctx, d)
	if err != nil {
		return core.Debt{}, err
	}
	s.publish(ctx, "updated", updated.ID)
	return updated, nil
}

func (s *DebtService) Get(ctx context.Context, id int64) (core.Debt, error) {
	return s.store.GetDebt(ctx, id)
}

func (s *DebtService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteDebt(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "deleted", id)
	return nil
}

func (s *DebtService) publish(ctx context.Context, action string, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishMutation(ctx, "debt", action, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mutation event",
			"entity", "debt", "action", action, "id", id, "error", err)
	}
}
