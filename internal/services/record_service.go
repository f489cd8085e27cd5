package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
)

// RecordService fronts the record store and publishes a mutation event
// after every committed write.
type RecordService struct {
	store  RecordStore
	events EventPublisher
}

func NewRecordService(store RecordStore, events EventPublisher) *RecordService {
	return &RecordService{store: store, events: events}
}

// Create validates, applies defaults, stores the record and publishes a
// created event.
func (s *RecordService) Create(ctx context.Context, rec core.Record) (core.Record, error) {
	rec.ApplyDefaults()
	if err := rec.Validate(); err != nil {
		return core.Record{}, err
	}

	created, err := s.store.CreateRecord(ctx, rec)
	if err != nil {
		return core.Record{}, fmt.Errorf("create record: %w", err)
	}

	s.publish(ctx, "record", "created", created.ID)
	return created, nil
}

// Get returns a record by id.
func (s *RecordService) Get(ctx context.Context, id int64) (core.Record, error) {
	return s.store.GetRecord(ctx, id)
}

// Update validates the merged record and replaces the stored row. The
// handler resolves the patch against the stored record before calling.
func (s *RecordService) Update(ctx context.Context, rec core.Record) (core.Record, error) {
	rec.ApplyDefaults()
	if err := rec.Validate(); err != nil {
		return core.Record{}, err
	}

	updated, err := s.store.UpdateRecord(ctx, rec)
	if err != nil {
		return core.Record{}, err
	}

	s.publish(ctx, "record", "updated", updated.ID)
	return updated, nil
}

// Delete removes the record permanently.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "record", "deleted", id)
	return nil
}

// List validates the filter and pagination window, then returns one
// page plus the total match count.
func (s *RecordService) List(ctx context.Context, f core.Filter, p core.Page) ([]core.Record, int, error) {
	if err := f.Validate(); err != nil {
		return nil, 0, err
	}
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	return s.store.ListRecords(ctx, f, p)
}

// ListInstallments returns the installment-plan view.
func (s *RecordService) ListInstallments(ctx context.Context) ([]core.Record, error) {
	return s.store.ListInstallmentRecords(ctx)
}

func (s *RecordService) publish(ctx context.Context, entity, action string, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishMutation(ctx, entity, action, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mutation event",
			"entity", entity, "action", action, "id", id, "error", err)
	}
}
