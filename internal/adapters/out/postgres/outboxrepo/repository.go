package outboxrepo

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/outbox"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists a new pending record.
func (r *GormOutboxRepository) Add(ctx context.Context, record outbox.Record) error {
	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// FetchPending retrieves up to limit unsent records whose next attempt is
// due, oldest first. Dispatch order across records of one order is preserved
// because they were created in sequence.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Record, error) {
	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL AND next_attempt_at <= ?", time.Now().UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]outbox.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, recErr := toDomain(dto)
		if recErr != nil {
			return nil, recErr
		}
		records = append(records, record)
	}

	return records, nil
}

// MarkSent stamps a record as successfully dispatched.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id = ?", id.Bytes()).
		Update("sent_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxRecord", id.String())
	}

	return nil
}

// MarkFailed increments the attempt counter and schedules the next try.
func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, nextAttempt time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"attempts":        gorm.Expr("attempts + 1"),
			"next_attempt_at": nextAttempt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outboxRecord", id.String())
	}

	return nil
}
