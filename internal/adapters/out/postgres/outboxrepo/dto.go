// Package outboxrepo persists outbox work items. Records are inserted in the
// same transaction as the order write that produced them and drained by the
// relay job afterwards.
package outboxrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// OutboxDTO represents the database structure for persisting outbox records.
// next_attempt_at is indexed because the relay polls on it every second.
type OutboxDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind          string
	Tag           string
	Payload       []byte    `gorm:"type:jsonb"`
	CreatedAt     time.Time `gorm:"index"`
	Attempts      int
	NextAttemptAt time.Time `gorm:"index"`
	SentAt        *time.Time
}

// TableName specifies the database table name for outbox records.
func (OutboxDTO) TableName() string {
	return "outbox_records"
}

func fromDomain(record outbox.Record) OutboxDTO {
	return OutboxDTO{
		ID:            record.ID.Bytes(),
		Kind:          string(record.Kind),
		Tag:           record.Tag,
		Payload:       record.Payload,
		CreatedAt:     record.CreatedAt,
		Attempts:      record.Attempts,
		NextAttemptAt: record.NextAttemptAt,
		SentAt:        record.SentAt,
	}
}

func toDomain(dto OutboxDTO) (outbox.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return outbox.Record{}, err
	}

	return outbox.Record{
		ID:            id,
		Kind:          outbox.Kind(dto.Kind),
		Tag:           dto.Tag,
		Payload:       dto.Payload,
		CreatedAt:     dto.CreatedAt,
		Attempts:      dto.Attempts,
		NextAttemptAt: dto.NextAttemptAt,
		SentAt:        dto.SentAt,
	}, nil
}
