package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox work items.
// Records are added inside the same transaction as the order write they
// belong to; the relay worker drains them afterwards.
type OutboxRepository interface {
	// Add persists a new pending record.
	Add(ctx context.Context, record outbox.Record) error

	// FetchPending retrieves up to limit unsent records whose next attempt
	// is due, oldest first.
	FetchPending(ctx context.Context, limit int) ([]outbox.Record, error)

	// MarkSent stamps a record as successfully dispatched.
	// A record is only marked after the dispatch succeeded (at-least-once).
	MarkSent(ctx context.Context, id kernel.UUID) error

	// MarkFailed increments the attempt counter and schedules the next try.
	MarkFailed(ctx context.Context, id kernel.UUID, nextAttempt time.Time) error
}
