// Package ports defines the contracts between the application core and the
// infrastructure adapters: persistence, the event broker, and the email sink.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderFilter narrows a Find query. Zero-value fields are ignored.
// From and To bound createdAt inclusively.
type OrderFilter struct {
	ID       *kernel.UUID
	ClientID string
	From     *time.Time
	To       *time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
// An order and its line items are written together: Add persists the order
// and all items in one atomic operation, so a failed write never leaves a
// partial order visible to other operations.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Items are immutable and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// items included.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingNumber retrieves the order carrying the given tracking
	// token. Tracking numbers are unique across all orders.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error)

	// GetByClient retrieves all orders of a client, most recent first.
	// Returns an empty slice, not an error, when the client has none.
	GetByClient(ctx context.Context, clientID string) ([]*order.Order, error)

	// Find retrieves orders matching the filter, most recent first.
	Find(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
