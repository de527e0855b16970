package ports

import (
	"context"
	"encoding/json"
)

// EventPublisher delivers a serialized lifecycle event to the message broker
// under the given routing key. Implementations own the broker connection
// lifecycle and wrap the payload in the broker envelope.
//
// Publish must fail fast when the broker connection is down; it never blocks
// the caller waiting for a reconnect.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload json.RawMessage) error
}
