package ports

import (
	"context"

	"orderflow/internal/core/domain/model/outbox"
)

// Notifier sends a lifecycle notification through the email provider.
// Implementations select subject and body from the notification tag.
// Failures are reported to the caller, who logs them; a failed notification
// never fails a lifecycle operation.
type Notifier interface {
	Send(ctx context.Context, notification outbox.Notification) error
}
