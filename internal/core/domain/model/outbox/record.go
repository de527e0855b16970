// Package outbox defines the durable work items that decouple a committed
// order write from its downstream side effects. A record is inserted in the
// same transaction as the order change and later drained by a relay worker,
// which gives the system at-least-once delivery for events and notifications.
package outbox

import (
	"encoding/json"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// Kind discriminates what a record carries.
type Kind string

const (
	// KindEvent marks a broker-bound lifecycle event.
	KindEvent Kind = "event"

	// KindNotification marks an email notification.
	KindNotification Kind = "notification"
)

// Notification is the payload of a KindNotification record: which template to
// use, who it concerns, and an optional supplementary string (tracking number
// or cancellation reason) interpolated into the body.
type Notification struct {
	Recipient string `json:"recipient"`
	Tag       string `json:"tag"`
	Extra     string `json:"extra,omitempty"`
}

// Record is a single outbox work item. Payload holds the serialized
// order.Event or Notification depending on Kind; Tag is the broker routing
// key for events and the template tag for notifications.
type Record struct {
	ID            kernel.UUID
	Kind          Kind
	Tag           string
	Payload       json.RawMessage
	CreatedAt     time.Time
	Attempts      int
	NextAttemptAt time.Time
	SentAt        *time.Time
}

// NewEventRecord creates a pending record carrying a lifecycle event keyed by
// its routing tag (order.created, order.updated, order.cancelled).
func NewEventRecord(tag string, event order.Event) (Record, error) {
	if tag == "" {
		return Record{}, errs.NewValueIsRequiredError("tag")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return Record{}, err
	}
	return newRecord(KindEvent, tag, payload), nil
}

// NewNotificationRecord creates a pending record carrying an email notification.
func NewNotificationRecord(notification Notification) (Record, error) {
	if notification.Tag == "" {
		return Record{}, errs.NewValueIsRequiredError("tag")
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		return Record{}, err
	}
	return newRecord(KindNotification, notification.Tag, payload), nil
}

func newRecord(kind Kind, tag string, payload json.RawMessage) Record {
	now := time.Now().UTC()
	return Record{
		ID:            kernel.NewUUID(),
		Kind:          kind,
		Tag:           tag,
		Payload:       payload,
		CreatedAt:     now,
		NextAttemptAt: now,
	}
}

// Pending reports whether the record still awaits a successful dispatch.
func (r Record) Pending() bool {
	return r.SentAt == nil
}

// DecodeNotification unmarshals the payload of a KindNotification record.
func (r Record) DecodeNotification() (Notification, error) {
	var n Notification
	if err := json.Unmarshal(r.Payload, &n); err != nil {
		return Notification{}, err
	}
	return n, nil
}
