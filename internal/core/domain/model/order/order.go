package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for a customer purchase. It owns its line items
// exclusively and manages the lifecycle from creation through shipment to
// delivery or cancellation.
//
// Invariants:
//   - At least one item at creation time
//   - totalAmount always equals the sum over items of price × quantity
//   - A non-empty tracking number matches TRK-[A-Z0-9]{10}
//   - Items are immutable after creation
//   - Can only be created through NewOrder or RestoreOrder
//
// A tracking number is assigned at creation, not at shipment. Callers that
// expect "shipped only" semantics must treat a tracking number on an
// unshipped order as informational.
type Order struct {
	id              kernel.UUID
	clientID        string
	clientName      string
	shippingAddress string
	items           []Item
	totalAmount     decimal.Decimal
	status          Status
	trackingNumber  string
	createdAt       time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status. The total amount is derived
// from the items and a tracking number is generated immediately. clientID and
// clientName are required; shippingAddress is optional.
func NewOrder(id kernel.UUID, clientID, clientName, shippingAddress string, items []Item) (*Order, error) {
	o := &Order{
		status:         Pending,
		trackingNumber: GenerateTrackingNumber(),
		createdAt:      time.Now().UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setClientName(clientName),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.shippingAddress = shippingAddress
	o.totalAmount = computeTotal(o.items)
	return o, nil
}

// RestoreOrder rehydrates an Order from persistence. The stored total is
// recomputed from the items so a read never observes an inconsistent amount.
func RestoreOrder(
	id kernel.UUID,
	clientID, clientName, shippingAddress string,
	items []Item,
	status Status,
	trackingNumber string,
	createdAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if trackingNumber != "" && !IsValidTrackingNumber(trackingNumber) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber",
			fmt.Errorf("%q does not match %sXXXXXXXXXX", trackingNumber, TrackingPrefix),
		)
	}

	o := &Order{
		status:         status,
		trackingNumber: trackingNumber,
		createdAt:      createdAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setClientName(clientName),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.shippingAddress = shippingAddress
	o.totalAmount = computeTotal(o.items)
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the opaque customer identifier.
func (o *Order) ClientID() string {
	return o.clientID
}

// ClientName returns the customer's display name.
func (o *Order) ClientName() string {
	return o.clientName
}

// ShippingAddress returns the free-text delivery address, possibly empty.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the derived order total.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// TrackingNumber returns the tracking token, or the empty string after cancellation.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// CreatedAt returns the immutable creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ChangeStatus sets the status to next without checking transition legality.
// The permissive overwrite is deliberate: callers of the status-update
// operation may depend on it, and only the cancellation path is policied.
//
// Tracking number handling:
//   - next == Shipped: first non-empty of callerTracking, the existing value,
//     and a freshly generated token wins, in that order. A caller-supplied or
//     existing value is never overwritten by a generated one.
//   - next == Cancelled: the tracking number is cleared.
//   - otherwise the existing value is kept.
func (o *Order) ChangeStatus(next Status, callerTracking string) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if callerTracking != "" && !IsValidTrackingNumber(callerTracking) {
		return errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber",
			fmt.Errorf("%q does not match %sXXXXXXXXXX", callerTracking, TrackingPrefix),
		)
	}

	o.status = next

	switch next {
	case Shipped:
		switch {
		case callerTracking != "":
			o.trackingNumber = callerTracking
		case o.trackingNumber != "":
			// keep the existing token
		default:
			o.trackingNumber = GenerateTrackingNumber()
		}
	case Cancelled:
		o.trackingNumber = ""
	default:
	}

	return nil
}

// Cancel applies the role-based cancellation policy and, when permitted,
// moves the order to Cancelled and clears the tracking number.
//
// Policy:
//   - ActorUser: allowed only while the status is Pending or Processing.
//   - ActorAdmin: allowed from any non-terminal status, but a non-empty
//     reason is required.
//   - Any other actor is rejected as invalid input.
func (o *Order) Cancel(actor Actor, reason string) error {
	switch actor {
	case ActorUser:
		if !o.status.CancellableByUser() {
			return errs.NewNotPermittedErrorWithCause(
				"cancel order",
				fmt.Errorf("user cannot cancel an order in status %q", o.status),
			)
		}
	case ActorAdmin:
		if o.status.IsTerminal() {
			return errs.NewNotPermittedErrorWithCause(
				"cancel order",
				fmt.Errorf("order in status %q is terminal", o.status),
			)
		}
		if reason == "" {
			return errs.NewValueIsRequiredError("reason")
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%q is not a valid role", actor),
		)
	}

	o.status = Cancelled
	o.trackingNumber = ""
	return nil
}

func computeTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID string) error {
	if clientID == "" {
		return errs.NewValueIsRequiredError("clientId")
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setClientName(clientName string) error {
	if clientName == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	o.clientName = clientName
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
