package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order. The order is
// resolved by primary id first, falling back to a tracking-number lookup.
// The role-based policy itself is enforced by the aggregate.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	idOrTracking string
	actor        order.Actor
	reason       string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// idOrTracking is required; actor must be a recognized role. The reason is
// only required for administrators, which the aggregate checks before any
// state change.
func NewCancelOrderCommand(idOrTracking string, actor order.Actor, reason string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDOrTracking(idOrTracking),
		cmd.setActor(actor),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// IDOrTracking returns the order id or tracking number to resolve.
func (c CancelOrderCommand) IDOrTracking() string {
	return c.idOrTracking
}

// Actor returns who requests the cancellation.
func (c CancelOrderCommand) Actor() order.Actor {
	return c.actor
}

// Reason returns the cancellation reason, possibly empty for users.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setIDOrTracking(idOrTracking string) error {
	if idOrTracking == "" {
		return errs.NewValueIsRequiredError("idOrTrackingNumber")
	}
	c.idOrTracking = idOrTracking
	return nil
}

func (c *CancelOrderCommand) setActor(actor order.Actor) error {
	if actor != order.ActorUser && actor != order.ActorAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", actor))
	}
	c.actor = actor
	return nil
}
