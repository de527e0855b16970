package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Actor identifies who is requesting a cancellation. The cancellation policy
// depends on it: users may only cancel unshipped orders, administrators may
// cancel any non-terminal order but must supply a reason.
type Actor int

const (
	// ActorUnknown represents an unrecognized role. Always rejected.
	ActorUnknown Actor = iota

	// ActorUser is the customer who placed the order.
	ActorUser

	// ActorAdmin is a platform operator.
	ActorAdmin
)

// ParseActor converts a wire role string into an Actor.
// Only "user" and "admin" are recognized.
func ParseActor(s string) (Actor, error) {
	switch s {
	case "user":
		return ActorUser, nil
	case "admin":
		return ActorAdmin, nil
	default:
		return ActorUnknown, errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%q is not a valid role", s),
		)
	}
}

// String returns the wire name of the actor.
func (a Actor) String() string {
	switch a {
	case ActorUser:
		return "user"
	case ActorAdmin:
		return "admin"
	default:
		return "unknown"
	}
}
