// Package order provides the domain model for purchase orders: the Order
// aggregate root, its line items, the lifecycle status machine, the role-based
// cancellation policy, tracking-number generation, and lifecycle event payloads.
//
// Key business rules:
//   - An order is created with at least one item; the total amount is always
//     derived from the items, never set by a caller
//   - A tracking number (TRK- plus 10 uppercase alphanumerics) is assigned at
//     creation and cleared on cancellation
//   - Status updates outside the cancellation path are deliberately
//     permissive; only CancelOrder enforces a policy
//   - Users may cancel while pending or processing; administrators may cancel
//     any non-terminal order with a stated reason
//
// The package follows Domain-Driven Design conventions: private fields,
// factory constructors with validation, and value objects for status, actor,
// and line items.
package order
