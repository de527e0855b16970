// Package queries contains read operations for retrieving order state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregate and read optimized models straight from the
// database.
package queries

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery retrieves the current status of an order by its
// tracking number. This is the public tracking lookup, so it exposes only
// what a customer needs.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery("TRK-2F8A1B9C0D")
//	if err != nil {
//	    return err
//	}
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order status: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", status.TrackingNumber, status.Status)
type GetOrderStatusQuery struct {
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query to look an order up by tracking
// number. The tracking number is required.
func NewGetOrderStatusQuery(trackingNumber string) (GetOrderStatusQuery, error) {
	if trackingNumber == "" {
		return GetOrderStatusQuery{}, errs.NewValueIsRequiredError("trackingNumber")
	}

	return GetOrderStatusQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// TrackingNumber returns the tracking number to look up.
func (q GetOrderStatusQuery) TrackingNumber() string {
	return q.trackingNumber
}

// GetOrderStatusQueryResponse is the public tracking read model.
type GetOrderStatusQueryResponse struct {
	TrackingNumber string
	Status         string
	ClientName     string
	TotalAmount    decimal.Decimal
}
