package queries

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves all orders a client has ever placed,
// newest first, with their order lines.
type GetOrderHistoryQuery struct {
	clientID string

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for a client's order history.
// The client id is required.
func NewGetOrderHistoryQuery(clientID string) (GetOrderHistoryQuery, error) {
	if clientID == "" {
		return GetOrderHistoryQuery{}, errs.NewValueIsRequiredError("clientID")
	}

	return GetOrderHistoryQuery{
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// ClientID returns the client whose history is requested.
func (q GetOrderHistoryQuery) ClientID() string {
	return q.clientID
}
