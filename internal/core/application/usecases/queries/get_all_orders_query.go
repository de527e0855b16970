package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// dateLayout is the wire format for the listing date filters.
const dateLayout = "2006-01-02"

// GetAllOrdersQuery retrieves orders with optional filters. All filters
// combine with AND; an empty filter string means "no constraint".
//
// Example:
//
//	query, err := NewGetAllOrdersQuery("", "client-1", "2026-01-01", "2026-01-31")
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetAllOrdersQuery struct {
	id       *kernel.UUID
	clientID string
	from     *time.Time
	to       *time.Time

	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a listing query. id must parse as a UUID when
// present; fromDate and toDate use the YYYY-MM-DD layout and bound the
// creation date inclusively. Malformed values are rejected here so handlers
// never see them.
func NewGetAllOrdersQuery(id, clientID, fromDate, toDate string) (GetAllOrdersQuery, error) {
	query := GetAllOrdersQuery{
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}

	if id != "" {
		orderID, err := kernel.UUIDFromString(id)
		if err != nil {
			return GetAllOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("id", err)
		}
		query.id = &orderID
	}

	if fromDate != "" {
		from, err := time.Parse(dateLayout, fromDate)
		if err != nil {
			return GetAllOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("fromDate", err)
		}
		query.from = &from
	}

	if toDate != "" {
		to, err := time.Parse(dateLayout, toDate)
		if err != nil {
			return GetAllOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("toDate", err)
		}
		// inclusive upper bound: anything created before the next day counts
		end := to.AddDate(0, 0, 1)
		query.to = &end
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// ID returns the order id filter, nil when unset.
func (q GetAllOrdersQuery) ID() *kernel.UUID {
	return q.id
}

// ClientID returns the client filter, empty when unset.
func (q GetAllOrdersQuery) ClientID() string {
	return q.clientID
}

// From returns the inclusive lower creation-date bound, nil when unset.
func (q GetAllOrdersQuery) From() *time.Time {
	return q.from
}

// To returns the exclusive upper creation-date bound, nil when unset.
func (q GetAllOrdersQuery) To() *time.Time {
	return q.to
}
