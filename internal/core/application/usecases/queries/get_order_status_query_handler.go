package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler resolves a tracking number to the order's
// current status directly from the database.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for tracking lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the tracking lookup.
// Returns ObjectNotFoundError when no order carries the tracking number.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var resp GetOrderStatusQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_number,
			status,
			client_name,
			total_amount
		FROM orders
		WHERE tracking_number = ?
	`, query.TrackingNumber()).Row()

	err := row.Scan(
		&resp.TrackingNumber,
		&resp.Status,
		&resp.ClientName,
		&resp.TotalAmount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError(
			"trackingNumber", query.TrackingNumber(),
		)
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	return resp, nil
}
