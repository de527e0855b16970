package queries

import (
	"context"
	"database/sql"
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemView represents a single order line in the read model.
type OrderItemView struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// OrderView represents a full order in the read model, shared by the history
// and listing queries.
type OrderView struct {
	ID              kernel.UUID
	ClientID        string
	ClientName      string
	ShippingAddress string
	Status          string
	TrackingNumber  string
	TotalAmount     decimal.Decimal
	CreatedAt       time.Time
	Items           []OrderItemView
}

// scanOrderViews reads order rows produced by selectOrderColumns into views,
// preserving row order.
func scanOrderViews(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)

	for rows.Next() {
		var view OrderView
		var id uuid.UUID
		var trackingNumber sql.NullString

		err := rows.Scan(
			&id,
			&view.ClientID,
			&view.ClientName,
			&view.ShippingAddress,
			&view.Status,
			&trackingNumber,
			&view.TotalAmount,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = orderID
		view.TrackingNumber = trackingNumber.String
		view.Items = make([]OrderItemView, 0)
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

// attachItems loads the order lines for every view in a single query and
// distributes them by order id.
func attachItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	byID := make(map[kernel.UUID]int, len(views))
	ids := make([]uuid.UUID, 0, len(views))
	for i, view := range views {
		byID[view.ID] = i
		ids = append(ids, view.ID.Bytes())
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			quantity,
			price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, product_id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemView
		var rawOrderID uuid.UUID

		if err = rows.Scan(&rawOrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return err
		}

		orderID, idErr := kernel.UUIDFromBytes(rawOrderID[:])
		if idErr != nil {
			return idErr
		}
		if i, ok := byID[orderID]; ok {
			views[i].Items = append(views[i].Items, item)
		}
	}

	return rows.Err()
}
