package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves orders matching the listing filters.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Filters combine with AND; no matches
// yields an empty slice.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if query.ID() != nil {
		conditions = append(conditions, "id = ?")
		args = append(args, query.ID().Bytes())
	}
	if query.ClientID() != "" {
		conditions = append(conditions, "client_id = ?")
		args = append(args, query.ClientID())
	}
	if query.From() != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *query.From())
	}
	if query.To() != nil {
		conditions = append(conditions, "created_at < ?")
		args = append(args, *query.To())
	}

	sql := `
		SELECT
			id,
			client_id,
			client_name,
			shipping_address,
			status,
			tracking_number,
			total_amount,
			created_at
		FROM orders
	`
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views, err := scanOrderViews(rows)
	if err != nil {
		return nil, err
	}

	if err = attachItems(ctx, h.db, views); err != nil {
		return nil, err
	}

	return views, nil
}
