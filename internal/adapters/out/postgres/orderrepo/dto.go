// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The tracking number carries a unique index so two live orders can never
// share a token; cancelled orders store NULL, which the index ignores.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID        string    `gorm:"index"`
	ClientName      string
	ShippingAddress string
	Status          string          `gorm:"index"`
	TrackingNumber  *string         `gorm:"uniqueIndex"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt       time.Time       `gorm:"index"`
	Items           []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents a single order line. Lines are immutable once the order
// is placed and are written together with their order.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID string
	Quantity  int
	Price     decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// An empty tracking number maps to NULL so the unique index only constrains
// live tokens.
func fromDomain(aggregate *order.Order) OrderDTO {
	var trackingNumber *string
	if tn := aggregate.TrackingNumber(); tn != "" {
		trackingNumber = &tn
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		ClientID:        aggregate.ClientID(),
		ClientName:      aggregate.ClientName(),
		ShippingAddress: aggregate.ShippingAddress(),
		Status:          aggregate.Status().String(),
		TrackingNumber:  trackingNumber,
		TotalAmount:     aggregate.TotalAmount(),
		CreatedAt:       aggregate.CreatedAt(),
		Items:           items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.RestoreItem(itemID, itemDTO.ProductID, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var trackingNumber string
	if dto.TrackingNumber != nil {
		trackingNumber = *dto.TrackingNumber
	}

	return order.RestoreOrder(
		id,
		dto.ClientID,
		dto.ClientName,
		dto.ShippingAddress,
		items,
		status,
		trackingNumber,
		dto.CreatedAt,
	)
}
