package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory functions.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a line item of an order. The price is a snapshot taken at order
// time; later product price changes never affect an existing order's total.
// Items are immutable once the order is created.
type Item struct {
	id        kernel.UUID
	productID string
	quantity  int
	price     decimal.Decimal

	isConstructed bool
}

// NewItem creates a line item with a fresh identifier.
// Quantity must be positive and price must not be negative.
func NewItem(productID string, quantity int, price decimal.Decimal) (Item, error) {
	return newItem(kernel.NewUUID(), productID, quantity, price)
}

// RestoreItem rehydrates a line item from persistence under its stored identifier.
func RestoreItem(id kernel.UUID, productID string, quantity int, price decimal.Decimal) (Item, error) {
	return newItem(id, productID, quantity, price)
}

func newItem(id kernel.UUID, productID string, quantity int, price decimal.Decimal) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setPrice(price),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identifier of the purchased product.
func (i Item) ProductID() string {
	return i.productID
}

// Quantity returns the number of units purchased.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the per-unit price snapshot taken at order time.
func (i Item) Price() decimal.Decimal {
	return i.price
}

// Subtotal returns price × quantity for this line.
func (i Item) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}
