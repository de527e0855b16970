package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemInput carries the raw line-item data of a create request. The price is
// the caller's snapshot at order time.
type ItemInput struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// CreateOrderCommand represents a request to place a new purchase order.
// Line items are validated and converted to domain items at construction, so
// an invalid request never reaches the handler.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	clientID        string
	clientName      string
	shippingAddress string
	items           []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// clientID and clientName are required, items must not be empty, and each
// item must pass domain validation. shippingAddress may be empty.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID, clientName, shippingAddress string,
	items []ItemInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		shippingAddress: shippingAddress,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setClientName(clientName),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientID returns the opaque customer identifier.
func (c CreateOrderCommand) ClientID() string {
	return c.clientID
}

// ClientName returns the customer's display name.
func (c CreateOrderCommand) ClientName() string {
	return c.clientName
}

// ShippingAddress returns the free-text delivery address, possibly empty.
func (c CreateOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

// Items returns the validated domain line items.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID string) error {
	if clientID == "" {
		return errs.NewValueIsRequiredError("clientId")
	}
	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setClientName(clientName string) error {
	if clientName == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	c.clientName = clientName
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	domainItems := make([]order.Item, 0, len(items))
	for _, input := range items {
		item, err := order.NewItem(input.ProductID, input.Quantity, input.Price)
		if err != nil {
			return err
		}
		domainItems = append(domainItems, item)
	}

	c.items = domainItems
	return nil
}
