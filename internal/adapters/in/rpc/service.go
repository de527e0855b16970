package rpc

import (
	"context"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderService is the RPC receiver exposing the six lifecycle operations.
// Method signatures follow the net/rpc convention: request value in, reply
// pointer out.
type OrderService struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	orderStatusHandler  queries.GetOrderStatusQueryHandler
	orderHistoryHandler queries.GetOrderHistoryQueryHandler
	allOrdersHandler    queries.GetAllOrdersQueryHandler
}

// NewOrderService creates the RPC receiver with the required handlers.
func NewOrderService(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	orderStatusHandler queries.GetOrderStatusQueryHandler,
	orderHistoryHandler queries.GetOrderHistoryQueryHandler,
	allOrdersHandler queries.GetAllOrdersQueryHandler,
) *OrderService {
	return &OrderService{
		createOrderHandler:  createOrderHandler,
		updateStatusHandler: updateStatusHandler,
		cancelOrderHandler:  cancelOrderHandler,
		orderStatusHandler:  orderStatusHandler,
		orderHistoryHandler: orderHistoryHandler,
		allOrdersHandler:    allOrdersHandler,
	}
}

// Item is one order line on the wire.
type Item struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Order is the full order representation on the wire.
type Order struct {
	ID              string
	UserID          string
	ClientName      string
	ShippingAddress string
	Items           []Item
	TotalAmount     decimal.Decimal
	Status          string
	TrackingNumber  string
	CreatedAt       time.Time
}

// CreateOrderRequest carries the fields needed to place an order.
type CreateOrderRequest struct {
	UserID          string
	ClientName      string
	ShippingAddress string
	Items           []Item
}

// CreateOrder places a new order.
func (s *OrderService) CreateOrder(req CreateOrderRequest, reply *Order) error {
	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), req.UserID, req.ClientName, req.ShippingAddress, items,
	)
	if err != nil {
		return encodeError(err)
	}

	created, err := s.createOrderHandler.Handle(context.Background(), cmd)
	if err != nil {
		return encodeError(err)
	}

	*reply = orderToWire(created)
	return nil
}

// GetAllOrdersRequest carries the optional listing filters. Dates use the
// YYYY-MM-DD layout.
type GetAllOrdersRequest struct {
	ID        string
	UserID    string
	StartDate string
	EndDate   string
}

// OrderList is the reply for listing operations.
type OrderList struct {
	Orders []Order
}

// GetAllOrders lists orders matching the filters.
func (s *OrderService) GetAllOrders(req GetAllOrdersRequest, reply *OrderList) error {
	query, err := queries.NewGetAllOrdersQuery(req.ID, req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		return encodeError(err)
	}

	views, err := s.allOrdersHandler.Handle(context.Background(), query)
	if err != nil {
		return encodeError(err)
	}

	reply.Orders = viewsToWire(views)
	return nil
}

// GetOrderStatusRequest identifies an order by tracking number.
type GetOrderStatusRequest struct {
	TrackingNumber string
}

// OrderStatus is the public tracking summary.
type OrderStatus struct {
	TrackingNumber string
	Status         string
	ClientName     string
	TotalAmount    decimal.Decimal
}

// GetOrderStatus resolves a tracking number to the order's current status.
func (s *OrderService) GetOrderStatus(req GetOrderStatusRequest, reply *OrderStatus) error {
	query, err := queries.NewGetOrderStatusQuery(req.TrackingNumber)
	if err != nil {
		return encodeError(err)
	}

	resp, err := s.orderStatusHandler.Handle(context.Background(), query)
	if err != nil {
		return encodeError(err)
	}

	*reply = OrderStatus{
		TrackingNumber: resp.TrackingNumber,
		Status:         resp.Status,
		ClientName:     resp.ClientName,
		TotalAmount:    resp.TotalAmount,
	}
	return nil
}

// UpdateOrderStatusRequest sets an order's status.
type UpdateOrderStatusRequest struct {
	OrderID        string
	Status         string
	TrackingNumber string
}

// UpdateOrderStatus overwrites an order's status.
func (s *OrderService) UpdateOrderStatus(req UpdateOrderStatusRequest, reply *Order) error {
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return encodeError(errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return encodeError(err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, req.TrackingNumber)
	if err != nil {
		return encodeError(err)
	}

	updated, err := s.updateStatusHandler.Handle(context.Background(), cmd)
	if err != nil {
		return encodeError(err)
	}

	*reply = orderToWire(updated)
	return nil
}

// CancelOrderRequest cancels an order on behalf of a user or an admin.
type CancelOrderRequest struct {
	IDOrTracking string
	Role         string
	Reason       string
}

// CancelOrder cancels an order, enforcing the role-based policy.
func (s *OrderService) CancelOrder(req CancelOrderRequest, reply *Order) error {
	actor, err := order.ParseActor(req.Role)
	if err != nil {
		return encodeError(err)
	}

	cmd, err := commands.NewCancelOrderCommand(req.IDOrTracking, actor, req.Reason)
	if err != nil {
		return encodeError(err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(context.Background(), cmd)
	if err != nil {
		return encodeError(err)
	}

	*reply = orderToWire(cancelled)
	return nil
}

// GetOrderHistoryRequest identifies the client whose orders to list.
type GetOrderHistoryRequest struct {
	ClientID string
}

// GetOrderHistory lists all orders a client has placed, newest first.
func (s *OrderService) GetOrderHistory(req GetOrderHistoryRequest, reply *OrderList) error {
	query, err := queries.NewGetOrderHistoryQuery(req.ClientID)
	if err != nil {
		return encodeError(err)
	}

	views, err := s.orderHistoryHandler.Handle(context.Background(), query)
	if err != nil {
		return encodeError(err)
	}

	reply.Orders = viewsToWire(views)
	return nil
}

func orderToWire(o *order.Order) Order {
	items := make([]Item, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, Item{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	return Order{
		ID:              o.ID().String(),
		UserID:          o.ClientID(),
		ClientName:      o.ClientName(),
		ShippingAddress: o.ShippingAddress(),
		Items:           items,
		TotalAmount:     o.TotalAmount(),
		Status:          o.Status().String(),
		TrackingNumber:  o.TrackingNumber(),
		CreatedAt:       o.CreatedAt(),
	}
}

func viewsToWire(views []queries.OrderView) []Order {
	orders := make([]Order, 0, len(views))
	for _, view := range views {
		items := make([]Item, 0, len(view.Items))
		for _, item := range view.Items {
			items = append(items, Item{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}

		orders = append(orders, Order{
			ID:              view.ID.String(),
			UserID:          view.ClientID,
			ClientName:      view.ClientName,
			ShippingAddress: view.ShippingAddress,
			Items:           items,
			TotalAmount:     view.TotalAmount,
			Status:          view.Status,
			TrackingNumber:  view.TrackingNumber,
			CreatedAt:       view.CreatedAt,
		})
	}

	return orders
}
