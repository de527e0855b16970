// Package http exposes the order lifecycle operations over HTTP using echo.
// Handlers are thin marshaling layers: they bind the request, call the
// command or query handler, and map domain errors to status codes.
package http

import (
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	orderStatusHandler  queries.GetOrderStatusQueryHandler
	orderHistoryHandler queries.GetOrderHistoryQueryHandler
	allOrdersHandler    queries.GetAllOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	orderStatusHandler queries.GetOrderStatusQueryHandler,
	orderHistoryHandler queries.GetOrderHistoryQueryHandler,
	allOrdersHandler queries.GetAllOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		updateStatusHandler: updateStatusHandler,
		cancelOrderHandler:  cancelOrderHandler,
		orderStatusHandler:  orderStatusHandler,
		orderHistoryHandler: orderHistoryHandler,
		allOrdersHandler:    allOrdersHandler,
	}
}

// RegisterRoutes binds all lifecycle routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.GetOrders)
	e.GET("/orders/history/:clientId", s.GetOrderHistory)
	e.GET("/orders/:trackingNumber/status", s.GetOrderStatus)
	e.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	e.PATCH("/orders/:idOrTracking/cancel", s.CancelOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type itemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	UserID          string        `json:"userId"`
	ClientName      string        `json:"clientName"`
	ShippingAddress string        `json:"shippingAddress"`
	Items           []itemRequest `json:"items"`
}

// CreateOrder handles POST /orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

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
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrders handles GET /orders - lists orders with optional filters.
func (s *Server) GetOrders(ctx echo.Context) error {
	query, err := queries.NewGetAllOrdersQuery(
		ctx.QueryParam("id"),
		ctx.QueryParam("userId"),
		ctx.QueryParam("startDate"),
		ctx.QueryParam("endDate"),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.allOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, viewsToResponse(views))
}

// GetOrderStatus handles GET /orders/:trackingNumber/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	query, err := queries.NewGetOrderStatusQuery(ctx.Param("trackingNumber"))
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.orderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statusResponse{
		TrackingNumber: resp.TrackingNumber,
		Status:         resp.Status,
		ClientName:     resp.ClientName,
		TotalAmount:    resp.TotalAmount,
	})
}

type updateStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
}

// UpdateOrderStatus handles PATCH /orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, req.TrackingNumber)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

type cancelOrderRequest struct {
	Role   string `json:"role"`
	Reason string `json:"reason"`
}

// CancelOrder handles PATCH /orders/:idOrTracking/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := order.ParseActor(req.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(ctx.Param("idOrTracking"), actor, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// GetOrderHistory handles GET /orders/history/:clientId.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	query, err := queries.NewGetOrderHistoryQuery(ctx.Param("clientId"))
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, viewsToResponse(views))
}
