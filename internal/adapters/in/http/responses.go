package http

import (
	"errors"
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type itemResponse struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	ClientName      string          `json:"clientName"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	Items           []itemResponse  `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type statusResponse struct {
	TrackingNumber string          `json:"trackingNumber"`
	Status         string          `json:"status"`
	ClientName     string          `json:"clientName"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func orderToResponse(o *order.Order) orderResponse {
	items := make([]itemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemResponse{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price(),
		})
	}

	return orderResponse{
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

func viewsToResponse(views []queries.OrderView) []orderResponse {
	responses := make([]orderResponse, 0, len(views))
	for _, view := range views {
		items := make([]itemResponse, 0, len(view.Items))
		for _, item := range view.Items {
			items = append(items, itemResponse{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}

		responses = append(responses, orderResponse{
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

	return responses
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain errors to HTTP status codes. Unexpected errors
// degrade to a generic internal error that leaks no detail.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrNotPermitted):
		return ctx.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
