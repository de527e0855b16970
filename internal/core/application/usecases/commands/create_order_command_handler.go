package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/outbox"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the aggregate (deriving the total and generating a tracking number),
// persists it atomically with its items, and enqueues the order.created event
// and the "created" notification in the same transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created aggregate.
// A persistence failure rolls back everything, so no partial order and no
// orphaned outbox records become visible.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ClientID(),
		cmd.ClientName(),
		cmd.ShippingAddress(),
		cmd.Items(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = enqueueSideEffects(ctx, uow, newOrder, order.EventOrderCreated, outbox.Notification{
		Recipient: newOrder.ClientID(),
		Tag:       "created",
		Extra:     newOrder.TrackingNumber(),
	}); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// enqueueSideEffects adds the lifecycle event and its notification to the
// outbox within the current transaction.
func enqueueSideEffects(
	ctx context.Context,
	uow OrderUoW,
	o *order.Order,
	eventTag string,
	notification outbox.Notification,
) error {
	return enqueueSideEffectsWithEvent(ctx, uow, order.NewEvent(o), eventTag, notification)
}

func enqueueSideEffectsWithEvent(
	ctx context.Context,
	uow OrderUoW,
	event order.Event,
	eventTag string,
	notification outbox.Notification,
) error {
	eventRecord, err := outbox.NewEventRecord(eventTag, event)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, eventRecord); err != nil {
		return err
	}

	notificationRecord, err := outbox.NewNotificationRecord(notification)
	if err != nil {
		return err
	}
	return uow.OutboxRepository().Add(ctx, notificationRecord)
}
