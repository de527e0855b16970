package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/outbox"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// CancelOrderCommandHandler handles order cancellation. Resolves the order,
// lets the aggregate apply the role-based policy, persists the cancelled
// state, and enqueues the order.cancelled event (carrying cancelledBy and,
// for administrators, the reason) plus the actor-specific notification.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation and returns the cancelled aggregate.
// Policy rejections leave the stored order untouched.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := resolveOrder(ctx, uow.OrderRepository(), cmd.IDOrTracking())
	if err != nil {
		return nil, err
	}

	if err = existing.Cancel(cmd.Actor(), cmd.Reason()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, existing); err != nil {
		return nil, err
	}

	event := order.NewEvent(existing)
	event.CancelledBy = cmd.Actor().String()
	if cmd.Actor() == order.ActorAdmin {
		event.Reason = cmd.Reason()
	}

	notification := outbox.Notification{
		Recipient: existing.ClientID(),
		Tag:       "cancelled",
	}
	if cmd.Actor() == order.ActorAdmin {
		notification.Extra = cmd.Reason()
	}

	if err = enqueueSideEffectsWithEvent(ctx, uow, event, order.EventOrderCancelled, notification); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}

// resolveOrder looks the order up by primary id first and falls back to a
// tracking-number lookup. Inputs that do not parse as a UUID go straight to
// the tracking lookup.
func resolveOrder(ctx context.Context, repo ports.OrderRepository, idOrTracking string) (*order.Order, error) {
	if id, err := kernel.UUIDFromString(idOrTracking); err == nil {
		existing, getErr := repo.Get(ctx, id)
		if getErr == nil {
			return existing, nil
		}
		if !errors.Is(getErr, errs.ErrObjectNotFound) {
			return nil, getErr
		}
	}

	return repo.GetByTrackingNumber(ctx, idOrTracking)
}
