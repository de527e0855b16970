package commands_test

import (
	"encoding/json"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/outbox"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_UserByID(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t)
	cmd, err := commands.NewCancelOrderCommand(existing.ID().String(), order.ActorUser, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)

	var enqueued []outbox.Record
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("OutboxRepository").Return(outboxRepo).Twice()
	orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once()
	orderRepo.On("Update", mock.Anything, existing).Return(nil).Once()
	outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("outbox.Record")).
		Run(func(args mock.Arguments) {
			enqueued = append(enqueued, args.Get(1).(outbox.Record))
		}).
		Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Empty(t, cancelled.TrackingNumber())

	require.Len(t, enqueued, 2)
	assert.Equal(t, order.EventOrderCancelled, enqueued[0].Tag)

	var event order.Event
	require.NoError(t, json.Unmarshal(enqueued[0].Payload, &event))
	assert.Equal(t, "user", event.CancelledBy)
	assert.Empty(t, event.Reason)

	assert.Equal(t, "cancelled", enqueued[1].Tag)

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_AdminByTracking(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t)
	require.NoError(t, existing.ChangeStatus(order.Shipped, ""))
	tracking := existing.TrackingNumber()

	cmd, err := commands.NewCancelOrderCommand(tracking, order.ActorAdmin, "warehouse damage")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)

	var enqueued []outbox.Record
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("OutboxRepository").Return(outboxRepo).Twice()
	orderRepo.On("GetByTrackingNumber", mock.Anything, tracking).Return(existing, nil).Once()
	orderRepo.On("Update", mock.Anything, existing).Return(nil).Once()
	outboxRepo.On("Add", mock.Anything, mock.AnythingOfType("outbox.Record")).
		Run(func(args mock.Arguments) {
			enqueued = append(enqueued, args.Get(1).(outbox.Record))
		}).
		Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())

	require.Len(t, enqueued, 2)
	var event order.Event
	require.NoError(t, json.Unmarshal(enqueued[0].Payload, &event))
	assert.Equal(t, "admin", event.CancelledBy)
	assert.Equal(t, "warehouse damage", event.Reason)

	notification, err := enqueued[1].DecodeNotification()
	require.NoError(t, err)
	assert.Equal(t, "warehouse damage", notification.Extra)

	orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_UserForbiddenOnShipped(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t)
	require.NoError(t, existing.ChangeStatus(order.Shipped, ""))

	cmd, err := commands.NewCancelOrderCommand(existing.ID().String(), order.ActorUser, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotPermitted)
	assert.Equal(t, order.Shipped, existing.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_AdminWithoutReason(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t)

	cmd, err := commands.NewCancelOrderCommand(existing.ID().String(), order.ActorAdmin, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, order.Pending, existing.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_IDFallsBackToTracking(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t)
	id := existing.ID()
	cmd, err := commands.NewCancelOrderCommand(id.String(), order.ActorUser, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("OutboxRepository").Return(outboxRepo).Twice()
	orderRepo.On("Get", mock.Anything, id).
		Return(nil, errs.NewObjectNotFoundError("orderID", id)).Once()
	orderRepo.On("GetByTrackingNumber", mock.Anything, id.String()).Return(existing, nil).Once()
	orderRepo.On("Update", mock.Anything, existing).Return(nil).Once()
	outboxRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	cancelled, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	orderRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_NotFoundAnywhere(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelOrderCommand("TRK-MISSING000", order.ActorUser, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetByTrackingNumber", mock.Anything, "TRK-MISSING000").
		Return(nil, errs.NewObjectNotFoundError("trackingNumber", "TRK-MISSING000")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
