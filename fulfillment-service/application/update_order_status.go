package application

import (
	"context"

	"github.com/orderflow/fulfillment-system/fulfillment-service/domain"
	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/fault"
	"github.com/orderflow/fulfillment-system/shared/saga"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UpdateOrderStatusCommand identifies the order to transition
type UpdateOrderStatusCommand struct {
	OrderID string `json:"OrderID"`
}

// UpdateOrderStatus reads the stored order, moves it to Pending and persists
// it again: the only place the order status is mutated after creation.
type UpdateOrderStatus struct {
	orderRepository domain.OrderRepository
	eventPublisher  events.Publisher
	faults          fault.Injector
	logger          *zap.Logger
}

// NewUpdateOrderStatus creates a new UpdateOrderStatus use case
func NewUpdateOrderStatus(
	orderRepository domain.OrderRepository,
	eventPublisher events.Publisher,
	faults fault.Injector,
	logger *zap.Logger,
) *UpdateOrderStatus {
	return &UpdateOrderStatus{
		orderRepository: orderRepository,
		eventPublisher:  eventPublisher,
		faults:          faults,
		logger:          logger,
	}
}

// Execute transitions the order to Pending and returns the updated order
func (uc *UpdateOrderStatus) Execute(ctx context.Context, cmd *UpdateOrderStatusCommand) (*domain.Order, error) {
	if cmd.OrderID == "" {
		return nil, saga.NewStepError(saga.StepUpdateOrderStatus, saga.FailureValidation,
			errors.New("order ID is required"))
	}

	uc.logger.Info("updating order status", zap.String("order_id", cmd.OrderID))

	order, err := uc.orderRepository.FindByID(ctx, cmd.OrderID)
	if err != nil {
		uc.logger.Error("failed to retrieve order",
			zap.String("order_id", cmd.OrderID), zap.Error(err))
		return nil, saga.NewStepError(saga.StepUpdateOrderStatus, saga.FailureWrite, err)
	}
	if order == nil {
		return nil, saga.NewStepError(saga.StepUpdateOrderStatus, saga.FailureNotFound,
			domain.ErrOrderNotFound)
	}

	order.MarkPending()

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		uc.logger.Error("failed to save order",
			zap.String("order_id", cmd.OrderID), zap.Error(err))
		return nil, saga.NewStepError(saga.StepUpdateOrderStatus, saga.FailureWrite, err)
	}

	if uc.faults.ShouldFail(saga.StepUpdateOrderStatus, order.OrderID) {
		return nil, saga.Errorf(saga.StepUpdateOrderStatus, saga.FailureSimulated,
			"unable to update order status for %s", order.OrderID)
	}

	publishEvents(ctx, uc.eventPublisher, uc.logger, order.Events())
	order.ClearEvents()

	uc.logger.Info("order status updated to pending", zap.String("order_id", order.OrderID))
	return order, nil
}
