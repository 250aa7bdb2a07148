package application

import (
	"context"

	"github.com/orderflow/fulfillment-system/fulfillment-service/domain"
	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/fault"
	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/orderflow/fulfillment-system/shared/saga"
	"go.uber.org/zap"
)

// CreateOrderCommand is the raw order intake payload
type CreateOrderCommand struct {
	OrderID    string       `json:"OrderID"`
	CustomerID string       `json:"CustomerID,omitempty"`
	ItemIDs    []string     `json:"ItemIds"`
	Total      models.Money `json:"Total"`
}

// CreateOrder persists a new order in status New. The write is idempotent by
// key overwrite: re-submitting the same order ID replaces the record.
type CreateOrder struct {
	orderRepository domain.OrderRepository
	eventPublisher  events.Publisher
	faults          fault.Injector
	logger          *zap.Logger
}

// NewCreateOrder creates a new CreateOrder use case
func NewCreateOrder(
	orderRepository domain.OrderRepository,
	eventPublisher events.Publisher,
	faults fault.Injector,
	logger *zap.Logger,
) *CreateOrder {
	return &CreateOrder{
		orderRepository: orderRepository,
		eventPublisher:  eventPublisher,
		faults:          faults,
		logger:          logger,
	}
}

// Execute persists the order and returns it as the initial saga context
func (uc *CreateOrder) Execute(ctx context.Context, cmd *CreateOrderCommand) (*domain.Order, error) {
	order, err := domain.NewOrder(cmd.OrderID, cmd.CustomerID, cmd.ItemIDs, cmd.Total)
	if err != nil {
		return nil, saga.NewStepError(saga.StepCreateOrder, saga.FailureValidation, err)
	}

	uc.logger.Info("received new order", zap.String("order_id", order.OrderID))

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		uc.logger.Error("failed to save order", zap.String("order_id", order.OrderID), zap.Error(err))
		return nil, saga.NewStepError(saga.StepCreateOrder, saga.FailureWrite, err)
	}

	if uc.faults.ShouldFail(saga.StepCreateOrder, order.OrderID) {
		return nil, saga.Errorf(saga.StepCreateOrder, saga.FailureSimulated,
			"unable to process order %s", order.OrderID)
	}

	publishEvents(ctx, uc.eventPublisher, uc.logger, order.Events())
	order.ClearEvents()

	uc.logger.Info("order status set to new", zap.String("order_id", order.OrderID))
	return order, nil
}

// publishEvents publishes recorded domain events. The durable write already
// happened when this runs, so a publish failure is logged rather than turned
// into a step failure.
func publishEvents(ctx context.Context, publisher events.Publisher, logger *zap.Logger, evts []*events.Event) {
	if len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		logger.Warn("failed to publish domain events", zap.Error(err))
	}
}
