package application

import (
	"context"

	"github.com/orderflow/fulfillment-system/fulfillment-service/domain"
	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/fault"
	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/orderflow/fulfillment-system/shared/saga"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ReserveInventoryCommand carries the evolving order context into the step
type ReserveInventoryCommand struct {
	Order *domain.Order `json:"Order"`
}

// ReserveInventory records an inventory reservation for the order's items and
// annotates the order context with it. The reservation is unconditional:
// stock-level validation is an upstream concern.
type ReserveInventory struct {
	inventoryRepository domain.InventoryRepository
	eventPublisher      events.Publisher
	faults              fault.Injector
	logger              *zap.Logger
}

// NewReserveInventory creates a new ReserveInventory use case
func NewReserveInventory(
	inventoryRepository domain.InventoryRepository,
	eventPublisher events.Publisher,
	faults fault.Injector,
	logger *zap.Logger,
) *ReserveInventory {
	return &ReserveInventory{
		inventoryRepository: inventoryRepository,
		eventPublisher:      eventPublisher,
		faults:              faults,
		logger:              logger,
	}
}

// Execute persists the reservation and returns the enriched order context
func (uc *ReserveInventory) Execute(ctx context.Context, cmd *ReserveInventoryCommand) (*domain.Order, error) {
	if cmd.Order == nil || cmd.Order.OrderID == "" {
		return nil, saga.NewStepError(saga.StepReserveInventory, saga.FailureValidation,
			errors.New("order context with order ID is required"))
	}
	order := cmd.Order

	uc.logger.Info("processing inventory reservation", zap.String("order_id", order.OrderID))

	reservation := domain.NewReservation(order.OrderID, order.ItemIDs)
	if err := uc.inventoryRepository.Save(ctx, reservation); err != nil {
		uc.logger.Error("failed to save inventory reservation",
			zap.String("order_id", order.OrderID), zap.Error(err))
		return nil, saga.NewStepError(saga.StepReserveInventory, saga.FailureWrite, err)
	}

	order.AttachInventory(reservation)

	if uc.faults.ShouldFail(saga.StepReserveInventory, order.OrderID) {
		return nil, saga.Errorf(saga.StepReserveInventory, saga.FailureSimulated,
			"unable to reserve inventory for order %s", order.OrderID)
	}

	publishEvents(ctx, uc.eventPublisher, uc.logger, []*events.Event{
		events.NewEvent(models.ID(order.OrderID), events.InventoryReservedEvent, InventoryEventData{
			OrderID:    order.OrderID,
			OrderItems: reservation.OrderItems,
			Status:     reservation.Status,
		}),
	})

	uc.logger.Info("reservation processed", zap.String("order_id", order.OrderID))
	return order, nil
}

// InventoryEventData is the payload of inventory reserved/released events
type InventoryEventData struct {
	OrderID    string                 `json:"order_id"`
	OrderItems []string               `json:"order_items"`
	Status     domain.InventoryStatus `json:"status"`
}
