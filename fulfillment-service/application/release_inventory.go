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

// ReleaseInventoryCommand carries the order context into the compensator
type ReleaseInventoryCommand struct {
	Order *domain.Order `json:"Order"`
}

// ReleaseInventory compensates a prior reservation. It re-reads the Reserve
// transaction from the store rather than trusting the context, so replays of
// the compensation converge on the same terminal record. It fails closed when
// no reservation exists and never creates new state.
type ReleaseInventory struct {
	inventoryRepository domain.InventoryRepository
	eventPublisher      events.Publisher
	faults              fault.Injector
	logger              *zap.Logger
}

// NewReleaseInventory creates a new ReleaseInventory use case
func NewReleaseInventory(
	inventoryRepository domain.InventoryRepository,
	eventPublisher events.Publisher,
	faults fault.Injector,
	logger *zap.Logger,
) *ReleaseInventory {
	return &ReleaseInventory{
		inventoryRepository: inventoryRepository,
		eventPublisher:      eventPublisher,
		faults:              faults,
		logger:              logger,
	}
}

// Execute releases the reservation and returns the enriched order context
func (uc *ReleaseInventory) Execute(ctx context.Context, cmd *ReleaseInventoryCommand) (*domain.Order, error) {
	if cmd.Order == nil || cmd.Order.OrderID == "" {
		return nil, saga.NewStepError(saga.StepReleaseInventory, saga.FailureValidation,
			errors.New("order context with order ID is required"))
	}
	order := cmd.Order

	uc.logger.Info("processing inventory release", zap.String("order_id", order.OrderID))

	reservation, err := uc.inventoryRepository.FindByOrderID(ctx, order.OrderID, domain.TransactionTypeReserve)
	if err != nil {
		uc.logger.Error("failed to look up inventory transaction",
			zap.String("order_id", order.OrderID), zap.Error(err))
		return nil, saga.NewStepError(saga.StepReleaseInventory, saga.FailureWrite, err)
	}
	if reservation == nil {
		return nil, saga.NewStepError(saga.StepReleaseInventory, saga.FailureNotFound,
			domain.ErrTransactionNotFound)
	}

	reservation.Release()

	// Same key, whole-record overwrite: an update in place, never an insert.
	if err := uc.inventoryRepository.Save(ctx, reservation); err != nil {
		uc.logger.Error("failed to save inventory transaction",
			zap.String("order_id", order.OrderID), zap.Error(err))
		return nil, saga.NewStepError(saga.StepReleaseInventory, saga.FailureWrite, err)
	}

	order.AttachInventory(reservation)

	if uc.faults.ShouldFail(saga.StepReleaseInventory, order.OrderID) {
		return nil, saga.Errorf(saga.StepReleaseInventory, saga.FailureSimulated,
			"unable to release inventory for order %s", order.OrderID)
	}

	publishEvents(ctx, uc.eventPublisher, uc.logger, []*events.Event{
		events.NewEvent(models.ID(order.OrderID), events.InventoryReleasedEvent, InventoryEventData{
			OrderID:    order.OrderID,
			OrderItems: reservation.OrderItems,
			Status:     reservation.Status,
		}),
	})

	uc.logger.Info("release processed", zap.String("order_id", order.OrderID))
	return order, nil
}
