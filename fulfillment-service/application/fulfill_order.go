package application

import (
	"context"
	"time"

	"github.com/orderflow/fulfillment-system/fulfillment-service/domain"
	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/orderflow/fulfillment-system/shared/saga"
	"go.uber.org/zap"
)

// FulfillOrder is the reference orchestrator for the fulfillment saga. It
// drives the forward steps in order and, when one fails, runs the accumulated
// compensations in reverse before reporting the terminal outcome. Any
// conforming external orchestrator can drive the same steps through their
// individual endpoints; this runner documents the expected sequencing.
//
// State machine per execution:
//
//	Started -> OrderCreated -> InventoryReserved -> PaymentDebited -> Completed
//
// A failure before the reservation terminates without compensation; a failure
// after it releases the inventory (and refunds the payment when the debit had
// committed) before terminating. All failed states are terminal; the runner
// never retries a step.
type FulfillOrder struct {
	createOrder       *CreateOrder
	reserveInventory  *ReserveInventory
	debitPayment      *DebitPayment
	updateOrderStatus *UpdateOrderStatus
	releaseInventory  *ReleaseInventory
	creditPayment     *CreditPayment
	eventPublisher    events.Publisher
	eventStore        events.EventStore
	logger            *zap.Logger
}

// NewFulfillOrder creates the saga runner from its step use cases
func NewFulfillOrder(
	createOrder *CreateOrder,
	reserveInventory *ReserveInventory,
	debitPayment *DebitPayment,
	updateOrderStatus *UpdateOrderStatus,
	releaseInventory *ReleaseInventory,
	creditPayment *CreditPayment,
	eventPublisher events.Publisher,
	eventStore events.EventStore,
	logger *zap.Logger,
) *FulfillOrder {
	return &FulfillOrder{
		createOrder:       createOrder,
		reserveInventory:  reserveInventory,
		debitPayment:      debitPayment,
		updateOrderStatus: updateOrderStatus,
		releaseInventory:  releaseInventory,
		creditPayment:     creditPayment,
		eventPublisher:    eventPublisher,
		eventStore:        eventStore,
		logger:            logger,
	}
}

// FulfillOrderResult reports the saga outcome: the final order context (as far
// as the steps enriched it) and the execution trail.
type FulfillOrderResult struct {
	Order     *domain.Order   `json:"Order,omitempty"`
	Execution *saga.Execution `json:"Execution"`
}

type compensation struct {
	name string
	run  func(ctx context.Context) error
}

// Execute runs the fulfillment saga for one intake payload. The returned
// error is the failing step's error when the saga did not complete; the
// result is populated either way.
func (uc *FulfillOrder) Execute(ctx context.Context, cmd *CreateOrderCommand) (*FulfillOrderResult, error) {
	now := time.Now()
	exec := &saga.Execution{
		OrderID:   cmd.OrderID,
		Status:    saga.SagaStatusStarted,
		StartedAt: now,
		UpdatedAt: now,
	}
	result := &FulfillOrderResult{Execution: exec}

	audit := uc.newAuditTrail(cmd.OrderID)
	audit.append(ctx, events.NewEvent(models.ID(cmd.OrderID), events.FulfillmentStartedEvent,
		FulfillmentEventData{OrderID: cmd.OrderID, Status: saga.SagaStatusStarted}))

	var compensations []compensation

	var order *domain.Order
	err := uc.runStep(exec, saga.StepCreateOrder, func() error {
		created, stepErr := uc.createOrder.Execute(ctx, cmd)
		if stepErr != nil {
			return stepErr
		}
		order = created
		return nil
	})
	if err != nil {
		return result, uc.fail(ctx, exec, audit, compensations, saga.StepCreateOrder, err)
	}
	result.Order = order
	exec.Status = saga.SagaStatusInProgress

	err = uc.runStep(exec, saga.StepReserveInventory, func() error {
		enriched, stepErr := uc.reserveInventory.Execute(ctx, &ReserveInventoryCommand{Order: order})
		if stepErr != nil {
			return stepErr
		}
		order = enriched
		return nil
	})
	if err != nil {
		// Nothing to undo: the reservation either never committed or its
		// simulated failure is the one under test, and no earlier step has a
		// compensator.
		return result, uc.fail(ctx, exec, audit, compensations, saga.StepReserveInventory, err)
	}
	compensations = append(compensations, compensation{
		name: saga.StepReleaseInventory,
		run: func(ctx context.Context) error {
			_, compErr := uc.releaseInventory.Execute(ctx, &ReleaseInventoryCommand{Order: order})
			return compErr
		},
	})

	err = uc.runStep(exec, saga.StepDebitPayment, func() error {
		enriched, stepErr := uc.debitPayment.Execute(ctx, &DebitPaymentCommand{Order: order})
		if stepErr != nil {
			return stepErr
		}
		order = enriched
		return nil
	})
	if err != nil {
		return result, uc.fail(ctx, exec, audit, compensations, saga.StepDebitPayment, err)
	}
	compensations = append(compensations, compensation{
		name: saga.StepCreditPayment,
		run: func(ctx context.Context) error {
			_, compErr := uc.creditPayment.Execute(ctx, &CreditPaymentCommand{Order: order})
			return compErr
		},
	})

	err = uc.runStep(exec, saga.StepUpdateOrderStatus, func() error {
		updated, stepErr := uc.updateOrderStatus.Execute(ctx, &UpdateOrderStatusCommand{OrderID: order.OrderID})
		if stepErr != nil {
			return stepErr
		}
		updated.AttachInventory(order.Inventory)
		updated.AttachPayment(order.Payment)
		order = updated
		return nil
	})
	if err != nil {
		return result, uc.fail(ctx, exec, audit, compensations, saga.StepUpdateOrderStatus, err)
	}
	result.Order = order

	exec.Status = saga.SagaStatusCompleted
	exec.UpdatedAt = time.Now()

	completed := events.NewEvent(models.ID(exec.OrderID), events.FulfillmentCompletedEvent,
		FulfillmentEventData{OrderID: exec.OrderID, Status: saga.SagaStatusCompleted})
	audit.append(ctx, completed)
	publishEvents(ctx, uc.eventPublisher, uc.logger, []*events.Event{completed})

	uc.logger.Info("fulfillment completed", zap.String("order_id", exec.OrderID))
	return result, nil
}

// fail marks the execution terminal, compensating completed steps in reverse
// order first when there are any.
func (uc *FulfillOrder) fail(
	ctx context.Context,
	exec *saga.Execution,
	audit *auditTrail,
	compensations []compensation,
	failedStep string,
	cause error,
) error {
	exec.Status = saga.SagaStatusFailed

	for i := len(compensations) - 1; i >= 0; i-- {
		comp := compensations[i]
		record := saga.StepRecord{Name: comp.name, Status: saga.StepStatusCompensated, StartedAt: time.Now()}
		if err := comp.run(ctx); err != nil {
			// A failed compensation is reported but does not stop the chain;
			// the remaining undo steps still get their chance.
			record.Status = saga.StepStatusFailed
			record.Error = err.Error()
			uc.logger.Error("compensation failed",
				zap.String("order_id", exec.OrderID),
				zap.String("step", comp.name),
				zap.Error(err))
		}
		record.FinishedAt = time.Now()
		exec.Steps = append(exec.Steps, record)
	}
	if len(compensations) > 0 {
		exec.Status = saga.SagaStatusCompensated
	}
	exec.UpdatedAt = time.Now()

	eventType := events.FulfillmentFailedEvent
	if exec.Status == saga.SagaStatusCompensated {
		eventType = events.FulfillmentCompensatedEvent
	}
	outcome := events.NewEvent(models.ID(exec.OrderID), eventType, FulfillmentEventData{
		OrderID:    exec.OrderID,
		Status:     exec.Status,
		FailedStep: failedStep,
		Reason:     cause.Error(),
	})
	audit.append(ctx, outcome)
	publishEvents(ctx, uc.eventPublisher, uc.logger, []*events.Event{outcome})

	uc.logger.Warn("fulfillment did not complete",
		zap.String("order_id", exec.OrderID),
		zap.String("failed_step", failedStep),
		zap.String("status", string(exec.Status)),
		zap.Error(cause))

	return cause
}

func (uc *FulfillOrder) runStep(exec *saga.Execution, name string, fn func() error) error {
	record := saga.StepRecord{Name: name, Status: saga.StepStatusPending, StartedAt: time.Now()}

	err := fn()

	record.FinishedAt = time.Now()
	if err != nil {
		record.Status = saga.StepStatusFailed
		record.Error = err.Error()
	} else {
		record.Status = saga.StepStatusCompleted
	}
	exec.Steps = append(exec.Steps, record)
	exec.UpdatedAt = record.FinishedAt
	return err
}

// auditTrail appends saga lifecycle events to the event store, one stream per
// order. Audit writes are best effort: a store failure is logged, never
// surfaced into the saga outcome.
type auditTrail struct {
	uc      *FulfillOrder
	orderID string
	version int
}

func (uc *FulfillOrder) newAuditTrail(orderID string) *auditTrail {
	return &auditTrail{uc: uc, orderID: orderID}
}

func (a *auditTrail) append(ctx context.Context, event *events.Event) {
	if a.uc.eventStore == nil {
		return
	}
	err := a.uc.eventStore.SaveEvents(ctx, models.ID(a.orderID), []*events.Event{event}, a.version)
	if err != nil {
		a.uc.logger.Warn("failed to append saga audit event",
			zap.String("order_id", a.orderID), zap.Error(err))
		return
	}
	a.version++
}

// FulfillmentEventData is the payload of fulfillment lifecycle events
type FulfillmentEventData struct {
	OrderID    string          `json:"order_id"`
	Status     saga.SagaStatus `json:"status"`
	FailedStep string          `json:"failed_step,omitempty"`
	Reason     string          `json:"reason,omitempty"`
}
