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

// CreditPaymentCommand carries the order context into the compensator
type CreditPaymentCommand struct {
	Order *domain.Order `json:"Order"`
}

// CreditPayment compensates a prior debit by refunding it. Like
// ReleaseInventory it re-reads the stored Debit transaction, fails closed on a
// missing record, and overwrites the same record with the terminal status.
type CreditPayment struct {
	paymentRepository domain.PaymentRepository
	eventPublisher    events.Publisher
	faults            fault.Injector
	logger            *zap.Logger
}

// NewCreditPayment creates a new CreditPayment use case
func NewCreditPayment(
	paymentRepository domain.PaymentRepository,
	eventPublisher events.Publisher,
	faults fault.Injector,
	logger *zap.Logger,
) *CreditPayment {
	return &CreditPayment{
		paymentRepository: paymentRepository,
		eventPublisher:    eventPublisher,
		faults:            faults,
		logger:            logger,
	}
}

// Execute refunds the debit and returns the enriched order context
func (uc *CreditPayment) Execute(ctx context.Context, cmd *CreditPaymentCommand) (*domain.Order, error) {
	if cmd.Order == nil || cmd.Order.OrderID == "" {
		return nil, saga.NewStepError(saga.StepCreditPayment, saga.FailureValidation,
			errors.New("order context with order ID is required"))
	}
	order := cmd.Order

	uc.logger.Info("processing refund", zap.String("order_id", order.OrderID))

	payment, err := uc.paymentRepository.FindByOrderID(ctx, order.OrderID, domain.PaymentTypeDebit)
	if err != nil {
		uc.logger.Error("failed to look up payment transaction",
			zap.String("order_id", order.OrderID), zap.Error(err))
		return nil, saga.NewStepError(saga.StepCreditPayment, saga.FailureWrite, err)
	}
	if payment == nil {
		return nil, saga.NewStepError(saga.StepCreditPayment, saga.FailureNotFound,
			domain.ErrTransactionNotFound)
	}

	payment.Refund()

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		uc.logger.Error("failed to save payment transaction",
			zap.String("order_id", order.OrderID), zap.Error(err))
		return nil, saga.NewStepError(saga.StepCreditPayment, saga.FailureWrite, err)
	}

	order.AttachPayment(payment)

	if uc.faults.ShouldFail(saga.StepCreditPayment, order.OrderID) {
		return nil, saga.Errorf(saga.StepCreditPayment, saga.FailureSimulated,
			"unable to process refund for order %s", order.OrderID)
	}

	publishEvents(ctx, uc.eventPublisher, uc.logger, []*events.Event{
		events.NewEvent(models.ID(order.OrderID), events.PaymentRefundedEvent, PaymentEventData{
			OrderID:    order.OrderID,
			MerchantID: payment.MerchantID,
			Amount:     payment.Amount,
			Status:     payment.Status,
		}),
	})

	uc.logger.Info("refund processed", zap.String("order_id", order.OrderID))
	return order, nil
}
