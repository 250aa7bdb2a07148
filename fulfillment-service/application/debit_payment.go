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

// DebitPaymentCommand carries the order context into the step
type DebitPaymentCommand struct {
	Order *domain.Order `json:"Order"`
}

// DebitPayment records a payment debit for the order total and annotates the
// order context with it.
type DebitPayment struct {
	paymentRepository domain.PaymentRepository
	eventPublisher    events.Publisher
	faults            fault.Injector
	merchantID        string
	logger            *zap.Logger
}

// NewDebitPayment creates a new DebitPayment use case
func NewDebitPayment(
	paymentRepository domain.PaymentRepository,
	eventPublisher events.Publisher,
	faults fault.Injector,
	merchantID string,
	logger *zap.Logger,
) *DebitPayment {
	return &DebitPayment{
		paymentRepository: paymentRepository,
		eventPublisher:    eventPublisher,
		faults:            faults,
		merchantID:        merchantID,
		logger:            logger,
	}
}

// Execute persists the debit and returns the enriched order context
func (uc *DebitPayment) Execute(ctx context.Context, cmd *DebitPaymentCommand) (*domain.Order, error) {
	if cmd.Order == nil || cmd.Order.OrderID == "" {
		return nil, saga.NewStepError(saga.StepDebitPayment, saga.FailureValidation,
			errors.New("order context with order ID is required"))
	}
	order := cmd.Order

	uc.logger.Info("processing payment", zap.String("order_id", order.OrderID))

	payment := domain.NewDebit(order.OrderID, uc.merchantID, order.Total)
	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		uc.logger.Error("failed to save payment",
			zap.String("order_id", order.OrderID), zap.Error(err))
		return nil, saga.NewStepError(saga.StepDebitPayment, saga.FailureWrite, err)
	}

	order.AttachPayment(payment)

	if uc.faults.ShouldFail(saga.StepDebitPayment, order.OrderID) {
		return nil, saga.Errorf(saga.StepDebitPayment, saga.FailureSimulated,
			"unable to process payment for order %s", order.OrderID)
	}

	publishEvents(ctx, uc.eventPublisher, uc.logger, []*events.Event{
		events.NewEvent(models.ID(order.OrderID), events.PaymentDebitedEvent, PaymentEventData{
			OrderID:    order.OrderID,
			MerchantID: payment.MerchantID,
			Amount:     payment.Amount,
			Status:     payment.Status,
		}),
	})

	uc.logger.Info("payment processed", zap.String("order_id", order.OrderID))
	return order, nil
}

// PaymentEventData is the payload of payment debited/refunded events
type PaymentEventData struct {
	OrderID    string               `json:"order_id"`
	MerchantID string               `json:"merchant_id"`
	Amount     models.Money         `json:"amount"`
	Status     domain.PaymentStatus `json:"status"`
}
