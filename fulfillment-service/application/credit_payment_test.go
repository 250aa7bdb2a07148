package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/orderflow/fulfillment-system/fulfillment-service/domain"
	"github.com/orderflow/fulfillment-system/fulfillment-service/mocks"
	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/orderflow/fulfillment-system/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCreditPayment_Execute(t *testing.T) {
	storedDebit := func() *domain.PaymentTransaction {
		return domain.NewDebit("123", testMerchantID, models.NewMoney(10000, "USD"))
	}

	tests := []struct {
		name           string
		command        *CreditPaymentCommand
		setupMocks     func(*mocks.MockPaymentRepository, *mocks.MockPublisher, *mocks.MockInjector)
		expectedError  string
		expectedStatus int
	}{
		{
			name:    "successful refund",
			command: nil,
			setupMocks: func(repo *mocks.MockPaymentRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByOrderID(mock.Anything, "123", domain.PaymentTypeDebit).
					Return(storedDebit(), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(tx *domain.PaymentTransaction) bool {
					return tx.OrderID == "123" &&
						tx.Status == domain.PaymentStatusRefunded &&
						tx.Amount == models.NewMoney(10000, "USD")
				})).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepCreditPayment, "123").Return(false).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.PaymentRefundedEvent
				})).Return(nil).Once()
			},
			expectedError:  "",
			expectedStatus: http.StatusOK,
		},
		{
			name:    "missing order context",
			command: &CreditPaymentCommand{},
			setupMocks: func(repo *mocks.MockPaymentRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				// No expectations - should fail validation
			},
			expectedError:  "order context with order ID is required",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "no debit on record",
			command: nil,
			setupMocks: func(repo *mocks.MockPaymentRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByOrderID(mock.Anything, "123", domain.PaymentTypeDebit).
					Return(nil, nil).Once()
			},
			expectedError:  "transaction not found",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:    "lookup error",
			command: nil,
			setupMocks: func(repo *mocks.MockPaymentRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByOrderID(mock.Anything, "123", domain.PaymentTypeDebit).
					Return(nil, errors.New("query failed")).Once()
			},
			expectedError:  "query failed",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:    "simulated failure after the write",
			command: nil,
			setupMocks: func(repo *mocks.MockPaymentRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByOrderID(mock.Anything, "123", domain.PaymentTypeDebit).
					Return(storedDebit(), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.PaymentTransaction")).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepCreditPayment, "123").Return(true).Once()
			},
			expectedError:  "unable to process refund for order 123",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockPaymentRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)
			mockFaults := mocks.NewMockInjector(t)

			tt.setupMocks(mockRepo, mockPublisher, mockFaults)

			command := tt.command
			if command == nil {
				command = &CreditPaymentCommand{Order: testOrder(t, "123")}
			}

			useCase := NewCreditPayment(mockRepo, mockPublisher, mockFaults, zap.NewNop())

			order, err := useCase.Execute(context.Background(), command)

			assert.Equal(t, tt.expectedStatus, saga.StatusCode(err))
			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.NotNil(t, order.Payment)
				assert.Equal(t, domain.PaymentStatusRefunded, order.Payment.Status)
				assert.Equal(t, models.NewMoney(10000, "USD"), order.Payment.Amount)
			}
		})
	}
}
