package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/orderflow/fulfillment-system/fulfillment-service/mocks"
	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/orderflow/fulfillment-system/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCreateOrder_Execute(t *testing.T) {
	tests := []struct {
		name           string
		command        *CreateOrderCommand
		setupMocks     func(*mocks.MockOrderRepository, *mocks.MockPublisher, *mocks.MockInjector)
		expectedError  string
		expectedStatus int
	}{
		{
			name: "successful order creation",
			command: &CreateOrderCommand{
				OrderID:    "123",
				CustomerID: "customer-1",
				ItemIDs:    []string{"item1", "item2"},
				Total:      models.NewMoney(10000, "USD"),
			},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepCreateOrder, "123").Return(false).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.OrderCreatedEvent
				})).Return(nil).Once()
			},
			expectedError:  "",
			expectedStatus: http.StatusOK,
		},
		{
			name: "empty order ID",
			command: &CreateOrderCommand{
				OrderID: "",
				ItemIDs: []string{"item1"},
				Total:   models.NewMoney(10000, "USD"),
			},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				// No expectations - should fail validation
			},
			expectedError:  "order ID is required",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "repository save error",
			command: &CreateOrderCommand{
				OrderID: "123",
				ItemIDs: []string{"item1"},
				Total:   models.NewMoney(10000, "USD"),
			},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(errors.New("conditional check failed")).Once()
			},
			expectedError:  "conditional check failed",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "simulated failure after the write",
			command: &CreateOrderCommand{
				OrderID: "1-order",
				ItemIDs: []string{"item1"},
				Total:   models.NewMoney(10000, "USD"),
			},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepCreateOrder, "1-order").Return(true).Once()
			},
			expectedError:  "unable to process order 1-order",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "publish failure does not fail the step",
			command: &CreateOrderCommand{
				OrderID: "123",
				ItemIDs: []string{"item1"},
				Total:   models.NewMoney(10000, "USD"),
			},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepCreateOrder, "123").Return(false).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("broker unavailable")).Once()
			},
			expectedError:  "",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)
			mockFaults := mocks.NewMockInjector(t)

			tt.setupMocks(mockRepo, mockPublisher, mockFaults)

			useCase := NewCreateOrder(mockRepo, mockPublisher, mockFaults, zap.NewNop())

			order, err := useCase.Execute(context.Background(), tt.command)

			assert.Equal(t, tt.expectedStatus, saga.StatusCode(err))
			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.Equal(t, tt.command.OrderID, order.OrderID)
				assert.Equal(t, tt.command.Total, order.Total)
				assert.Empty(t, order.Events(), "events should be cleared after publishing")
			}
		})
	}
}
