package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/orderflow/fulfillment-system/fulfillment-service/domain"
	"github.com/orderflow/fulfillment-system/fulfillment-service/mocks"
	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/saga"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestUpdateOrderStatus_Execute(t *testing.T) {
	tests := []struct {
		name           string
		command        *UpdateOrderStatusCommand
		setupMocks     func(*mocks.MockOrderRepository, *mocks.MockPublisher, *mocks.MockInjector)
		expectedError  string
		expectedStatus int
	}{
		{
			name:    "successful status update",
			command: &UpdateOrderStatusCommand{OrderID: "123"},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByID(mock.Anything, "123").Return(testOrder(t, "123"), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(order *domain.Order) bool {
					return order.OrderID == "123" && order.Status == domain.OrderStatusPending
				})).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepUpdateOrderStatus, "123").Return(false).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.OrderStatusUpdatedEvent
				})).Return(nil).Once()
			},
			expectedError:  "",
			expectedStatus: http.StatusOK,
		},
		{
			name:    "empty order ID",
			command: &UpdateOrderStatusCommand{},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				// No expectations - should fail validation
			},
			expectedError:  "order ID is required",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "order not found",
			command: &UpdateOrderStatusCommand{OrderID: "123"},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByID(mock.Anything, "123").Return(nil, nil).Once()
			},
			expectedError:  "order not found",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:    "lookup error",
			command: &UpdateOrderStatusCommand{OrderID: "123"},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByID(mock.Anything, "123").
					Return(nil, errors.New("read failed")).Once()
			},
			expectedError:  "read failed",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:    "save error",
			command: &UpdateOrderStatusCommand{OrderID: "123"},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByID(mock.Anything, "123").Return(testOrder(t, "123"), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(errors.New("write throttled")).Once()
			},
			expectedError:  "write throttled",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:    "simulated failure after the write",
			command: &UpdateOrderStatusCommand{OrderID: "11-order"},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByID(mock.Anything, "11-order").Return(testOrder(t, "11-order"), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepUpdateOrderStatus, "11-order").Return(true).Once()
			},
			expectedError:  "unable to update order status for 11-order",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)
			mockFaults := mocks.NewMockInjector(t)

			tt.setupMocks(mockRepo, mockPublisher, mockFaults)

			useCase := NewUpdateOrderStatus(mockRepo, mockPublisher, mockFaults, zap.NewNop())

			order, err := useCase.Execute(context.Background(), tt.command)

			assert.Equal(t, tt.expectedStatus, saga.StatusCode(err))
			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.Equal(t, domain.OrderStatusPending, order.Status)
				assert.Empty(t, order.Events())
			}
		})
	}
}
