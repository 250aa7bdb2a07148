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

func testOrder(t *testing.T, orderID string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(orderID, "customer-1", []string{"item1", "item2"}, models.NewMoney(10000, "USD"))
	assert.NoError(t, err)
	order.ClearEvents()
	return order
}

func TestReserveInventory_Execute(t *testing.T) {
	tests := []struct {
		name           string
		command        *ReserveInventoryCommand
		setupMocks     func(*mocks.MockInventoryRepository, *mocks.MockPublisher, *mocks.MockInjector)
		expectedError  string
		expectedStatus int
	}{
		{
			name:    "successful reservation",
			command: nil, // built per run from testOrder
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(tx *domain.InventoryTransaction) bool {
					return tx.OrderID == "123" &&
						tx.Type == domain.TransactionTypeReserve &&
						tx.Status == domain.InventoryStatusReserved
				})).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepReserveInventory, "123").Return(false).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.InventoryReservedEvent
				})).Return(nil).Once()
			},
			expectedError:  "",
			expectedStatus: http.StatusOK,
		},
		{
			name:    "missing order context",
			command: &ReserveInventoryCommand{},
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				// No expectations - should fail validation
			},
			expectedError:  "order context with order ID is required",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "repository save error",
			command: nil,
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.InventoryTransaction")).
					Return(errors.New("provisioned throughput exceeded")).Once()
			},
			expectedError:  "provisioned throughput exceeded",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:    "simulated failure after the write",
			command: nil,
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.InventoryTransaction")).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepReserveInventory, "123").Return(true).Once()
			},
			expectedError:  "unable to reserve inventory for order 123",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockInventoryRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)
			mockFaults := mocks.NewMockInjector(t)

			tt.setupMocks(mockRepo, mockPublisher, mockFaults)

			command := tt.command
			if command == nil {
				command = &ReserveInventoryCommand{Order: testOrder(t, "123")}
			}

			useCase := NewReserveInventory(mockRepo, mockPublisher, mockFaults, zap.NewNop())

			order, err := useCase.Execute(context.Background(), command)

			assert.Equal(t, tt.expectedStatus, saga.StatusCode(err))
			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.NotNil(t, order.Inventory)
				assert.Equal(t, order.ItemIDs, order.Inventory.OrderItems)
				assert.Equal(t, domain.InventoryStatusReserved, order.Inventory.Status)
			}
		})
	}
}
