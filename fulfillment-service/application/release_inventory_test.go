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

func TestReleaseInventory_Execute(t *testing.T) {
	tests := []struct {
		name           string
		command        *ReleaseInventoryCommand
		setupMocks     func(*mocks.MockInventoryRepository, *mocks.MockPublisher, *mocks.MockInjector)
		expectedError  string
		expectedStatus int
	}{
		{
			name:    "successful release",
			command: nil,
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByOrderID(mock.Anything, "123", domain.TransactionTypeReserve).
					Return(domain.NewReservation("123", []string{"item1", "item2"}), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(tx *domain.InventoryTransaction) bool {
					return tx.OrderID == "123" &&
						tx.Type == domain.TransactionTypeReserve &&
						tx.Status == domain.InventoryStatusReleased
				})).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepReleaseInventory, "123").Return(false).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.InventoryReleasedEvent
				})).Return(nil).Once()
			},
			expectedError:  "",
			expectedStatus: http.StatusOK,
		},
		{
			name:    "missing order context",
			command: &ReleaseInventoryCommand{},
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				// No expectations - should fail validation
			},
			expectedError:  "order context with order ID is required",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "no reservation on record",
			command: nil,
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByOrderID(mock.Anything, "123", domain.TransactionTypeReserve).
					Return(nil, nil).Once()
			},
			expectedError:  "transaction not found",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:    "lookup error",
			command: nil,
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByOrderID(mock.Anything, "123", domain.TransactionTypeReserve).
					Return(nil, errors.New("query failed")).Once()
			},
			expectedError:  "query failed",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:    "save error",
			command: nil,
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByOrderID(mock.Anything, "123", domain.TransactionTypeReserve).
					Return(domain.NewReservation("123", []string{"item1"}), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.InventoryTransaction")).
					Return(errors.New("write throttled")).Once()
			},
			expectedError:  "write throttled",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:    "simulated failure after the write",
			command: nil,
			setupMocks: func(repo *mocks.MockInventoryRepository, publisher *mocks.MockPublisher, faults *mocks.MockInjector) {
				repo.EXPECT().FindByOrderID(mock.Anything, "123", domain.TransactionTypeReserve).
					Return(domain.NewReservation("123", []string{"item1"}), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.InventoryTransaction")).Return(nil).Once()
				faults.EXPECT().ShouldFail(saga.StepReleaseInventory, "123").Return(true).Once()
			},
			expectedError:  "unable to release inventory for order 123",
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
				command = &ReleaseInventoryCommand{Order: testOrder(t, "123")}
			}

			useCase := NewReleaseInventory(mockRepo, mockPublisher, mockFaults, zap.NewNop())

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
				assert.Equal(t, domain.InventoryStatusReleased, order.Inventory.Status)
				assert.Equal(t, []string{"item1", "item2"}, order.Inventory.OrderItems)
			}
		})
	}
}
