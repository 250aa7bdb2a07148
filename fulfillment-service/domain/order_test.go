package domain

import (
	"testing"

	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	order, err := NewOrder("123", "cust-9", []string{"item1", "item2"}, models.NewMoney(10000, "USD"))
	require.NoError(t, err)

	assert.Equal(t, "123", order.OrderID)
	assert.Equal(t, OrderStatusNew, order.Status)
	assert.Equal(t, []string{"item1", "item2"}, order.ItemIDs)
	assert.Nil(t, order.Inventory)
	assert.Nil(t, order.Payment)

	recorded := order.Events()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.OrderCreatedEvent, recorded[0].EventType)
}

func TestNewOrder_EmptyID(t *testing.T) {
	_, err := NewOrder("", "", nil, models.Money{})
	assert.Error(t, err)
}

func TestOrder_MarkPending(t *testing.T) {
	order, err := NewOrder("123", "", []string{"item1"}, models.NewMoney(500, "USD"))
	require.NoError(t, err)
	order.ClearEvents()

	order.MarkPending()

	assert.Equal(t, OrderStatusPending, order.Status)
	recorded := order.Events()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.OrderStatusUpdatedEvent, recorded[0].EventType)

	data, ok := recorded[0].Data.(OrderStatusUpdatedData)
	require.True(t, ok)
	assert.Equal(t, OrderStatusNew, data.PreviousStatus)
	assert.Equal(t, OrderStatusPending, data.Status)
}

func TestInventoryTransaction_ReleaseIsIdempotent(t *testing.T) {
	tx := NewReservation("123", []string{"item1", "item2"})
	assert.Equal(t, InventoryStatusReserved, tx.Status)
	assert.Equal(t, TransactionTypeReserve, tx.Type)

	tx.Release()
	assert.Equal(t, InventoryStatusReleased, tx.Status)

	tx.Release()
	assert.Equal(t, InventoryStatusReleased, tx.Status)
	assert.Equal(t, []string{"item1", "item2"}, tx.OrderItems)
}

func TestNewReservation_CopiesItemList(t *testing.T) {
	items := []string{"item1"}
	tx := NewReservation("123", items)

	items[0] = "mutated"

	assert.Equal(t, []string{"item1"}, tx.OrderItems)
}

func TestPaymentTransaction_RefundPreservesAmount(t *testing.T) {
	tx := NewDebit("123", "merch1", models.NewMoney(10000, "USD"))
	assert.Equal(t, PaymentStatusPaid, tx.Status)
	assert.Equal(t, PaymentTypeDebit, tx.Type)

	tx.Refund()
	assert.Equal(t, PaymentStatusRefunded, tx.Status)
	assert.True(t, tx.Amount.Equal(models.NewMoney(10000, "USD")))

	tx.Refund()
	assert.Equal(t, PaymentStatusRefunded, tx.Status)
}
