package domain

import (
	"context"

	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/pkg/errors"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "New"
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Order is the aggregate flowing through the fulfillment saga. The steps
// enrich it in place: reservation attaches Inventory, debit attaches Payment.
// JSON field names keep the legacy order-context wire contract.
type Order struct {
	OrderID    string                `json:"OrderID"`
	CustomerID string                `json:"CustomerID,omitempty"`
	ItemIDs    []string              `json:"ItemIds"`
	Total      models.Money          `json:"Total"`
	Status     OrderStatus           `json:"OrderStatus"`
	Inventory  *InventoryTransaction `json:"Inventory,omitempty"`
	Payment    *PaymentTransaction   `json:"Payment,omitempty"`
	Timestamps models.Timestamps     `json:"-"`

	recorded []*events.Event
}

// NewOrder creates an order in status New from the raw intake payload
func NewOrder(orderID, customerID string, itemIDs []string, total models.Money) (*Order, error) {
	if orderID == "" {
		return nil, errors.New("order ID is required")
	}

	order := &Order{
		OrderID:    orderID,
		CustomerID: customerID,
		ItemIDs:    itemIDs,
		Total:      total,
		Status:     OrderStatusNew,
		Timestamps: models.NewTimestamps(),
	}

	order.recordEvent(events.NewEvent(models.ID(orderID), events.OrderCreatedEvent, OrderCreatedData{
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		ItemIDs:    order.ItemIDs,
		Total:      order.Total,
	}))

	return order, nil
}

// MarkPending transitions the order to Pending after payment was debited
func (o *Order) MarkPending() {
	o.setStatus(OrderStatusPending)
}

func (o *Order) setStatus(status OrderStatus) {
	previous := o.Status
	o.Status = status
	o.Timestamps = o.Timestamps.Update()

	o.recordEvent(events.NewEvent(models.ID(o.OrderID), events.OrderStatusUpdatedEvent, OrderStatusUpdatedData{
		OrderID:        o.OrderID,
		PreviousStatus: previous,
		Status:         status,
	}))
}

// AttachInventory annotates the order context with an inventory transaction
func (o *Order) AttachInventory(tx *InventoryTransaction) {
	o.Inventory = tx
}

// AttachPayment annotates the order context with a payment transaction
func (o *Order) AttachPayment(tx *PaymentTransaction) {
	o.Payment = tx
}

// Events returns recorded domain events
func (o *Order) Events() []*events.Event {
	return o.recorded
}

// ClearEvents clears recorded domain events
func (o *Order) ClearEvents() {
	o.recorded = nil
}

func (o *Order) recordEvent(event *events.Event) {
	o.recorded = append(o.recorded, event)
}

// Event Data Structures
type OrderCreatedData struct {
	OrderID    string       `json:"order_id"`
	CustomerID string       `json:"customer_id,omitempty"`
	ItemIDs    []string     `json:"item_ids"`
	Total      models.Money `json:"total"`
}

type OrderStatusUpdatedData struct {
	OrderID        string      `json:"order_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	Status         OrderStatus `json:"status"`
}

// OrderRepository persists order aggregates. Save is a whole-record upsert
// keyed by order ID; FindByID returns (nil, nil) when no record exists.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, orderID string) (*Order, error)
}
