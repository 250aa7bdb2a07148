package domain

import (
	"context"

	"github.com/orderflow/fulfillment-system/shared/models"
)

// TransactionType discriminates inventory transaction lineages per order
type TransactionType string

const (
	TransactionTypeReserve TransactionType = "Reserve"
	TransactionTypeRelease TransactionType = "Release"
)

// InventoryStatus is a one-way transition: Reserved then Released
type InventoryStatus string

const (
	InventoryStatusReserved InventoryStatus = "Reserved"
	InventoryStatusReleased InventoryStatus = "Released"
)

// InventoryTransaction records one inventory movement for an order. The
// composite identity is OrderID plus TransactionType; the item list is fixed
// at reservation time.
type InventoryTransaction struct {
	OrderID    string            `json:"OrderID"`
	Type       TransactionType   `json:"TransactionType"`
	OrderItems []string          `json:"OrderItems"`
	Status     InventoryStatus   `json:"Status"`
	Timestamps models.Timestamps `json:"-"`
}

// NewReservation builds a Reserved inventory transaction for the given items.
// No stock-level check happens here; availability is an upstream concern.
func NewReservation(orderID string, itemIDs []string) *InventoryTransaction {
	items := make([]string, len(itemIDs))
	copy(items, itemIDs)

	return &InventoryTransaction{
		OrderID:    orderID,
		Type:       TransactionTypeReserve,
		OrderItems: items,
		Status:     InventoryStatusReserved,
		Timestamps: models.NewTimestamps(),
	}
}

// Release marks the reservation as released. Setting the status to its fixed
// terminal value is idempotent by construction: a second release overwrites
// the record with identical content.
func (t *InventoryTransaction) Release() {
	t.Status = InventoryStatusReleased
	t.Timestamps = t.Timestamps.Update()
}

// InventoryRepository persists inventory transactions. Save upserts the whole
// record under its composite key; FindByOrderID queries by order ID and
// transaction type and returns (nil, nil) when no record matches.
type InventoryRepository interface {
	Save(ctx context.Context, tx *InventoryTransaction) error
	FindByOrderID(ctx context.Context, orderID string, txType TransactionType) (*InventoryTransaction, error)
}
