package domain

import (
	"context"

	"github.com/orderflow/fulfillment-system/shared/models"
)

// PaymentType discriminates payment transaction lineages per order
type PaymentType string

const (
	PaymentTypeDebit PaymentType = "Debit"
)

// PaymentStatus is a one-way transition: Paid then Refunded
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// PaymentTransaction records one monetary movement for an order, keyed by
// OrderID plus PaymentType. Amount equals the order total at debit time.
type PaymentTransaction struct {
	OrderID    string            `json:"OrderID"`
	Type       PaymentType       `json:"PaymentType"`
	MerchantID string            `json:"MerchantID"`
	Amount     models.Money      `json:"PaymentAmount"`
	Status     PaymentStatus     `json:"Status"`
	Timestamps models.Timestamps `json:"-"`
}

// NewDebit builds a Paid payment transaction for the order total
func NewDebit(orderID, merchantID string, amount models.Money) *PaymentTransaction {
	return &PaymentTransaction{
		OrderID:    orderID,
		Type:       PaymentTypeDebit,
		MerchantID: merchantID,
		Amount:     amount,
		Status:     PaymentStatusPaid,
		Timestamps: models.NewTimestamps(),
	}
}

// Refund marks the payment as refunded. Idempotent by construction, same as
// InventoryTransaction.Release.
func (t *PaymentTransaction) Refund() {
	t.Status = PaymentStatusRefunded
	t.Timestamps = t.Timestamps.Update()
}

// PaymentRepository persists payment transactions. Save upserts the whole
// record; FindByOrderID returns (nil, nil) when no record matches.
type PaymentRepository interface {
	Save(ctx context.Context, tx *PaymentTransaction) error
	FindByOrderID(ctx context.Context, orderID string, paymentType PaymentType) (*PaymentTransaction, error)
}
