package application

import (
	"context"

	"github.com/orderflow/fulfillment-system/fulfillment-service/domain"
	"github.com/pkg/errors"
)

// GetOrderQuery identifies the order to fetch
type GetOrderQuery struct {
	OrderID string `json:"OrderID"`
}

// GetOrder is the read path for order aggregates
type GetOrder struct {
	orderRepository domain.OrderRepository
}

// NewGetOrder creates a new GetOrder use case
func NewGetOrder(orderRepository domain.OrderRepository) *GetOrder {
	return &GetOrder{orderRepository: orderRepository}
}

// Execute returns the stored order or ErrOrderNotFound
func (uc *GetOrder) Execute(ctx context.Context, query *GetOrderQuery) (*domain.Order, error) {
	if query.OrderID == "" {
		return nil, errors.New("order ID is required")
	}

	order, err := uc.orderRepository.FindByID(ctx, query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	return order, nil
}
