package handlers

import (
	"context"
	"encoding/json"

	"github.com/orderflow/fulfillment-system/fulfillment-service/application"
	"github.com/orderflow/fulfillment-system/shared/events"
	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FulfillmentEventHandlers triggers the fulfillment saga from order.submitted
// events arriving on the queue
type FulfillmentEventHandlers struct {
	fulfillOrder *application.FulfillOrder
	logger       *zap.Logger
}

// NewFulfillmentEventHandlers creates new fulfillment event handlers
func NewFulfillmentEventHandlers(fulfillOrder *application.FulfillOrder, logger *zap.Logger) *FulfillmentEventHandlers {
	return &FulfillmentEventHandlers{
		fulfillOrder: fulfillOrder,
		logger:       logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *FulfillmentEventHandlers) HandlerID() string {
	return "fulfillment-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *FulfillmentEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.OrderSubmittedEvent:
		return h.HandleOrderSubmitted(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}

// HandleOrderSubmitted runs the saga for a submitted order
func (h *FulfillmentEventHandlers) HandleOrderSubmitted(ctx context.Context, event *events.Event) error {
	var data OrderSubmittedData
	if err := h.parseEventData(event, &data); err != nil {
		return errors.Wrap(err, "failed to parse order submitted data")
	}

	cmd := &application.CreateOrderCommand{
		OrderID:    data.OrderID,
		CustomerID: data.CustomerID,
		ItemIDs:    data.ItemIDs,
		Total:      data.Total,
	}

	if _, err := h.fulfillOrder.Execute(ctx, cmd); err != nil {
		// The saga already reached a terminal state and recorded why; a retry
		// would re-run completed steps, so the message is not redelivered.
		h.logger.Warn("fulfillment saga did not complete",
			zap.String("order_id", data.OrderID), zap.Error(err))
		return nil
	}

	return nil
}

func (h *FulfillmentEventHandlers) parseEventData(event *events.Event, target interface{}) error {
	jsonData, err := json.Marshal(event.Data)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event data")
	}

	if err := json.Unmarshal(jsonData, target); err != nil {
		return errors.Wrap(err, "failed to unmarshal event data")
	}

	return nil
}

// OrderSubmittedData is the payload of order.submitted events
type OrderSubmittedData struct {
	OrderID    string       `json:"OrderID"`
	CustomerID string       `json:"CustomerID,omitempty"`
	ItemIDs    []string     `json:"ItemIds"`
	Total      models.Money `json:"Total"`
}
