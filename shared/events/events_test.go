package events

import (
	"testing"

	"github.com/orderflow/fulfillment-system/shared/models"
	"github.com/stretchr/testify/assert"
)

func TestTopic_Matches(t *testing.T) {
	tests := []struct {
		name    string
		topic   Topic
		pattern Topic
		matches bool
	}{
		{"exact match", "order.created", "order.created", true},
		{"single segment wildcard", "order.created", "order.*", true},
		{"wildcard segment count mismatch", "order.status.updated", "order.*", false},
		{"match all", "payment.debited", "#", true},
		{"prefix pattern", "fulfillment.completed", "fulfillment.#", true},
		{"prefix pattern miss", "payment.debited", "fulfillment.#", false},
		{"suffix pattern", "inventory.released", "#.released", true},
		{"contains pattern", "order.status.updated", "#status#", true},
		{"no match", "order.created", "payment.debited", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.topic.Matches(tt.pattern))
		})
	}
}

func TestEvent_Payload(t *testing.T) {
	type payload struct {
		OrderID string `json:"order_id"`
	}

	event := NewEvent(models.ID("123"), OrderCreatedEvent, payload{OrderID: "123"})

	raw, err := event.MarshalPayload()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"order_id":"123"}`, string(raw))

	// Round trip through the raw form, the shape a broker delivers.
	event.Data = raw
	var decoded payload
	assert.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, "123", decoded.OrderID)
}

func TestEvent_Matches(t *testing.T) {
	event := NewEvent(models.ID("123"), InventoryReservedEvent, nil).
		WithMetadata("source", "fulfillment")

	assert.True(t, event.Matches("inventory.*", nil))
	assert.True(t, event.Matches("inventory.*", Metadata{"source": "fulfillment"}))
	assert.False(t, event.Matches("inventory.*", Metadata{"source": "other"}))
	assert.False(t, event.Matches("payment.*", nil))
}
