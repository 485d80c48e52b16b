package ws

import (
	"time"

	"storefront/internal/core/domain/model/order"
)

// Message types exchanged on the order status stream.
const (
	messageTypeJoin          = "join"
	messageTypeJoined        = "joined"
	messageTypeStatusChanged = "statusChanged"
)

// joinMessage is the first frame a client must send after connecting.
// Until it arrives the connection is anonymous and receives nothing.
type joinMessage struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// joinedMessage acknowledges a successful join.
type joinedMessage struct {
	Type string `json:"type"`
}

// statusChangedMessage is one pushed status transition.
// StatusUpdatedAt carries the same merge key the polled order list exposes,
// so clients reconcile pushed and polled data with one rule.
type statusChangedMessage struct {
	Type            string    `json:"type"`
	OrderID         string    `json:"orderId"`
	OrderNumber     string    `json:"orderNumber"`
	PreviousStatus  string    `json:"previousStatus"`
	NewStatus       string    `json:"newStatus"`
	StatusUpdatedAt time.Time `json:"statusUpdatedAt"`
}

func newStatusChangedMessage(event order.StatusChangeEvent) statusChangedMessage {
	return statusChangedMessage{
		Type:            messageTypeStatusChanged,
		OrderID:         event.OrderID.String(),
		OrderNumber:     event.OrderNumber,
		PreviousStatus:  event.Previous.String(),
		NewStatus:       event.New.String(),
		StatusUpdatedAt: event.OccurredAt,
	}
}
