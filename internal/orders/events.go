package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"` // "guest" when unauthenticated
	Total   int64  `json:"total"`
}

type OrderStatusChangedPayload struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Status  Status `json:"status"`
}
