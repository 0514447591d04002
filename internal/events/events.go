package events

import "time"

const TypeOrderCreated = "OrderCreated"

// OrderCreated is published after an order commits and consumed by the
// inventory listener to deduct stock.
type OrderCreated struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID      string             `json:"id"`
	StoreID string             `json:"store_id"`
	UserID  string             `json:"user_id"`
	Items   []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID *string `json:"product_id"`
	VariantID *string `json:"variant_id"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
}
