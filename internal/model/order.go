package model

import "encoding/json"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"
)

// allowedTransitions is the order state machine. cancelled and returned are
// terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusReturned},
	OrderStatusDelivered: {OrderStatusReturned},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	BaseModel
	UserID       string          `db:"user_id" json:"user_id"`
	StoreID      string          `db:"store_id" json:"store_id"`
	Status       OrderStatus     `db:"status" json:"status"`
	TotalAmount  float64         `db:"total_amount" json:"total_amount"`
	ShippingInfo json.RawMessage `db:"shipping_info" json:"shipping_info"`
	BillingInfo  json.RawMessage `db:"billing_info" json:"billing_info"`
	Items        []OrderItem     `db:"-" json:"items,omitempty"`
}

// OrderItem is an immutable snapshot of one purchased line. Name, sku and
// price are captured at order time and never follow later product edits.
type OrderItem struct {
	ID          string  `db:"id" json:"id"`
	OrderID     string  `db:"order_id" json:"order_id"`
	ProductID   *string `db:"product_id" json:"product_id"`
	VariantID   *string `db:"variant_id" json:"variant_id"`
	ProductName string  `db:"product_name" json:"product_name"`
	SKU         string  `db:"sku" json:"sku"`
	UnitPrice   float64 `db:"unit_price" json:"unit_price"`
	Quantity    int     `db:"quantity" json:"quantity"`
	LineTotal   float64 `db:"line_total" json:"line_total"`
}
