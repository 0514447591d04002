package dto

import "encoding/json"

type OrderItemInput struct {
	ProductID   *string `json:"product_id"`
	VariantID   *string `json:"variant_id"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

type CreateOrderInput struct {
	UserID       string
	StoreID      string
	Items        []OrderItemInput
	ShippingInfo json.RawMessage
	BillingInfo  json.RawMessage

	// DeclaredTotal, when set, must match the computed item sum; a mismatch
	// is rejected rather than silently accepted.
	DeclaredTotal *float64
}
