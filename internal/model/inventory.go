package model

import "time"

// Inventory holds the stock counter for exactly one variant. quantity is
// never allowed below zero; the repository enforces the bound under a row
// lock.
type Inventory struct {
	ID              string     `db:"id" json:"id"`
	StoreID         string     `db:"store_id" json:"store_id"`
	VariantID       string     `db:"variant_id" json:"variant_id"`
	Quantity        int        `db:"quantity" json:"quantity"`
	ReorderPoint    int        `db:"reorder_point" json:"reorder_point"`
	LastRestockedAt *time.Time `db:"last_restocked_at" json:"last_restocked_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// InventoryMovement is an append-only audit row, one per stock mutation.
type InventoryMovement struct {
	ID             string    `db:"id" json:"id"`
	StoreID        string    `db:"store_id" json:"store_id"`
	VariantID      string    `db:"variant_id" json:"variant_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"` // 'adjustment', 'sale', 'recount', 'return'
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int       `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedBy      *string   `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
