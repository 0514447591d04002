package dto

type AdjustStockInput struct {
	StoreID       string
	VariantID     string
	Delta         int
	Reason        string
	ReferenceType string // 'manual_adjustment', 'sale', 'return'
	ReferenceID   string
	ActorID       string
}

type SetStockInput struct {
	StoreID   string
	VariantID string
	Quantity  int
	Reason    string
	ActorID   string
}
