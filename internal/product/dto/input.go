package dto

type CreateProductInput struct {
	StoreID     string
	CategoryID  string // Optional
	SKU         string
	Barcode     string
	Name        string
	Description string
	BasePrice   float64
	ImageURL    string
}

type UpdateProductInput struct {
	ID          string
	StoreID     string
	CategoryID  string
	SKU         string
	Barcode     string
	Name        string
	Description string
	BasePrice   float64
	ImageURL    string
	IsActive    bool
}

type CreateVariantInput struct {
	ProductID       string
	SKU             string
	Barcode         string
	VariantName     string
	PriceAdjustment float64
}

type UpdateVariantInput struct {
	ID              string
	SKU             string
	Barcode         string
	VariantName     string
	PriceAdjustment float64
	IsActive        bool
}
