package model

type Product struct {
	BaseModel
	StoreID     string           `db:"store_id" json:"store_id"`
	CategoryID  *string          `db:"category_id" json:"category_id"` // Nullable
	SKU         string           `db:"sku" json:"sku"`
	Barcode     *string          `db:"barcode" json:"barcode"` // Nullable
	Name        string           `db:"name" json:"name"`
	Description *string          `db:"description" json:"description"`
	BasePrice   float64          `db:"base_price" json:"base_price"`
	ImageURL    *string          `db:"image_url" json:"image_url"`
	LikeCount   int              `db:"like_count" json:"like_count"`
	IsActive    bool             `db:"is_active" json:"is_active"`
	Variants    []ProductVariant `db:"-" json:"variants,omitempty"` // Not in DB table directly
	Category    *Category        `db:"-" json:"category,omitempty"` // Joined data
}

type ProductVariant struct {
	BaseModel
	ProductID       string  `db:"product_id" json:"product_id"`
	SKU             string  `db:"sku" json:"sku"`
	Barcode         *string `db:"barcode" json:"barcode"`
	VariantName     string  `db:"variant_name" json:"variant_name"`
	PriceAdjustment float64 `db:"price_adjustment" json:"price_adjustment"`
	IsActive        bool    `db:"is_active" json:"is_active"`
}

// Price returns the effective unit price of the variant given its product.
func (v *ProductVariant) Price(p *Product) float64 {
	return p.BasePrice + v.PriceAdjustment
}
