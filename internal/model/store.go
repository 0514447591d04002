package model

// Store carries denormalized counters maintained by the stats aggregator.
// The counters are a cache over COUNT/SUM queries, never the source of truth.
type Store struct {
	BaseModel
	OwnerID     string  `db:"owner_id" json:"owner_id"`
	Name        string  `db:"name" json:"name"`
	Slug        string  `db:"slug" json:"slug"`
	Description *string `db:"description" json:"description"`
	LogoURL     *string `db:"logo_url" json:"logo_url"`
	IsActive    bool    `db:"is_active" json:"is_active"`

	// Reactive counters (see internal/stats).
	ProductCount  int     `db:"product_count" json:"product_count"`
	FollowerCount int     `db:"follower_count" json:"follower_count"`
	LikeCount     int     `db:"like_count" json:"like_count"`
	OrderCount    int     `db:"order_count" json:"order_count"`
	TotalRevenue  float64 `db:"total_revenue" json:"total_revenue"`
}

// StoreStats is the counter slice of a store row, returned by recalculation.
type StoreStats struct {
	StoreID       string  `db:"store_id" json:"store_id"`
	ProductCount  int     `db:"product_count" json:"product_count"`
	FollowerCount int     `db:"follower_count" json:"follower_count"`
	LikeCount     int     `db:"like_count" json:"like_count"`
	OrderCount    int     `db:"order_count" json:"order_count"`
	TotalRevenue  float64 `db:"total_revenue" json:"total_revenue"`
}
