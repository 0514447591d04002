package dto

import "time"

// ProductActivity is the raw windowed counts one product accumulated,
// straight from the aggregate query.
type ProductActivity struct {
	ProductID   string    `db:"product_id" json:"product_id"`
	Name        string    `db:"name" json:"name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	RecentViews int       `db:"recent_views" json:"recent_views"`
	RecentLikes int       `db:"recent_likes" json:"recent_likes"`
	RecentSales int       `db:"recent_sales" json:"recent_sales"`
}

// TrendingProduct is activity plus its computed score.
type TrendingProduct struct {
	ProductActivity
	Score float64 `json:"score"`
}

// MetricProduct is a single-metric ranking row.
type MetricProduct struct {
	ProductID string `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Count     int    `db:"count" json:"count"`
}

// RatedProduct is a row of the top-rated ranking.
type RatedProduct struct {
	ProductID   string  `db:"product_id" json:"product_id"`
	Name        string  `db:"name" json:"name"`
	AvgRating   float64 `db:"avg_rating" json:"avg_rating"`
	ReviewCount int     `db:"review_count" json:"review_count"`
}
