package model

import "time"

type LikeTarget string

const (
	LikeTargetProduct LikeTarget = "product"
	LikeTargetStore   LikeTarget = "store"
)

// Like is one user's like of one product or store. One row per
// (user, target); toggled, never duplicated.
type Like struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	TargetType LikeTarget `db:"target_type" json:"target_type"`
	TargetID   string     `db:"target_id" json:"target_id"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// StoreFollow is one user following one store.
type StoreFollow struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	StoreID   string    `db:"store_id" json:"store_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ProductEventType string

const (
	ProductEventView ProductEventType = "view"
	ProductEventLike ProductEventType = "like"
	ProductEventSale ProductEventType = "sale"
)

// ProductEvent is the raw activity record the ranking engine aggregates.
// Append-only; quantity is 1 except for sale events, which carry units sold.
type ProductEvent struct {
	ID        string           `db:"id" json:"id"`
	ProductID string           `db:"product_id" json:"product_id"`
	StoreID   string           `db:"store_id" json:"store_id"`
	UserID    *string          `db:"user_id" json:"user_id"`
	EventType ProductEventType `db:"event_type" json:"event_type"`
	Quantity  int              `db:"quantity" json:"quantity"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// Review is one user's rating of one product; upserted, one per (user, product).
type Review struct {
	ID        string    `db:"id" json:"id"`
	ProductID string    `db:"product_id" json:"product_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"` // 1..5
	Comment   *string   `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
