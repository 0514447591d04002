package stats

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/model"
)

// Repository mutates store counters with single atomic SQL increments; the
// application never does read-modify-write on a counter.
type Repository interface {
	IncrementOrderStats(ctx context.Context, storeID string, orderDelta int, revenueDelta float64) error
	IncrementProductCount(ctx context.Context, storeID string, delta int) error
	IncrementFollowerCount(ctx context.Context, storeID string, delta int) error
	IncrementStoreLikeCount(ctx context.Context, storeID string, delta int) error
	IncrementProductLikeCount(ctx context.Context, productID string, delta int) error

	GetStats(ctx context.Context, storeID string) (*model.StoreStats, error)

	// Recalculate rebuilds every counter from COUNT/SUM over base rows.
	// Idempotent; the reactive counters are only a cache over this truth.
	Recalculate(ctx context.Context, storeID string) (*model.StoreStats, error)
}
