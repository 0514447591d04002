package stats

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/model"
)

type UseCase interface {
	// Reactive rules, invoked by the owning usecases on entity lifecycle
	// events.
	OnLikeChange(ctx context.Context, target model.LikeTarget, targetID string, delta int) error
	OnFollowChange(ctx context.Context, storeID string, delta int) error
	OnProductCountChange(ctx context.Context, storeID string, delta int) error
	OnOrderStatusChange(ctx context.Context, storeID string, prev, next model.OrderStatus, totalAmount float64) error

	GetStats(ctx context.Context, storeID string) (*model.StoreStats, error)

	// RecalculateStats is the drift-recovery path.
	RecalculateStats(ctx context.Context, storeID string) (*model.StoreStats, error)
}
