package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/stats"
	"github.com/vendora/vendora-commerce-service/pkg/cache"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"go.uber.org/zap"
)

const recalcLockTTL = 10 * time.Second

type statsUseCase struct {
	repo   stats.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewStatsUseCase(repo stats.Repository, cache *cache.RedisClient, log logger.ZapLogger) stats.UseCase {
	return &statsUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *statsUseCase) OnLikeChange(ctx context.Context, target model.LikeTarget, targetID string, delta int) error {
	switch target {
	case model.LikeTargetProduct:
		return uc.repo.IncrementProductLikeCount(ctx, targetID, delta)
	case model.LikeTargetStore:
		return uc.repo.IncrementStoreLikeCount(ctx, targetID, delta)
	default:
		return fmt.Errorf("unknown like target %q", target)
	}
}

func (uc *statsUseCase) OnFollowChange(ctx context.Context, storeID string, delta int) error {
	return uc.repo.IncrementFollowerCount(ctx, storeID, delta)
}

func (uc *statsUseCase) OnProductCountChange(ctx context.Context, storeID string, delta int) error {
	return uc.repo.IncrementProductCount(ctx, storeID, delta)
}

// OnOrderStatusChange is a state diff: only the edges into and out of shipped
// move the counters, every other transition is a no-op. A round trip through
// shipped nets to zero.
func (uc *statsUseCase) OnOrderStatusChange(ctx context.Context, storeID string, prev, next model.OrderStatus, totalAmount float64) error {
	enteredShipped := prev != model.OrderStatusShipped && next == model.OrderStatusShipped
	leftShipped := prev == model.OrderStatusShipped && next != model.OrderStatusShipped

	switch {
	case enteredShipped:
		return uc.repo.IncrementOrderStats(ctx, storeID, 1, totalAmount)
	case leftShipped:
		return uc.repo.IncrementOrderStats(ctx, storeID, -1, -totalAmount)
	default:
		return nil
	}
}

func (uc *statsUseCase) GetStats(ctx context.Context, storeID string) (*model.StoreStats, error) {
	return uc.repo.GetStats(ctx, storeID)
}

// RecalculateStats rebuilds the counters from base rows. A short redis lock
// keeps concurrent recalculations of the same store from interleaving; the
// operation itself is idempotent, the lock just avoids wasted work.
func (uc *statsUseCase) RecalculateStats(ctx context.Context, storeID string) (*model.StoreStats, error) {
	lockKey := "lock:stats:recalc:" + storeID
	lockValue := uuid.New().String()

	acquired, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, recalcLockTTL)
	if err != nil {
		uc.logger.Error("failed to acquire recalc lock", zap.String("store_id", storeID), zap.Error(err))
		// Redis being down should not block drift recovery.
		acquired = true
	}
	if !acquired {
		return nil, fmt.Errorf("stats recalculation already in progress for store %s", storeID)
	}
	defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)

	recalculated, err := uc.repo.Recalculate(ctx, storeID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("store stats recalculated",
		zap.String("store_id", storeID),
		zap.Int("order_count", recalculated.OrderCount),
		zap.Float64("total_revenue", recalculated.TotalRevenue),
	)
	return recalculated, nil
}
