package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
)

type fakeStatsRepo struct {
	orderCount   int
	totalRevenue float64
	productCount int
	followers    int
	storeLikes   int
	productLikes map[string]int
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{productLikes: map[string]int{}}
}

func (f *fakeStatsRepo) IncrementOrderStats(_ context.Context, _ string, orderDelta int, revenueDelta float64) error {
	f.orderCount += orderDelta
	f.totalRevenue += revenueDelta
	return nil
}

func (f *fakeStatsRepo) IncrementProductCount(_ context.Context, _ string, delta int) error {
	f.productCount += delta
	return nil
}

func (f *fakeStatsRepo) IncrementFollowerCount(_ context.Context, _ string, delta int) error {
	f.followers += delta
	return nil
}

func (f *fakeStatsRepo) IncrementStoreLikeCount(_ context.Context, _ string, delta int) error {
	f.storeLikes += delta
	return nil
}

func (f *fakeStatsRepo) IncrementProductLikeCount(_ context.Context, productID string, delta int) error {
	f.productLikes[productID] += delta
	return nil
}

func (f *fakeStatsRepo) GetStats(_ context.Context, storeID string) (*model.StoreStats, error) {
	return &model.StoreStats{
		StoreID:       storeID,
		OrderCount:    f.orderCount,
		TotalRevenue:  f.totalRevenue,
		ProductCount:  f.productCount,
		FollowerCount: f.followers,
		LikeCount:     f.storeLikes,
	}, nil
}

func (f *fakeStatsRepo) Recalculate(_ context.Context, storeID string) (*model.StoreStats, error) {
	return f.GetStats(context.Background(), storeID)
}

func TestOnOrderStatusChangeEdges(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name        string
		prev, next  model.OrderStatus
		wantOrders  int
		wantRevenue float64
	}{
		{"pending to shipped counts", model.OrderStatusPending, model.OrderStatusShipped, 1, 50},
		{"shipped to returned reverses", model.OrderStatusShipped, model.OrderStatusReturned, -1, -50},
		{"shipped to delivered keeps counters", model.OrderStatusShipped, model.OrderStatusDelivered, 0, 0},
		{"pending to cancelled is a no-op", model.OrderStatusPending, model.OrderStatusCancelled, 0, 0},
		{"delivered to returned is a no-op", model.OrderStatusDelivered, model.OrderStatusReturned, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newFakeStatsRepo()
			uc := NewStatsUseCase(repo, nil, logger.NewNop())

			require.NoError(t, uc.OnOrderStatusChange(ctx, "store-1", c.prev, c.next, 50))
			assert.Equal(t, c.wantOrders, repo.orderCount)
			assert.Equal(t, c.wantRevenue, repo.totalRevenue)
		})
	}
}

func TestOrderRoundTripNetsToZero(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStatsRepo()
	uc := NewStatsUseCase(repo, nil, logger.NewNop())

	require.NoError(t, uc.OnOrderStatusChange(ctx, "store-1", model.OrderStatusPending, model.OrderStatusShipped, 120))
	require.NoError(t, uc.OnOrderStatusChange(ctx, "store-1", model.OrderStatusShipped, model.OrderStatusReturned, 120))

	assert.Equal(t, 0, repo.orderCount)
	assert.Equal(t, 0.0, repo.totalRevenue)
}

func TestOnLikeChangeDispatch(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStatsRepo()
	uc := NewStatsUseCase(repo, nil, logger.NewNop())

	require.NoError(t, uc.OnLikeChange(ctx, model.LikeTargetProduct, "prod-1", 1))
	require.NoError(t, uc.OnLikeChange(ctx, model.LikeTargetProduct, "prod-1", 1))
	require.NoError(t, uc.OnLikeChange(ctx, model.LikeTargetProduct, "prod-1", -1))
	require.NoError(t, uc.OnLikeChange(ctx, model.LikeTargetStore, "store-1", 1))

	assert.Equal(t, 1, repo.productLikes["prod-1"])
	assert.Equal(t, 1, repo.storeLikes)

	assert.Error(t, uc.OnLikeChange(ctx, model.LikeTarget("page"), "x", 1))
}

func TestFollowAndProductCounters(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStatsRepo()
	uc := NewStatsUseCase(repo, nil, logger.NewNop())

	require.NoError(t, uc.OnFollowChange(ctx, "store-1", 1))
	require.NoError(t, uc.OnProductCountChange(ctx, "store-1", 1))
	require.NoError(t, uc.OnProductCountChange(ctx, "store-1", -1))

	assert.Equal(t, 1, repo.followers)
	assert.Equal(t, 0, repo.productCount)
}
