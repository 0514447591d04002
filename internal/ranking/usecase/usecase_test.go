package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/ranking/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
)

type fakeRankingRepo struct {
	activity []dto.ProductActivity
	since    time.Time

	topByEventCalls []model.ProductEventType
	topRatedMin     int
}

func (f *fakeRankingRepo) CollectActivity(_ context.Context, _ string, since time.Time) ([]dto.ProductActivity, error) {
	f.since = since
	return f.activity, nil
}

func (f *fakeRankingRepo) TopByEvent(_ context.Context, _ string, eventType model.ProductEventType, _ int) ([]dto.MetricProduct, error) {
	f.topByEventCalls = append(f.topByEventCalls, eventType)
	return nil, nil
}

func (f *fakeRankingRepo) TopRated(_ context.Context, _ string, minReviews, _ int) ([]dto.RatedProduct, error) {
	f.topRatedMin = minReviews
	return nil, nil
}

func activity(id string, ageDays, views, likes, sales int) dto.ProductActivity {
	return dto.ProductActivity{
		ProductID:   id,
		Name:        id,
		CreatedAt:   time.Now().AddDate(0, 0, -ageDays),
		RecentViews: views,
		RecentLikes: likes,
		RecentSales: sales,
	}
}

func TestScoreWeights(t *testing.T) {
	now := time.Now()
	old := now.AddDate(0, 0, -recencyHorizonDays)

	a := dto.ProductActivity{CreatedAt: old, RecentViews: 10, RecentLikes: 2, RecentSales: 3}
	// 10*1 + 2*3 + 3*5, no recency boost at the horizon.
	assert.InDelta(t, 31.0, score(a, now), 1e-9)
}

func TestRecencyBoost(t *testing.T) {
	now := time.Now()

	assert.InDelta(t, maxRecencyBoost, recencyBoost(now, now), 1e-9)
	assert.InDelta(t, maxRecencyBoost/2, recencyBoost(now.AddDate(0, 0, -recencyHorizonDays/2), now), 1e-6)
	assert.Zero(t, recencyBoost(now.AddDate(0, 0, -recencyHorizonDays), now))
	assert.Zero(t, recencyBoost(now.AddDate(0, 0, -100), now))

	// Clock skew must not produce a boost beyond the maximum.
	assert.InDelta(t, maxRecencyBoost, recencyBoost(now.Add(time.Hour), now), 1e-9)
}

func TestTrendingIncludesFreshZeroActivityProducts(t *testing.T) {
	repo := &fakeRankingRepo{activity: []dto.ProductActivity{
		activity("fresh-no-activity", 1, 0, 0, 0),
		activity("stale-no-activity", 100, 0, 0, 0),
	}}
	uc := NewRankingUseCase(repo, nil, logger.NewNop())

	result, err := uc.GetTrendingProducts(context.Background(), "store-1", 10, 7)
	require.NoError(t, err)

	require.Len(t, result, 1, "a zero-score product carries no signal and is dropped")
	assert.Equal(t, "fresh-no-activity", result[0].ProductID)
	assert.Greater(t, result[0].Score, 0.0)
}

func TestTrendingOrdersByScoreDescending(t *testing.T) {
	repo := &fakeRankingRepo{activity: []dto.ProductActivity{
		activity("few-views", 200, 5, 0, 0),  // 5
		activity("seller", 200, 0, 0, 10),    // 50
		activity("liked", 200, 0, 5, 0),      // 15
	}}
	uc := NewRankingUseCase(repo, nil, logger.NewNop())

	result, err := uc.GetTrendingProducts(context.Background(), "store-1", 10, 7)
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, "seller", result[0].ProductID)
	assert.Equal(t, "liked", result[1].ProductID)
	assert.Equal(t, "few-views", result[2].ProductID)
}

func TestTrendingTruncatesToLimit(t *testing.T) {
	repo := &fakeRankingRepo{activity: []dto.ProductActivity{
		activity("a", 200, 30, 0, 0),
		activity("b", 200, 20, 0, 0),
		activity("c", 200, 10, 0, 0),
	}}
	uc := NewRankingUseCase(repo, nil, logger.NewNop())

	result, err := uc.GetTrendingProducts(context.Background(), "store-1", 2, 7)
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, "a", result[0].ProductID)
	assert.Equal(t, "b", result[1].ProductID)
}

func TestTrendingDefaultsAndValidation(t *testing.T) {
	repo := &fakeRankingRepo{}
	uc := NewRankingUseCase(repo, nil, logger.NewNop())
	ctx := context.Background()

	_, err := uc.GetTrendingProducts(ctx, "", 10, 7)
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))

	_, err = uc.GetTrendingProducts(ctx, "store-1", 0, 0)
	require.NoError(t, err)

	// Default window of 7 days.
	wantSince := time.Now().AddDate(0, 0, -7)
	assert.WithinDuration(t, wantSince, repo.since, time.Minute)
}

func TestTopListsDelegate(t *testing.T) {
	repo := &fakeRankingRepo{}
	uc := NewRankingUseCase(repo, nil, logger.NewNop())
	ctx := context.Background()

	_, err := uc.GetTopProductsByViews(ctx, "store-1", 5)
	require.NoError(t, err)
	_, err = uc.GetTopProductsBySales(ctx, "store-1", 5)
	require.NoError(t, err)
	assert.Equal(t, []model.ProductEventType{model.ProductEventView, model.ProductEventSale}, repo.topByEventCalls)

	_, err = uc.GetTopRatedProducts(ctx, "store-1", 5)
	require.NoError(t, err)
	assert.Equal(t, minReviewsForRating, repo.topRatedMin)
}
