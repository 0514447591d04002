package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/ranking"
	"github.com/vendora/vendora-commerce-service/internal/ranking/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/cache"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"go.uber.org/zap"
)

// Scoring constants. Sales weigh heaviest, then likes, then views; the
// recency boost decays linearly to zero at the horizon so that brand-new
// products surface even with no activity yet.
const (
	viewWeight  = 1.0
	likeWeight  = 3.0
	saleWeight  = 5.0
	maxRecencyBoost    = 10.0
	recencyHorizonDays = 90

	minReviewsForRating = 3
	trendingCacheTTL    = time.Minute
)

type rankingUseCase struct {
	repo   ranking.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewRankingUseCase(repo ranking.Repository, cache *cache.RedisClient, log logger.ZapLogger) ranking.UseCase {
	return &rankingUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// score combines windowed activity with the recency boost. A result of
// exactly zero means "no signal at all" and the product is dropped from
// trending.
func score(a dto.ProductActivity, now time.Time) float64 {
	activity := viewWeight*float64(a.RecentViews) +
		likeWeight*float64(a.RecentLikes) +
		saleWeight*float64(a.RecentSales)
	return activity + recencyBoost(a.CreatedAt, now)
}

func recencyBoost(createdAt, now time.Time) float64 {
	ageDays := now.Sub(createdAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	if ageDays >= recencyHorizonDays {
		return 0
	}
	return maxRecencyBoost * (1 - ageDays/recencyHorizonDays)
}

func (uc *rankingUseCase) GetTrendingProducts(ctx context.Context, storeID string, limit, windowDays int) ([]dto.TrendingProduct, error) {
	if storeID == "" {
		return nil, apperror.Validation("store_id is required")
	}
	if limit < 1 {
		limit = 10
	}
	if windowDays < 1 {
		windowDays = 7
	}

	cacheKey := uc.cacheKey("trending", storeID, limit, windowDays)
	if cached, ok := uc.cacheGet(ctx, cacheKey); ok {
		var result []dto.TrendingProduct
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
	}

	now := time.Now()
	since := now.AddDate(0, 0, -windowDays)

	activity, err := uc.repo.CollectActivity(ctx, storeID, since)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TrendingProduct, 0, len(activity))
	for _, a := range activity {
		s := score(a, now)
		if s == 0 {
			continue
		}
		result = append(result, dto.TrendingProduct{ProductActivity: a, Score: s})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}

	uc.cacheSet(ctx, cacheKey, result)
	return result, nil
}

func (uc *rankingUseCase) GetTopProductsByViews(ctx context.Context, storeID string, limit int) ([]dto.MetricProduct, error) {
	if limit < 1 {
		limit = 10
	}
	return uc.repo.TopByEvent(ctx, storeID, model.ProductEventView, limit)
}

func (uc *rankingUseCase) GetTopProductsBySales(ctx context.Context, storeID string, limit int) ([]dto.MetricProduct, error) {
	if limit < 1 {
		limit = 10
	}
	return uc.repo.TopByEvent(ctx, storeID, model.ProductEventSale, limit)
}

func (uc *rankingUseCase) GetTopRatedProducts(ctx context.Context, storeID string, limit int) ([]dto.RatedProduct, error) {
	if limit < 1 {
		limit = 10
	}
	return uc.repo.TopRated(ctx, storeID, minReviewsForRating, limit)
}

func (uc *rankingUseCase) cacheKey(kind, storeID string, params ...int) string {
	raw, _ := json.Marshal(params)
	return fmt.Sprintf("ranking:%s:%s:%x", kind, storeID, md5.Sum(raw))
}

func (uc *rankingUseCase) cacheGet(ctx context.Context, key string) (string, bool) {
	if uc.cache == nil {
		return "", false
	}
	val, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("ranking cache read failed", zap.Error(err))
		return "", false
	}
	return val, ok
}

func (uc *rankingUseCase) cacheSet(ctx context.Context, key string, value interface{}) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, string(raw), trendingCacheTTL); err != nil {
		uc.logger.Warn("ranking cache write failed", zap.Error(err))
	}
}
