package ranking

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/ranking/dto"
)

type UseCase interface {
	GetTrendingProducts(ctx context.Context, storeID string, limit, windowDays int) ([]dto.TrendingProduct, error)
	GetTopProductsByViews(ctx context.Context, storeID string, limit int) ([]dto.MetricProduct, error)
	GetTopProductsBySales(ctx context.Context, storeID string, limit int) ([]dto.MetricProduct, error)
	GetTopRatedProducts(ctx context.Context, storeID string, limit int) ([]dto.RatedProduct, error)
}
