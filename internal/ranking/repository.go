package ranking

import (
	"context"
	"time"

	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/ranking/dto"
)

type Repository interface {
	// CollectActivity returns one row per active product of the store with
	// view/like/sale counts accumulated since the window start.
	CollectActivity(ctx context.Context, storeID string, since time.Time) ([]dto.ProductActivity, error)

	// TopByEvent ranks products of a store by summed event quantity of one
	// event type, descending.
	TopByEvent(ctx context.Context, storeID string, eventType model.ProductEventType, limit int) ([]dto.MetricProduct, error)

	// TopRated ranks by average review rating, ignoring products with fewer
	// than minReviews reviews.
	TopRated(ctx context.Context, storeID string, minReviews, limit int) ([]dto.RatedProduct, error)
}
