package engagement

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/model"
)

type Repository interface {
	// InsertEvent appends one activity row for the ranking engine.
	InsertEvent(ctx context.Context, e *model.ProductEvent) error

	// Likes/follows are toggles: inserts report whether a row was actually
	// created, deletes whether one was removed, so counters move by exactly
	// one per real state change.
	InsertLike(ctx context.Context, l *model.Like) (bool, error)
	DeleteLike(ctx context.Context, userID string, target model.LikeTarget, targetID string) (bool, error)
	InsertFollow(ctx context.Context, f *model.StoreFollow) (bool, error)
	DeleteFollow(ctx context.Context, userID, storeID string) (bool, error)

	UpsertReview(ctx context.Context, r *model.Review) error
	ListReviews(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int, error)

	// GetProductStore resolves the owning store of a product.
	GetProductStore(ctx context.Context, productID string) (string, error)
}
