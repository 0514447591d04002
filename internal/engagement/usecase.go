package engagement

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/engagement/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
)

type UseCase interface {
	RecordView(ctx context.Context, productID, userID string) error
	RecordSale(ctx context.Context, productID, storeID string, quantity int) error

	LikeProduct(ctx context.Context, userID, productID string) error
	UnlikeProduct(ctx context.Context, userID, productID string) error
	LikeStore(ctx context.Context, userID, storeID string) error
	UnlikeStore(ctx context.Context, userID, storeID string) error
	FollowStore(ctx context.Context, userID, storeID string) error
	UnfollowStore(ctx context.Context, userID, storeID string) error

	AddReview(ctx context.Context, input *dto.AddReviewInput) (*model.Review, error)
	ListReviews(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int, error)
}

// CounterRecorder is the slice of the stats aggregator engagement needs.
type CounterRecorder interface {
	OnLikeChange(ctx context.Context, target model.LikeTarget, targetID string, delta int) error
	OnFollowChange(ctx context.Context, storeID string, delta int) error
}
