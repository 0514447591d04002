package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vendora/vendora-commerce-service/internal/engagement"
	"github.com/vendora/vendora-commerce-service/internal/engagement/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"go.uber.org/zap"
)

type engagementUseCase struct {
	repo     engagement.Repository
	counters engagement.CounterRecorder
	logger   logger.ZapLogger
}

func NewEngagementUseCase(repo engagement.Repository, counters engagement.CounterRecorder, log logger.ZapLogger) engagement.UseCase {
	return &engagementUseCase{
		repo:     repo,
		counters: counters,
		logger:   log,
	}
}

func (uc *engagementUseCase) RecordView(ctx context.Context, productID, userID string) error {
	if productID == "" {
		return apperror.Validation("product_id is required")
	}

	storeID, err := uc.repo.GetProductStore(ctx, productID)
	if err != nil {
		return err
	}

	return uc.repo.InsertEvent(ctx, uc.newEvent(productID, storeID, userID, model.ProductEventView, 1))
}

// RecordSale is called by the order flow when an order ships.
func (uc *engagementUseCase) RecordSale(ctx context.Context, productID, storeID string, quantity int) error {
	if quantity < 1 {
		return apperror.Validation("quantity must be at least 1")
	}
	return uc.repo.InsertEvent(ctx, uc.newEvent(productID, storeID, "", model.ProductEventSale, quantity))
}

func (uc *engagementUseCase) newEvent(productID, storeID, userID string, eventType model.ProductEventType, quantity int) *model.ProductEvent {
	e := &model.ProductEvent{
		ID:        uuid.New().String(),
		ProductID: productID,
		StoreID:   storeID,
		EventType: eventType,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	if userID != "" {
		e.UserID = &userID
	}
	return e
}

func (uc *engagementUseCase) LikeProduct(ctx context.Context, userID, productID string) error {
	storeID, err := uc.repo.GetProductStore(ctx, productID)
	if err != nil {
		return err
	}

	inserted, err := uc.repo.InsertLike(ctx, &model.Like{
		ID:         uuid.New().String(),
		UserID:     userID,
		TargetType: model.LikeTargetProduct,
		TargetID:   productID,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	if !inserted {
		return nil // already liked, nothing to count
	}

	if err := uc.counters.OnLikeChange(ctx, model.LikeTargetProduct, productID, 1); err != nil {
		uc.logger.Error("like counter update failed", zap.String("product_id", productID), zap.Error(err))
	}
	if err := uc.repo.InsertEvent(ctx, uc.newEvent(productID, storeID, userID, model.ProductEventLike, 1)); err != nil {
		uc.logger.Error("like event insert failed", zap.String("product_id", productID), zap.Error(err))
	}
	return nil
}

func (uc *engagementUseCase) UnlikeProduct(ctx context.Context, userID, productID string) error {
	removed, err := uc.repo.DeleteLike(ctx, userID, model.LikeTargetProduct, productID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	return uc.counters.OnLikeChange(ctx, model.LikeTargetProduct, productID, -1)
}

func (uc *engagementUseCase) LikeStore(ctx context.Context, userID, storeID string) error {
	inserted, err := uc.repo.InsertLike(ctx, &model.Like{
		ID:         uuid.New().String(),
		UserID:     userID,
		TargetType: model.LikeTargetStore,
		TargetID:   storeID,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}
	return uc.counters.OnLikeChange(ctx, model.LikeTargetStore, storeID, 1)
}

func (uc *engagementUseCase) UnlikeStore(ctx context.Context, userID, storeID string) error {
	removed, err := uc.repo.DeleteLike(ctx, userID, model.LikeTargetStore, storeID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	return uc.counters.OnLikeChange(ctx, model.LikeTargetStore, storeID, -1)
}

func (uc *engagementUseCase) FollowStore(ctx context.Context, userID, storeID string) error {
	inserted, err := uc.repo.InsertFollow(ctx, &model.StoreFollow{
		ID:        uuid.New().String(),
		UserID:    userID,
		StoreID:   storeID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}
	return uc.counters.OnFollowChange(ctx, storeID, 1)
}

func (uc *engagementUseCase) UnfollowStore(ctx context.Context, userID, storeID string) error {
	removed, err := uc.repo.DeleteFollow(ctx, userID, storeID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	return uc.counters.OnFollowChange(ctx, storeID, -1)
}

func (uc *engagementUseCase) AddReview(ctx context.Context, input *dto.AddReviewInput) (*model.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperror.Validation("rating must be between 1 and 5")
	}
	if input.ProductID == "" || input.UserID == "" {
		return nil, apperror.Validation("product_id and user_id are required")
	}

	if _, err := uc.repo.GetProductStore(ctx, input.ProductID); err != nil {
		return nil, err
	}

	now := time.Now()
	review := &model.Review{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Comment != "" {
		review.Comment = &input.Comment
	}

	if err := uc.repo.UpsertReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *engagementUseCase) ListReviews(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int, error) {
	return uc.repo.ListReviews(ctx, productID, page, pageSize)
}
