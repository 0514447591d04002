package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora-commerce-service/internal/engagement/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
)

type likeKey struct {
	userID   string
	target   model.LikeTarget
	targetID string
}

type fakeEngagementRepo struct {
	productStores map[string]string // productID -> storeID
	likes         map[likeKey]bool
	follows       map[string]bool // userID+storeID
	events        []*model.ProductEvent
	reviews       []*model.Review
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		productStores: map[string]string{"prod-1": "store-1"},
		likes:         map[likeKey]bool{},
		follows:       map[string]bool{},
	}
}

func (f *fakeEngagementRepo) InsertEvent(_ context.Context, e *model.ProductEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEngagementRepo) InsertLike(_ context.Context, l *model.Like) (bool, error) {
	k := likeKey{l.UserID, l.TargetType, l.TargetID}
	if f.likes[k] {
		return false, nil
	}
	f.likes[k] = true
	return true, nil
}

func (f *fakeEngagementRepo) DeleteLike(_ context.Context, userID string, target model.LikeTarget, targetID string) (bool, error) {
	k := likeKey{userID, target, targetID}
	if !f.likes[k] {
		return false, nil
	}
	delete(f.likes, k)
	return true, nil
}

func (f *fakeEngagementRepo) InsertFollow(_ context.Context, fo *model.StoreFollow) (bool, error) {
	k := fo.UserID + "/" + fo.StoreID
	if f.follows[k] {
		return false, nil
	}
	f.follows[k] = true
	return true, nil
}

func (f *fakeEngagementRepo) DeleteFollow(_ context.Context, userID, storeID string) (bool, error) {
	k := userID + "/" + storeID
	if !f.follows[k] {
		return false, nil
	}
	delete(f.follows, k)
	return true, nil
}

func (f *fakeEngagementRepo) UpsertReview(_ context.Context, r *model.Review) error {
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeEngagementRepo) ListReviews(_ context.Context, _ string, _, _ int) ([]model.Review, int, error) {
	return nil, 0, nil
}

func (f *fakeEngagementRepo) GetProductStore(_ context.Context, productID string) (string, error) {
	storeID, ok := f.productStores[productID]
	if !ok {
		return "", apperror.NotFoundf("product %s not found", productID)
	}
	return storeID, nil
}

type counterCall struct {
	kind  string
	id    string
	delta int
}

type fakeCounters struct {
	calls []counterCall
}

func (f *fakeCounters) OnLikeChange(_ context.Context, target model.LikeTarget, targetID string, delta int) error {
	f.calls = append(f.calls, counterCall{string(target), targetID, delta})
	return nil
}

func (f *fakeCounters) OnFollowChange(_ context.Context, storeID string, delta int) error {
	f.calls = append(f.calls, counterCall{"follow", storeID, delta})
	return nil
}

func TestLikeProductIsIdempotent(t *testing.T) {
	repo := newFakeEngagementRepo()
	counters := &fakeCounters{}
	uc := NewEngagementUseCase(repo, counters, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, uc.LikeProduct(ctx, "user-1", "prod-1"))
	require.NoError(t, uc.LikeProduct(ctx, "user-1", "prod-1"))

	// The double like moves the counter exactly once.
	require.Len(t, counters.calls, 1)
	assert.Equal(t, counterCall{"product", "prod-1", 1}, counters.calls[0])

	// And records exactly one like event.
	require.Len(t, repo.events, 1)
	assert.Equal(t, model.ProductEventLike, repo.events[0].EventType)
	assert.Equal(t, "store-1", repo.events[0].StoreID)
}

func TestUnlikeOnlyCountsRealRemovals(t *testing.T) {
	repo := newFakeEngagementRepo()
	counters := &fakeCounters{}
	uc := NewEngagementUseCase(repo, counters, logger.NewNop())
	ctx := context.Background()

	// Unlike without a prior like is a silent no-op.
	require.NoError(t, uc.UnlikeProduct(ctx, "user-1", "prod-1"))
	assert.Empty(t, counters.calls)

	require.NoError(t, uc.LikeProduct(ctx, "user-1", "prod-1"))
	require.NoError(t, uc.UnlikeProduct(ctx, "user-1", "prod-1"))

	require.Len(t, counters.calls, 2)
	assert.Equal(t, counterCall{"product", "prod-1", -1}, counters.calls[1])
}

func TestLikeUnknownProduct(t *testing.T) {
	uc := NewEngagementUseCase(newFakeEngagementRepo(), &fakeCounters{}, logger.NewNop())

	err := uc.LikeProduct(context.Background(), "user-1", "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestFollowToggle(t *testing.T) {
	repo := newFakeEngagementRepo()
	counters := &fakeCounters{}
	uc := NewEngagementUseCase(repo, counters, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, uc.FollowStore(ctx, "user-1", "store-1"))
	require.NoError(t, uc.FollowStore(ctx, "user-1", "store-1"))
	require.NoError(t, uc.UnfollowStore(ctx, "user-1", "store-1"))

	require.Len(t, counters.calls, 2)
	assert.Equal(t, counterCall{"follow", "store-1", 1}, counters.calls[0])
	assert.Equal(t, counterCall{"follow", "store-1", -1}, counters.calls[1])
}

func TestRecordViewAndSale(t *testing.T) {
	repo := newFakeEngagementRepo()
	uc := NewEngagementUseCase(repo, &fakeCounters{}, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, uc.RecordView(ctx, "prod-1", "user-1"))
	require.NoError(t, uc.RecordSale(ctx, "prod-1", "store-1", 3))

	require.Len(t, repo.events, 2)
	assert.Equal(t, model.ProductEventView, repo.events[0].EventType)
	assert.Equal(t, 1, repo.events[0].Quantity)
	assert.Equal(t, model.ProductEventSale, repo.events[1].EventType)
	assert.Equal(t, 3, repo.events[1].Quantity)
	assert.Nil(t, repo.events[1].UserID, "sales carry no user attribution")

	err := uc.RecordSale(ctx, "prod-1", "store-1", 0)
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))
}

func TestAddReview(t *testing.T) {
	repo := newFakeEngagementRepo()
	uc := NewEngagementUseCase(repo, &fakeCounters{}, logger.NewNop())
	ctx := context.Background()

	r, err := uc.AddReview(ctx, &dto.AddReviewInput{ProductID: "prod-1", UserID: "user-1", Rating: 4, Comment: "solid"})
	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating)
	require.NotNil(t, r.Comment)
	assert.Equal(t, "solid", *r.Comment)

	_, err = uc.AddReview(ctx, &dto.AddReviewInput{ProductID: "prod-1", UserID: "user-1", Rating: 0})
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))
	_, err = uc.AddReview(ctx, &dto.AddReviewInput{ProductID: "prod-1", UserID: "user-1", Rating: 6})
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))
	_, err = uc.AddReview(ctx, &dto.AddReviewInput{ProductID: "ghost", UserID: "user-1", Rating: 3})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
