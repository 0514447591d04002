package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora-commerce-service/internal/inventory/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
)

// fakeInventoryRepo mimics the transactional repo: adjustments that would
// drive stock negative fail atomically.
type fakeInventoryRepo struct {
	stock     map[string]int
	movements []*model.InventoryMovement
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{stock: map[string]int{}}
}

func (f *fakeInventoryRepo) GetByVariant(_ context.Context, variantID string) (*model.Inventory, error) {
	qty, ok := f.stock[variantID]
	if !ok {
		return nil, nil
	}
	return &model.Inventory{VariantID: variantID, Quantity: qty}, nil
}

func (f *fakeInventoryRepo) BatchGetByVariants(_ context.Context, _ []string) ([]model.Inventory, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) FindAll(_ context.Context, _ *dto.InventoryFilters) ([]model.Inventory, int, error) {
	return nil, 0, nil
}

func (f *fakeInventoryRepo) AdjustWithMovement(_ context.Context, input *dto.AdjustStockInput, movement *model.InventoryMovement) (*model.Inventory, error) {
	before := f.stock[input.VariantID]
	after := before + input.Delta
	if after < 0 {
		return nil, fmt.Errorf("variant %s has %d, requested %d: %w",
			input.VariantID, before, -input.Delta, apperror.ErrInsufficientStock)
	}
	f.stock[input.VariantID] = after
	movement.QuantityBefore = before
	movement.QuantityAfter = after
	movement.QuantityChange = input.Delta
	f.movements = append(f.movements, movement)
	return &model.Inventory{VariantID: input.VariantID, Quantity: after}, nil
}

func (f *fakeInventoryRepo) SetWithMovement(_ context.Context, input *dto.SetStockInput, movement *model.InventoryMovement) (*model.Inventory, error) {
	before := f.stock[input.VariantID]
	f.stock[input.VariantID] = input.Quantity
	movement.QuantityBefore = before
	movement.QuantityAfter = input.Quantity
	movement.QuantityChange = input.Quantity - before
	f.movements = append(f.movements, movement)
	return &model.Inventory{VariantID: input.VariantID, Quantity: input.Quantity}, nil
}

func (f *fakeInventoryRepo) ListMovements(_ context.Context, _ *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	return nil, 0, nil
}

func TestAdjustValidation(t *testing.T) {
	uc := NewInventoryUseCase(newFakeInventoryRepo(), logger.NewNop())
	ctx := context.Background()

	_, err := uc.Adjust(ctx, &dto.AdjustStockInput{Delta: 5})
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))

	_, err = uc.Adjust(ctx, &dto.AdjustStockInput{VariantID: "v1", Delta: 0})
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))
}

func TestAdjustMovesStockAndRecordsMovement(t *testing.T) {
	repo := newFakeInventoryRepo()
	uc := NewInventoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	inv, err := uc.Adjust(ctx, &dto.AdjustStockInput{
		VariantID:     "v1",
		Delta:         10,
		Reason:        "initial stock",
		ReferenceType: "manual_adjustment",
		ReferenceID:   "restock-1",
		ActorID:       "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Quantity)

	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.Equal(t, "adjustment", m.MovementType)
	assert.Equal(t, 0, m.QuantityBefore)
	assert.Equal(t, 10, m.QuantityAfter)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, "restock-1", *m.ReferenceID)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, "user-1", *m.CreatedBy)
}

func TestAdjustMapsMovementType(t *testing.T) {
	repo := newFakeInventoryRepo()
	uc := NewInventoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	repo.stock["v1"] = 100

	_, err := uc.Adjust(ctx, &dto.AdjustStockInput{VariantID: "v1", Delta: -2, ReferenceType: "sale"})
	require.NoError(t, err)
	_, err = uc.Adjust(ctx, &dto.AdjustStockInput{VariantID: "v1", Delta: 2, ReferenceType: "return"})
	require.NoError(t, err)
	_, err = uc.Adjust(ctx, &dto.AdjustStockInput{VariantID: "v1", Delta: 1})
	require.NoError(t, err)

	require.Len(t, repo.movements, 3)
	assert.Equal(t, "sale", repo.movements[0].MovementType)
	assert.Equal(t, "return", repo.movements[1].MovementType)
	assert.Equal(t, "adjustment", repo.movements[2].MovementType)
}

func TestAdjustRejectsOverdraw(t *testing.T) {
	repo := newFakeInventoryRepo()
	uc := NewInventoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	repo.stock["v1"] = 3

	_, err := uc.Adjust(ctx, &dto.AdjustStockInput{VariantID: "v1", Delta: -5, ReferenceType: "sale"})
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 3, repo.stock["v1"], "failed adjustment must not move stock")
	assert.Empty(t, repo.movements, "failed adjustment must not leave a movement")
}

func TestSetStock(t *testing.T) {
	repo := newFakeInventoryRepo()
	uc := NewInventoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	repo.stock["v1"] = 7

	inv, err := uc.Set(ctx, &dto.SetStockInput{VariantID: "v1", Quantity: 20, Reason: "stocktake"})
	require.NoError(t, err)
	assert.Equal(t, 20, inv.Quantity)

	require.Len(t, repo.movements, 1)
	assert.Equal(t, "recount", repo.movements[0].MovementType)
	assert.Equal(t, 13, repo.movements[0].QuantityChange)

	_, err = uc.Set(ctx, &dto.SetStockInput{VariantID: "v1", Quantity: -1})
	assert.Equal(t, "VALIDATION", apperror.CodeOf(err))
}

func TestGetQuantityAbsentRowMeansZero(t *testing.T) {
	uc := NewInventoryUseCase(newFakeInventoryRepo(), logger.NewNop())
	ctx := context.Background()

	qty, err := uc.GetQuantity(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, 0, qty)

	inv, err := uc.GetVariantInventory(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Quantity)
	assert.Equal(t, "unknown", inv.VariantID)
}
