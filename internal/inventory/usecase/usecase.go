package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendora/vendora-commerce-service/internal/inventory"
	"github.com/vendora/vendora-commerce-service/internal/inventory/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetQuantity(ctx context.Context, variantID string) (int, error) {
	inv, err := uc.repo.GetByVariant(ctx, variantID)
	if err != nil {
		return 0, err
	}
	if inv == nil {
		return 0, nil
	}
	return inv.Quantity, nil
}

func (uc *inventoryUseCase) GetVariantInventory(ctx context.Context, variantID string) (*model.Inventory, error) {
	inv, err := uc.repo.GetByVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		// Zero object rather than nil; absent row means zero stock.
		return &model.Inventory{
			VariantID: variantID,
			Quantity:  0,
		}, nil
	}
	return inv, nil
}

func (uc *inventoryUseCase) Adjust(ctx context.Context, input *dto.AdjustStockInput) (*model.Inventory, error) {
	if input.VariantID == "" {
		return nil, apperror.Validation("variant_id is required")
	}
	if input.Delta == 0 {
		return nil, apperror.Validation("delta must be non-zero")
	}

	movementType := "adjustment"
	if input.ReferenceType == "sale" {
		movementType = "sale"
	} else if input.ReferenceType == "return" {
		movementType = "return"
	}

	movement := &model.InventoryMovement{
		ID:           uuid.New().String(),
		MovementType: movementType,
		Notes:        input.Reason,
	}
	if input.ReferenceType != "" {
		movement.ReferenceType = &input.ReferenceType
	}
	if input.ReferenceID != "" {
		movement.ReferenceID = &input.ReferenceID
	}
	if input.ActorID != "" {
		movement.CreatedBy = &input.ActorID
	}

	inv, err := uc.repo.AdjustWithMovement(ctx, input, movement)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("inventory adjusted",
		zap.String("variant_id", input.VariantID),
		zap.Int("delta", input.Delta),
		zap.Int("quantity", inv.Quantity),
	)
	return inv, nil
}

func (uc *inventoryUseCase) Set(ctx context.Context, input *dto.SetStockInput) (*model.Inventory, error) {
	if input.VariantID == "" {
		return nil, apperror.Validation("variant_id is required")
	}
	if input.Quantity < 0 {
		return nil, apperror.Validation("quantity must not be negative")
	}

	movement := &model.InventoryMovement{
		ID:           uuid.New().String(),
		MovementType: "recount",
		Notes:        input.Reason,
	}
	if input.ActorID != "" {
		movement.CreatedBy = &input.ActorID
	}

	return uc.repo.SetWithMovement(ctx, input, movement)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, storeID string, page, pageSize int) ([]model.Inventory, int, error) {
	return uc.repo.FindAll(ctx, &dto.InventoryFilters{
		StoreID:  storeID,
		LowStock: true,
		Page:     page,
		PageSize: pageSize,
	})
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}
