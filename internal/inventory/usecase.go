package inventory

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/inventory/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
)

type UseCase interface {
	GetQuantity(ctx context.Context, variantID string) (int, error)
	GetVariantInventory(ctx context.Context, variantID string) (*model.Inventory, error)
	Adjust(ctx context.Context, input *dto.AdjustStockInput) (*model.Inventory, error)
	Set(ctx context.Context, input *dto.SetStockInput) (*model.Inventory, error)
	ListLowStock(ctx context.Context, storeID string, page, pageSize int) ([]model.Inventory, int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
