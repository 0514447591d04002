package inventory

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/inventory/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
)

type Repository interface {
	// Inventory rows
	GetByVariant(ctx context.Context, variantID string) (*model.Inventory, error)
	BatchGetByVariants(ctx context.Context, variantIDs []string) ([]model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)

	// Core stock operations. Both run one transaction holding a row lock on
	// the variant's inventory row and append a movement before committing.
	AdjustWithMovement(ctx context.Context, input *dto.AdjustStockInput, movement *model.InventoryMovement) (*model.Inventory, error)
	SetWithMovement(ctx context.Context, input *dto.SetStockInput, movement *model.InventoryMovement) (*model.Inventory, error)

	// Movements / Audit
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
