package product

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error

	IsSKUUnique(ctx context.Context, storeID, sku, excludeID string) (bool, error)
	IsBarcodeUnique(ctx context.Context, storeID, barcode, excludeID string) (bool, error)

	// Variants
	CreateVariant(ctx context.Context, v *model.ProductVariant) error
	FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error)
	FindVariantsByProduct(ctx context.Context, productID string) ([]model.ProductVariant, error)
	UpdateVariant(ctx context.Context, v *model.ProductVariant) error
	DeleteVariant(ctx context.Context, id string) error
}
