package product

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.ProductVariant, error)
	ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error)
	UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.ProductVariant, error)
	DeleteVariant(ctx context.Context, id string) error
}

// CatalogCounter is the slice of the stats aggregator the catalog needs:
// store product_count follows creates and deletes.
type CatalogCounter interface {
	OnProductCountChange(ctx context.Context, storeID string, delta int) error
}
