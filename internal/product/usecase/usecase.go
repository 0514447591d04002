package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/product"
	"github.com/vendora/vendora-commerce-service/internal/product/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/cache"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/search"
	"go.uber.org/zap"
)

const productIndex = "products"

const productMapping = `{
	"mappings": {
		"properties": {
			"store_id": { "type": "keyword" },
			"name": { "type": "text" },
			"description": { "type": "text" },
			"sku": { "type": "keyword" },
			"barcode": { "type": "keyword" },
			"base_price": { "type": "double" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo     product.Repository
	cache    *cache.RedisClient
	es       *search.Client
	counters product.CatalogCounter
	logger   logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, counters product.CatalogCounter, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		cache:    cache,
		es:       es,
		counters: counters,
		logger:   log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.StoreID == "" || input.SKU == "" || input.Name == "" {
		return nil, apperror.Validation("store_id, sku and name are required")
	}
	if input.BasePrice <= 0 {
		return nil, apperror.Validation("base_price must be positive")
	}

	unique, err := uc.repo.IsSKUUnique(ctx, input.StoreID, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, fmt.Errorf("sku %s: %w", input.SKU, apperror.ErrConflict)
	}

	if input.Barcode != "" {
		unique, err := uc.repo.IsBarcodeUnique(ctx, input.StoreID, input.Barcode, "")
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, fmt.Errorf("barcode %s: %w", input.Barcode, apperror.ErrConflict)
		}
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		StoreID:   input.StoreID,
		SKU:       input.SKU,
		Name:      input.Name,
		BasePrice: input.BasePrice,
		IsActive:  true,
	}
	if input.CategoryID != "" {
		catID := input.CategoryID
		p.CategoryID = &catID
	}
	if input.Barcode != "" {
		bc := input.Barcode
		p.Barcode = &bc
	}
	if input.Description != "" {
		p.Description = &input.Description
	}
	if input.ImageURL != "" {
		p.ImageURL = &input.ImageURL
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Reactive store counter; drift here is recoverable via recalculation.
	if err := uc.counters.OnProductCountChange(ctx, p.StoreID, 1); err != nil {
		uc.logger.Error("product count update failed", zap.String("store_id", p.StoreID), zap.Error(err))
	}

	go uc.invalidateProductCache(context.Background(), p.StoreID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	// Lazy index creation keeps the service usable against a fresh cluster.
	_ = uc.es.CreateIndex(ctx, productIndex, productMapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFoundf("product %s not found", id)
	}

	variants, err := uc.repo.FindVariantsByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Variants = variants

	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := uc.generateCacheKey(filters)

	if uc.cache != nil {
		if val, ok, err := uc.cache.Get(ctx, cacheKey); err == nil && ok {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	// Rich search goes through Elasticsearch when available; the ids come
	// back in relevance order and the rows from Postgres.
	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchViaElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil {
		cached := struct {
			Products []model.Product
			Count    int
		}{Products: products, Count: count}
		if data, err := json.Marshal(cached); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, string(data), 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchViaElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"query_string": map[string]interface{}{
							"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
							"fields": []string{"name^3", "sku", "barcode", "description"},
						},
					},
					{
						"term": map[string]interface{}{
							"store_id": filters.StoreID,
						},
					},
				},
			},
		},
		"from": (page - 1) * filters.PageSize,
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
	}

	ids, err := uc.es.SearchIDs(ctx, productIndex, q)
	if err != nil {
		return nil, 0, err
	}

	products, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	// Restore relevance order lost by the IN query.
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	return ordered, len(ordered), nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) string {
	data, _ := json.Marshal(filters)
	return fmt.Sprintf("products:list:%s:%x", filters.StoreID, md5.Sum(data))
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context, storeID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPrefix(ctx, fmt.Sprintf("products:list:%s:", storeID)); err != nil {
		uc.logger.Warn("product cache invalidation failed", zap.String("store_id", storeID), zap.Error(err))
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFoundf("product %s not found", input.ID)
	}

	if p.SKU != input.SKU {
		unique, err := uc.repo.IsSKUUnique(ctx, p.StoreID, input.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, fmt.Errorf("sku %s: %w", input.SKU, apperror.ErrConflict)
		}
	}

	p.SKU = input.SKU
	p.Name = input.Name
	p.BasePrice = input.BasePrice
	p.IsActive = input.IsActive
	if input.Description != "" {
		p.Description = &input.Description
	} else {
		p.Description = nil
	}
	if input.ImageURL != "" {
		p.ImageURL = &input.ImageURL
	} else {
		p.ImageURL = nil
	}
	if input.CategoryID != "" {
		catID := input.CategoryID
		p.CategoryID = &catID
	} else {
		p.CategoryID = nil
	}
	if input.Barcode != "" {
		bc := input.Barcode
		p.Barcode = &bc
	} else {
		p.Barcode = nil
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), p.StoreID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // Already deleted
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.counters.OnProductCountChange(ctx, p.StoreID, -1); err != nil {
		uc.logger.Error("product count update failed", zap.String("store_id", p.StoreID), zap.Error(err))
	}

	go uc.invalidateProductCache(context.Background(), p.StoreID)
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.String("product_id", id), zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.ProductVariant, error) {
	if input.SKU == "" || input.VariantName == "" {
		return nil, apperror.Validation("sku and variant_name are required")
	}

	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFoundf("product %s not found", input.ProductID)
	}

	now := time.Now()
	v := &model.ProductVariant{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:       input.ProductID,
		SKU:             input.SKU,
		VariantName:     input.VariantName,
		PriceAdjustment: input.PriceAdjustment,
		IsActive:        true,
	}
	if input.Barcode != "" {
		bc := input.Barcode
		v.Barcode = &bc
	}

	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (uc *productUseCase) ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	return uc.repo.FindVariantsByProduct(ctx, productID)
}

func (uc *productUseCase) UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.ProductVariant, error) {
	v, err := uc.repo.FindVariantByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.NotFoundf("variant %s not found", input.ID)
	}

	v.SKU = input.SKU
	v.VariantName = input.VariantName
	v.PriceAdjustment = input.PriceAdjustment
	v.IsActive = input.IsActive
	if input.Barcode != "" {
		bc := input.Barcode
		v.Barcode = &bc
	} else {
		v.Barcode = nil
	}
	v.UpdatedAt = time.Now()

	if err := uc.repo.UpdateVariant(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (uc *productUseCase) DeleteVariant(ctx context.Context, id string) error {
	return uc.repo.DeleteVariant(ctx, id)
}
