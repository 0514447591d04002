package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vendora/vendora-commerce-service/internal/auth"
	"github.com/vendora/vendora-commerce-service/internal/product"
	"github.com/vendora/vendora-commerce-service/internal/product/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/response"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type productRequest struct {
	CategoryID  string  `json:"category_id"`
	SKU         string  `json:"sku"`
	Barcode     string  `json:"barcode"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"`
	ImageURL    string  `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	p, err := h.uc.CreateProduct(r.Context(), &dto.CreateProductInput{
		StoreID:     auth.GetStoreID(r.Context()),
		CategoryID:  req.CategoryID,
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("create product", zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	p, err := h.uc.GetProduct(r.Context(), id)
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("get product", zap.String("product_id", id), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pagination(r)

	filters := &dto.ProductFilters{
		StoreID:     auth.GetStoreID(r.Context()),
		CategoryID:  q.Get("category_id"),
		SearchQuery: q.Get("q"),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
		Page:        page,
		PageSize:    pageSize,
	}
	if v := q.Get("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			response.Err(w, apperror.Validation("is_active must be a boolean"))
			return
		}
		filters.IsActive = &active
	}

	products, total, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products", zap.Error(err))
		response.Err(w, err)
		return
	}
	response.Paginated(w, http.StatusOK, products, total)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p, err := h.uc.UpdateProduct(r.Context(), &dto.UpdateProductInput{
		ID:          id,
		StoreID:     auth.GetStoreID(r.Context()),
		CategoryID:  req.CategoryID,
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		ImageURL:    req.ImageURL,
		IsActive:    active,
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("update product", zap.String("product_id", id), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	if err := h.uc.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Error("delete product", zap.String("product_id", id), zap.Error(err))
		response.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type variantRequest struct {
	SKU             string  `json:"sku"`
	Barcode         string  `json:"barcode"`
	VariantName     string  `json:"variant_name"`
	PriceAdjustment float64 `json:"price_adjustment"`
	IsActive        *bool   `json:"is_active"`
}

func (h *ProductHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req variantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	v, err := h.uc.AddVariant(r.Context(), &dto.CreateVariantInput{
		ProductID:       productID,
		SKU:             req.SKU,
		Barcode:         req.Barcode,
		VariantName:     req.VariantName,
		PriceAdjustment: req.PriceAdjustment,
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("add variant", zap.String("product_id", productID), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, v)
}

func (h *ProductHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	variants, err := h.uc.ListVariants(r.Context(), productID)
	if err != nil {
		h.logger.Error("list variants", zap.String("product_id", productID), zap.Error(err))
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, variants)
}

func (h *ProductHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "variantID")

	var req variantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	v, err := h.uc.UpdateVariant(r.Context(), &dto.UpdateVariantInput{
		ID:              id,
		SKU:             req.SKU,
		Barcode:         req.Barcode,
		VariantName:     req.VariantName,
		PriceAdjustment: req.PriceAdjustment,
		IsActive:        active,
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("update variant", zap.String("variant_id", id), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, v)
}

func (h *ProductHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "variantID")

	if err := h.uc.DeleteVariant(r.Context(), id); err != nil {
		h.logger.Error("delete variant", zap.String("variant_id", id), zap.Error(err))
		response.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
