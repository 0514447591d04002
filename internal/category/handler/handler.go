package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vendora/vendora-commerce-service/internal/auth"
	"github.com/vendora/vendora-commerce-service/internal/category"
	"github.com/vendora/vendora-commerce-service/internal/category/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/response"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

type categoryRequest struct {
	ParentID    *string `json:"parent_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	cat, err := h.uc.CreateCategory(r.Context(), &dto.CreateCategoryInput{
		StoreID:     auth.GetStoreID(r.Context()),
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("create category", zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryID")

	cat, err := h.uc.GetCategory(r.Context(), id)
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("get category", zap.String("category_id", id), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := &dto.CategoryFilters{
		StoreID: auth.GetStoreID(r.Context()),
	}
	if v, ok := q["parent_id"]; ok && len(v) > 0 {
		parentID := v[0]
		filters.ParentID = &parentID
	}
	if v := q.Get("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			response.Err(w, apperror.Validation("is_active must be a boolean"))
			return
		}
		filters.IsActive = &active
	}
	if v := q.Get("tree"); v != "" {
		filters.AsTree, _ = strconv.ParseBool(v)
	}
	if !filters.AsTree {
		filters.Page, filters.PageSize = pagination(r)
	}

	categories, total, err := h.uc.ListCategories(r.Context(), filters)
	if err != nil {
		h.logger.Error("list categories", zap.Error(err))
		response.Err(w, err)
		return
	}
	response.Paginated(w, http.StatusOK, categories, total)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryID")

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	cat, err := h.uc.UpdateCategory(r.Context(), &dto.UpdateCategoryInput{
		ID:          id,
		StoreID:     auth.GetStoreID(r.Context()),
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
		IsActive:    active,
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("update category", zap.String("category_id", id), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryID")

	if err := h.uc.DeleteCategory(r.Context(), id); err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("delete category", zap.String("category_id", id), zap.Error(err))
		}
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
