package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vendora/vendora-commerce-service/internal/auth"
	"github.com/vendora/vendora-commerce-service/internal/inventory"
	"github.com/vendora/vendora-commerce-service/internal/inventory/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/response"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) GetVariantInventory(w http.ResponseWriter, r *http.Request) {
	variantID := chi.URLParam(r, "variantID")

	inv, err := h.uc.GetVariantInventory(r.Context(), variantID)
	if err != nil {
		h.logger.Error("get variant inventory", zap.String("variant_id", variantID), zap.Error(err))
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, inv)
}

type adjustRequest struct {
	Delta         int    `json:"delta"`
	Reason        string `json:"reason"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
}

func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	variantID := chi.URLParam(r, "variantID")

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	inv, err := h.uc.Adjust(r.Context(), &dto.AdjustStockInput{
		StoreID:       auth.GetStoreID(r.Context()),
		VariantID:     variantID,
		Delta:         req.Delta,
		Reason:        req.Reason,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		ActorID:       auth.GetUserID(r.Context()),
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("adjust inventory", zap.String("variant_id", variantID), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, inv)
}

type setRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

func (h *InventoryHandler) Set(w http.ResponseWriter, r *http.Request) {
	variantID := chi.URLParam(r, "variantID")

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	inv, err := h.uc.Set(r.Context(), &dto.SetStockInput{
		StoreID:   auth.GetStoreID(r.Context()),
		VariantID: variantID,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		ActorID:   auth.GetUserID(r.Context()),
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("set inventory", zap.String("variant_id", variantID), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	items, total, err := h.uc.ListLowStock(r.Context(), auth.GetStoreID(r.Context()), page, pageSize)
	if err != nil {
		h.logger.Error("list low stock", zap.Error(err))
		response.Err(w, err)
		return
	}
	response.Paginated(w, http.StatusOK, items, total)
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	filters := &dto.MovementFilters{
		StoreID:      auth.GetStoreID(r.Context()),
		VariantID:    r.URL.Query().Get("variant_id"),
		MovementType: r.URL.Query().Get("movement_type"),
		Page:         page,
		PageSize:     pageSize,
	}

	items, total, err := h.uc.ListMovements(r.Context(), filters)
	if err != nil {
		h.logger.Error("list movements", zap.Error(err))
		response.Err(w, err)
		return
	}
	response.Paginated(w, http.StatusOK, items, total)
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
