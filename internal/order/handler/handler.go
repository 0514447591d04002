package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vendora/vendora-commerce-service/internal/auth"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/order"
	"github.com/vendora/vendora-commerce-service/internal/order/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/response"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

type createOrderRequest struct {
	StoreID       string               `json:"store_id"`
	Items         []dto.OrderItemInput `json:"items"`
	ShippingInfo  json.RawMessage      `json:"shipping_info"`
	BillingInfo   json.RawMessage      `json:"billing_info"`
	DeclaredTotal *float64             `json:"total_amount"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	o, err := h.uc.CreateOrder(r.Context(), &dto.CreateOrderInput{
		UserID:        auth.GetUserID(r.Context()),
		StoreID:       req.StoreID,
		Items:         req.Items,
		ShippingInfo:  req.ShippingInfo,
		BillingInfo:   req.BillingInfo,
		DeclaredTotal: req.DeclaredTotal,
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("create order", zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")

	o, err := h.uc.GetOrder(r.Context(), id)
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("get order", zap.String("order_id", id), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, o)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	orders, total, err := h.uc.FindByUser(r.Context(), auth.GetUserID(r.Context()), page, pageSize)
	if err != nil {
		h.logger.Error("list user orders", zap.Error(err))
		response.Err(w, err)
		return
	}
	response.Paginated(w, http.StatusOK, orders, total)
}

func (h *OrderHandler) ListByStore(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	storeID := chi.URLParam(r, "storeID")

	orders, total, err := h.uc.FindByStore(r.Context(), storeID, page, pageSize)
	if err != nil {
		h.logger.Error("list store orders", zap.String("store_id", storeID), zap.Error(err))
		response.Err(w, err)
		return
	}
	response.Paginated(w, http.StatusOK, orders, total)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	o, err := h.uc.UpdateStatus(r.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("update order status", zap.String("order_id", id), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, o)
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
