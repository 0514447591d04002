package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vendora/vendora-commerce-service/internal/ranking"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/response"
	"go.uber.org/zap"
)

type RankingHandler struct {
	uc     ranking.UseCase
	logger logger.ZapLogger
}

func NewRankingHandler(uc ranking.UseCase, log logger.ZapLogger) *RankingHandler {
	return &RankingHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *RankingHandler) Trending(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	limit := queryInt(r, "limit", 10)
	windowDays := queryInt(r, "window_days", 7)

	products, err := h.uc.GetTrendingProducts(r.Context(), storeID, limit, windowDays)
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("trending products", zap.String("store_id", storeID), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *RankingHandler) TopByViews(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	products, err := h.uc.GetTopProductsByViews(r.Context(), storeID, queryInt(r, "limit", 10))
	if err != nil {
		h.logger.Error("top products by views", zap.String("store_id", storeID), zap.Error(err))
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *RankingHandler) TopBySales(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	products, err := h.uc.GetTopProductsBySales(r.Context(), storeID, queryInt(r, "limit", 10))
	if err != nil {
		h.logger.Error("top products by sales", zap.String("store_id", storeID), zap.Error(err))
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *RankingHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	products, err := h.uc.GetTopRatedProducts(r.Context(), storeID, queryInt(r, "limit", 10))
	if err != nil {
		h.logger.Error("top rated products", zap.String("store_id", storeID), zap.Error(err))
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

func queryInt(r *http.Request, name string, fallback int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil && v > 0 {
		return v
	}
	return fallback
}
