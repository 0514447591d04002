package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vendora/vendora-commerce-service/internal/stats"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/response"
	"go.uber.org/zap"
)

type StatsHandler struct {
	uc     stats.UseCase
	logger logger.ZapLogger
}

func NewStatsHandler(uc stats.UseCase, log logger.ZapLogger) *StatsHandler {
	return &StatsHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	s, err := h.uc.GetStats(r.Context(), storeID)
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("get store stats", zap.String("store_id", storeID), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, s)
}

func (h *StatsHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	s, err := h.uc.RecalculateStats(r.Context(), storeID)
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("recalculate store stats", zap.String("store_id", storeID), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, s)
}
