package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vendora/vendora-commerce-service/internal/auth"
	"github.com/vendora/vendora-commerce-service/internal/engagement"
	"github.com/vendora/vendora-commerce-service/internal/engagement/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"github.com/vendora/vendora-commerce-service/pkg/response"
	"go.uber.org/zap"
)

type EngagementHandler struct {
	uc     engagement.UseCase
	logger logger.ZapLogger
}

func NewEngagementHandler(uc engagement.UseCase, log logger.ZapLogger) *EngagementHandler {
	return &EngagementHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *EngagementHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	err := h.uc.RecordView(r.Context(), productID, auth.GetUserID(r.Context()))
	h.respond(w, err, "record view", productID)
}

func (h *EngagementHandler) LikeProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	err := h.uc.LikeProduct(r.Context(), auth.GetUserID(r.Context()), productID)
	h.respond(w, err, "like product", productID)
}

func (h *EngagementHandler) UnlikeProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	err := h.uc.UnlikeProduct(r.Context(), auth.GetUserID(r.Context()), productID)
	h.respond(w, err, "unlike product", productID)
}

func (h *EngagementHandler) LikeStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	err := h.uc.LikeStore(r.Context(), auth.GetUserID(r.Context()), storeID)
	h.respond(w, err, "like store", storeID)
}

func (h *EngagementHandler) UnlikeStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	err := h.uc.UnlikeStore(r.Context(), auth.GetUserID(r.Context()), storeID)
	h.respond(w, err, "unlike store", storeID)
}

func (h *EngagementHandler) FollowStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	err := h.uc.FollowStore(r.Context(), auth.GetUserID(r.Context()), storeID)
	h.respond(w, err, "follow store", storeID)
}

func (h *EngagementHandler) UnfollowStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	err := h.uc.UnfollowStore(r.Context(), auth.GetUserID(r.Context()), storeID)
	h.respond(w, err, "unfollow store", storeID)
}

type addReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *EngagementHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, apperror.Validation("invalid request body"))
		return
	}

	review, err := h.uc.AddReview(r.Context(), &dto.AddReviewInput{
		ProductID: productID,
		UserID:    auth.GetUserID(r.Context()),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error("add review", zap.String("product_id", productID), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, review)
}

func (h *EngagementHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reviews, total, err := h.uc.ListReviews(r.Context(), productID, page, pageSize)
	if err != nil {
		h.logger.Error("list reviews", zap.String("product_id", productID), zap.Error(err))
		response.Err(w, err)
		return
	}
	response.Paginated(w, http.StatusOK, reviews, total)
}

func (h *EngagementHandler) respond(w http.ResponseWriter, err error, action, id string) {
	if err != nil {
		if apperror.HTTPStatus(err) == http.StatusInternalServerError {
			h.logger.Error(action, zap.String("id", id), zap.Error(err))
		}
		response.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
