package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	categoryhandler "github.com/vendora/vendora-commerce-service/internal/category/handler"
	engagementhandler "github.com/vendora/vendora-commerce-service/internal/engagement/handler"
	inventoryhandler "github.com/vendora/vendora-commerce-service/internal/inventory/handler"
	"github.com/vendora/vendora-commerce-service/internal/middleware"
	orderhandler "github.com/vendora/vendora-commerce-service/internal/order/handler"
	producthandler "github.com/vendora/vendora-commerce-service/internal/product/handler"
	rankinghandler "github.com/vendora/vendora-commerce-service/internal/ranking/handler"
	statshandler "github.com/vendora/vendora-commerce-service/internal/stats/handler"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
)

// Config holds the handlers wired into the router.
type Config struct {
	Logger     logger.ZapLogger
	Product    *producthandler.ProductHandler
	Category   *categoryhandler.CategoryHandler
	Inventory  *inventoryhandler.InventoryHandler
	Order      *orderhandler.OrderHandler
	Stats      *statshandler.StatsHandler
	Ranking    *rankinghandler.RankingHandler
	Engagement *engagementhandler.EngagementHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Identity)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-User-ID", "X-Store-ID", "X-Role"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", cfg.Product.Create)
			r.Get("/", cfg.Product.List)
			r.Route("/{productID}", func(r chi.Router) {
				r.Get("/", cfg.Product.Get)
				r.Put("/", cfg.Product.Update)
				r.Delete("/", cfg.Product.Delete)

				r.Post("/variants", cfg.Product.AddVariant)
				r.Get("/variants", cfg.Product.ListVariants)

				r.Post("/views", cfg.Engagement.RecordView)
				r.Post("/likes", cfg.Engagement.LikeProduct)
				r.Delete("/likes", cfg.Engagement.UnlikeProduct)
				r.Post("/reviews", cfg.Engagement.AddReview)
				r.Get("/reviews", cfg.Engagement.ListReviews)
			})
		})

		r.Route("/variants/{variantID}", func(r chi.Router) {
			r.Put("/", cfg.Product.UpdateVariant)
			r.Delete("/", cfg.Product.DeleteVariant)

			r.Get("/inventory", cfg.Inventory.GetVariantInventory)
			r.Post("/inventory/adjust", cfg.Inventory.Adjust)
			r.Put("/inventory", cfg.Inventory.Set)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/low-stock", cfg.Inventory.ListLowStock)
			r.Get("/movements", cfg.Inventory.ListMovements)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.Category.Create)
			r.Get("/", cfg.Category.List)
			r.Route("/{categoryID}", func(r chi.Router) {
				r.Get("/", cfg.Category.Get)
				r.Put("/", cfg.Category.Update)
				r.Delete("/", cfg.Category.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", cfg.Order.Create)
			r.Get("/", cfg.Order.ListMine)
			r.Route("/{orderID}", func(r chi.Router) {
				r.Get("/", cfg.Order.Get)
				r.Patch("/status", cfg.Order.UpdateStatus)
			})
		})

		r.Route("/stores/{storeID}", func(r chi.Router) {
			r.Get("/orders", cfg.Order.ListByStore)
			r.Get("/stats", cfg.Stats.Get)
			r.Post("/stats/recalculate", cfg.Stats.Recalculate)

			r.Post("/likes", cfg.Engagement.LikeStore)
			r.Delete("/likes", cfg.Engagement.UnlikeStore)
			r.Post("/follows", cfg.Engagement.FollowStore)
			r.Delete("/follows", cfg.Engagement.UnfollowStore)

			r.Route("/rankings", func(r chi.Router) {
				r.Get("/trending", cfg.Ranking.Trending)
				r.Get("/top-views", cfg.Ranking.TopByViews)
				r.Get("/top-sales", cfg.Ranking.TopBySales)
				r.Get("/top-rated", cfg.Ranking.TopRated)
			})
		})
	})

	return r
}
