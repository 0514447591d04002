package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/ranking/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CollectActivity(ctx context.Context, storeID string, since time.Time) ([]dto.ProductActivity, error) {
	var rows []dto.ProductActivity
	query := `
        SELECT p.id AS product_id,
               p.name,
               p.created_at,
               COALESCE(SUM(CASE WHEN e.event_type = 'view' THEN e.quantity END), 0) AS recent_views,
               COALESCE(SUM(CASE WHEN e.event_type = 'like' THEN e.quantity END), 0) AS recent_likes,
               COALESCE(SUM(CASE WHEN e.event_type = 'sale' THEN e.quantity END), 0) AS recent_sales
        FROM products p
        LEFT JOIN product_events e
               ON e.product_id = p.id AND e.created_at >= $2
        WHERE p.store_id = $1 AND p.is_active
        GROUP BY p.id, p.name, p.created_at
    `
	err := r.DB.SelectContext(ctx, &rows, query, storeID, since)
	return rows, err
}

func (r *PGRepository) TopByEvent(ctx context.Context, storeID string, eventType model.ProductEventType, limit int) ([]dto.MetricProduct, error) {
	var rows []dto.MetricProduct
	query := `
        SELECT p.id AS product_id,
               p.name,
               COALESCE(SUM(e.quantity), 0) AS count
        FROM products p
        JOIN product_events e ON e.product_id = p.id AND e.event_type = $2
        WHERE p.store_id = $1 AND p.is_active
        GROUP BY p.id, p.name
        ORDER BY count DESC, p.created_at DESC
        LIMIT $3
    `
	err := r.DB.SelectContext(ctx, &rows, query, storeID, eventType, limit)
	return rows, err
}

func (r *PGRepository) TopRated(ctx context.Context, storeID string, minReviews, limit int) ([]dto.RatedProduct, error) {
	var rows []dto.RatedProduct
	query := `
        SELECT p.id AS product_id,
               p.name,
               AVG(rv.rating)::float AS avg_rating,
               COUNT(rv.id) AS review_count
        FROM products p
        JOIN reviews rv ON rv.product_id = p.id
        WHERE p.store_id = $1 AND p.is_active
        GROUP BY p.id, p.name
        HAVING COUNT(rv.id) >= $2
        ORDER BY avg_rating DESC, review_count DESC
        LIMIT $3
    `
	err := r.DB.SelectContext(ctx, &rows, query, storeID, minReviews, limit)
	return rows, err
}
