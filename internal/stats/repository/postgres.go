package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) IncrementOrderStats(ctx context.Context, storeID string, orderDelta int, revenueDelta float64) error {
	_, err := r.DB.ExecContext(ctx, `
        UPDATE stores
        SET order_count = order_count + $1,
            total_revenue = total_revenue + $2,
            updated_at = NOW()
        WHERE id = $3
    `, orderDelta, revenueDelta, storeID)
	return err
}

func (r *PGRepository) IncrementProductCount(ctx context.Context, storeID string, delta int) error {
	return r.incrementStoreColumn(ctx, storeID, "product_count", delta)
}

func (r *PGRepository) IncrementFollowerCount(ctx context.Context, storeID string, delta int) error {
	return r.incrementStoreColumn(ctx, storeID, "follower_count", delta)
}

func (r *PGRepository) IncrementStoreLikeCount(ctx context.Context, storeID string, delta int) error {
	return r.incrementStoreColumn(ctx, storeID, "like_count", delta)
}

// incrementStoreColumn relies on the database to apply the delta atomically;
// column names are fixed strings from the methods above, never user input.
func (r *PGRepository) incrementStoreColumn(ctx context.Context, storeID, column string, delta int) error {
	query := `UPDATE stores SET ` + column + ` = ` + column + ` + $1, updated_at = NOW() WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, delta, storeID)
	return err
}

func (r *PGRepository) IncrementProductLikeCount(ctx context.Context, productID string, delta int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE products SET like_count = like_count + $1, updated_at = NOW() WHERE id = $2`,
		delta, productID)
	return err
}

func (r *PGRepository) GetStats(ctx context.Context, storeID string) (*model.StoreStats, error) {
	var stats model.StoreStats
	err := r.DB.GetContext(ctx, &stats, `
        SELECT id AS store_id, product_count, follower_count, like_count, order_count, total_revenue
        FROM stores WHERE id = $1
    `, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundf("store %s not found", storeID)
		}
		return nil, err
	}
	return &stats, nil
}

// Recalculate rebuilds every counter from the base rows in one statement so
// the result is a consistent snapshot. order_count/total_revenue cover orders
// currently in shipped, matching what the reactive edge rules maintain.
func (r *PGRepository) Recalculate(ctx context.Context, storeID string) (*model.StoreStats, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var stats model.StoreStats
	err = tx.GetContext(ctx, &stats, `
        UPDATE stores s
        SET product_count  = (SELECT count(*) FROM products p WHERE p.store_id = s.id),
            follower_count = (SELECT count(*) FROM store_follows f WHERE f.store_id = s.id),
            like_count     = (SELECT count(*) FROM likes l WHERE l.target_type = 'store' AND l.target_id = s.id),
            order_count    = (SELECT count(*) FROM orders o WHERE o.store_id = s.id AND o.status = 'shipped'),
            total_revenue  = COALESCE((SELECT sum(o.total_amount) FROM orders o WHERE o.store_id = s.id AND o.status = 'shipped'), 0),
            updated_at     = NOW()
        WHERE s.id = $1
        RETURNING s.id AS store_id, product_count, follower_count, like_count, order_count, total_revenue
    `, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundf("store %s not found", storeID)
		}
		return nil, err
	}

	// Product like counters for the store's catalog are part of the same
	// drift-recovery pass.
	_, err = tx.ExecContext(ctx, `
        UPDATE products p
        SET like_count = (SELECT count(*) FROM likes l WHERE l.target_type = 'product' AND l.target_id = p.id)
        WHERE p.store_id = $1
    `, storeID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &stats, nil
}
