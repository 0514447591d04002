package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PGRepository) InsertEvent(ctx context.Context, e *model.ProductEvent) error {
	query := `
        INSERT INTO product_events (id, product_id, store_id, user_id, event_type, quantity, created_at)
        VALUES (:id, :product_id, :store_id, :user_id, :event_type, :quantity, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, e)
	return err
}

func (r *PGRepository) InsertLike(ctx context.Context, l *model.Like) (bool, error) {
	query := `
        INSERT INTO likes (id, user_id, target_type, target_id, created_at)
        VALUES (:id, :user_id, :target_type, :target_id, :created_at)
        ON CONFLICT (user_id, target_type, target_id) DO NOTHING
    `
	res, err := r.DB.NamedExecContext(ctx, query, l)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (r *PGRepository) DeleteLike(ctx context.Context, userID string, target model.LikeTarget, targetID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3`,
		userID, target, targetID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (r *PGRepository) InsertFollow(ctx context.Context, f *model.StoreFollow) (bool, error) {
	query := `
        INSERT INTO store_follows (id, user_id, store_id, created_at)
        VALUES (:id, :user_id, :store_id, :created_at)
        ON CONFLICT (user_id, store_id) DO NOTHING
    `
	res, err := r.DB.NamedExecContext(ctx, query, f)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (r *PGRepository) DeleteFollow(ctx context.Context, userID, storeID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM store_follows WHERE user_id = $1 AND store_id = $2`, userID, storeID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

func (r *PGRepository) UpsertReview(ctx context.Context, rv *model.Review) error {
	query := `
        INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at, updated_at)
        VALUES (:id, :product_id, :user_id, :rating, :comment, :created_at, :updated_at)
        ON CONFLICT (product_id, user_id)
        DO UPDATE SET rating = EXCLUDED.rating,
                      comment = EXCLUDED.comment,
                      updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, rv)
	return err
}

func (r *PGRepository) ListReviews(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM reviews WHERE product_id = $1`, productID); err != nil {
		return nil, 0, err
	}

	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var reviews []model.Review
	query := `SELECT * FROM reviews WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.DB.SelectContext(ctx, &reviews, query, productID, pageSize, offset); err != nil {
		return nil, 0, err
	}
	return reviews, count, nil
}

func (r *PGRepository) GetProductStore(ctx context.Context, productID string) (string, error) {
	var storeID string
	err := r.DB.GetContext(ctx, &storeID, `SELECT store_id FROM products WHERE id = $1`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("product %s: %w", productID, apperror.ErrNotFound)
		}
		return "", err
	}
	return storeID, nil
}
