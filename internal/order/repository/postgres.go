package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vendora/vendora-commerce-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// CreateWithItems writes the header first, then every item, inside one
// transaction. Item writes failing roll the header back too.
func (r *PGRepository) CreateWithItems(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	headerQuery := `
        INSERT INTO orders (id, user_id, store_id, status, total_amount, shipping_info, billing_info, created_at, updated_at)
        VALUES (:id, :user_id, :store_id, :status, :total_amount, :shipping_info, :billing_info, :created_at, :updated_at)
    `
	if _, err := tx.NamedExecContext(ctx, headerQuery, o); err != nil {
		return fmt.Errorf("failed to insert order header: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (id, order_id, product_id, variant_id, product_name, sku, unit_price, quantity, line_total)
        VALUES (:id, :order_id, :product_id, :variant_id, :product_name, :sku, :unit_price, :quantity, :line_total)
    `
	for i := range o.Items {
		if _, err := tx.NamedExecContext(ctx, itemQuery, &o.Items[i]); err != nil {
			return fmt.Errorf("failed to insert order item %s: %w", o.Items[i].SKU, err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) loadItems(ctx context.Context, o *model.Order) error {
	return r.DB.SelectContext(ctx, &o.Items,
		`SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`, o.ID)
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int, error) {
	return r.findBy(ctx, "user_id", userID, page, pageSize)
}

func (r *PGRepository) FindByStore(ctx context.Context, storeID string, page, pageSize int) ([]model.Order, int, error) {
	return r.findBy(ctx, "store_id", storeID, page, pageSize)
}

func (r *PGRepository) findBy(ctx context.Context, column, value string, page, pageSize int) ([]model.Order, int, error) {
	var count int
	countQuery := fmt.Sprintf("SELECT count(*) FROM orders WHERE %s = $1", column)
	if err := r.DB.GetContext(ctx, &count, countQuery, value); err != nil {
		return nil, 0, err
	}

	offset := 0
	if pageSize > 0 {
		offset = (page - 1) * pageSize
	} else {
		pageSize = 20
	}

	var orders []model.Order
	query := fmt.Sprintf(
		"SELECT * FROM orders WHERE %s = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3", column)
	if err := r.DB.SelectContext(ctx, &orders, query, value, pageSize, offset); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}

	return orders, count, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
