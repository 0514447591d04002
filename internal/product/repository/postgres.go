package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, store_id, category_id, sku, barcode, name, description,
            base_price, image_url, like_count, is_active, created_at, updated_at
        )
        VALUES (
            :id, :store_id, :category_id, :sku, :barcode, :name, :description,
            :base_price, :image_url, :like_count, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var products []model.Product
	err = r.DB.SelectContext(ctx, &products, query, args...)
	return products, err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.StoreID != "" {
		conditions = append(conditions, "store_id = :store_id")
		args["store_id"] = f.StoreID
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		// Simple ILIKE fallback; Elasticsearch handles the rich path.
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search OR barcode ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	// Whitelisted sort fields only.
	orderBy := "created_at DESC"
	if f.SortBy != "" {
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "base_price"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            sku = :sku,
            barcode = :barcode,
            name = :name,
            description = :description,
            base_price = :base_price,
            image_url = :image_url,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND store_id = :store_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, storeID, sku, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE store_id = $1 AND sku = $2`
	args := []interface{}{storeID, sku}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	err := r.DB.GetContext(ctx, &count, query, args...)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) IsBarcodeUnique(ctx context.Context, storeID, barcode, excludeID string) (bool, error) {
	if barcode == "" {
		return true, nil
	}
	var count int
	query := `SELECT count(*) FROM products WHERE store_id = $1 AND barcode = $2`
	args := []interface{}{storeID, barcode}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	err := r.DB.GetContext(ctx, &count, query, args...)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) CreateVariant(ctx context.Context, v *model.ProductVariant) error {
	query := `
        INSERT INTO product_variants (id, product_id, sku, barcode, variant_name, price_adjustment, is_active, created_at, updated_at)
        VALUES (:id, :product_id, :sku, :barcode, :variant_name, :price_adjustment, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.DB.GetContext(ctx, &v, `SELECT * FROM product_variants WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGRepository) FindVariantsByProduct(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.DB.SelectContext(ctx, &variants,
		`SELECT * FROM product_variants WHERE product_id = $1 ORDER BY created_at ASC`, productID)
	return variants, err
}

func (r *PGRepository) UpdateVariant(ctx context.Context, v *model.ProductVariant) error {
	query := `
        UPDATE product_variants
        SET sku = :sku,
            barcode = :barcode,
            variant_name = :variant_name,
            price_adjustment = :price_adjustment,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) DeleteVariant(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM product_variants WHERE id = $1", id)
	return err
}
