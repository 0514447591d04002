package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vendora/vendora-commerce-service/internal/inventory/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByVariant(ctx context.Context, variantID string) (*model.Inventory, error) {
	var inv model.Inventory
	query := `SELECT * FROM inventory WHERE variant_id = $1`
	err := r.DB.GetContext(ctx, &inv, query, variantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Caller decides how to treat a missing row
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) BatchGetByVariants(ctx context.Context, variantIDs []string) ([]model.Inventory, error) {
	if len(variantIDs) == 0 {
		return []model.Inventory{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM inventory WHERE variant_id IN (?)`, variantIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var items []model.Inventory
	err = r.DB.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, int, error) {
	var items []model.Inventory
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.StoreID != "" {
		conditions = append(conditions, "store_id = :store_id")
		args["store_id"] = f.StoreID
	}
	if f.LowStock {
		conditions = append(conditions, "quantity <= reorder_point AND reorder_point > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory" + whereClause
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

	query := "SELECT * FROM inventory" + whereClause + " ORDER BY updated_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

// AdjustWithMovement applies a delta to one variant's stock under a row lock.
// SELECT ... FOR UPDATE serializes concurrent adjustments of the same variant;
// other variants are untouched. A delta that would take quantity below zero
// aborts with ErrInsufficientStock and nothing is written.
func (r *PGRepository) AdjustWithMovement(ctx context.Context, input *dto.AdjustStockInput, movement *model.InventoryMovement) (*model.Inventory, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()

	var inv model.Inventory
	err = tx.GetContext(ctx, &inv, `SELECT * FROM inventory WHERE variant_id = $1 FOR UPDATE`, input.VariantID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		// Missing row means quantity 0.
		if input.Delta < 0 {
			return nil, fmt.Errorf("variant %s: %w", input.VariantID, apperror.ErrInsufficientStock)
		}
		inv = model.Inventory{
			ID:        uuid.New().String(),
			StoreID:   input.StoreID,
			VariantID: input.VariantID,
			Quantity:  0,
		}
		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO inventory (id, store_id, variant_id, quantity, reorder_point, last_restocked_at, updated_at)
            VALUES (:id, :store_id, :variant_id, :quantity, :reorder_point, :last_restocked_at, :updated_at)
        `, map[string]interface{}{
			"id":                inv.ID,
			"store_id":          inv.StoreID,
			"variant_id":        inv.VariantID,
			"quantity":          0,
			"reorder_point":     0,
			"last_restocked_at": nil,
			"updated_at":        now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create inventory row: %w", err)
		}
	}

	before := inv.Quantity
	after := before + input.Delta
	if after < 0 {
		return nil, fmt.Errorf("variant %s has %d, requested %d: %w",
			input.VariantID, before, -input.Delta, apperror.ErrInsufficientStock)
	}

	inv.Quantity = after
	inv.UpdatedAt = now
	if input.Delta > 0 {
		inv.LastRestockedAt = &now
	}

	_, err = tx.ExecContext(ctx, `
        UPDATE inventory SET quantity = $1, last_restocked_at = COALESCE($2, last_restocked_at), updated_at = $3
        WHERE variant_id = $4
    `, after, inv.LastRestockedAt, now, input.VariantID)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	movement.StoreID = inv.StoreID
	movement.VariantID = inv.VariantID
	movement.QuantityChange = input.Delta
	movement.QuantityBefore = before
	movement.QuantityAfter = after
	movement.CreatedAt = now

	if err := insertMovement(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// SetWithMovement overwrites the stock level absolutely, creating the row if
// absent. The row lock keeps a concurrent Adjust from interleaving.
func (r *PGRepository) SetWithMovement(ctx context.Context, input *dto.SetStockInput, movement *model.InventoryMovement) (*model.Inventory, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	before := 0

	var inv model.Inventory
	err = tx.GetContext(ctx, &inv, `SELECT * FROM inventory WHERE variant_id = $1 FOR UPDATE`, input.VariantID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		inv = model.Inventory{
			ID:        uuid.New().String(),
			StoreID:   input.StoreID,
			VariantID: input.VariantID,
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO inventory (id, store_id, variant_id, quantity, reorder_point, last_restocked_at, updated_at)
            VALUES ($1, $2, $3, 0, 0, NULL, $4)
        `, inv.ID, inv.StoreID, inv.VariantID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to create inventory row: %w", err)
		}
	case err != nil:
		return nil, err
	default:
		before = inv.Quantity
	}

	inv.Quantity = input.Quantity
	inv.UpdatedAt = now
	if input.Quantity > before {
		inv.LastRestockedAt = &now
	}

	_, err = tx.ExecContext(ctx, `
        UPDATE inventory SET quantity = $1, last_restocked_at = COALESCE($2, last_restocked_at), updated_at = $3
        WHERE variant_id = $4
    `, inv.Quantity, inv.LastRestockedAt, now, input.VariantID)
	if err != nil {
		return nil, fmt.Errorf("failed to set inventory: %w", err)
	}

	movement.StoreID = inv.StoreID
	movement.VariantID = inv.VariantID
	movement.QuantityChange = input.Quantity - before
	movement.QuantityBefore = before
	movement.QuantityAfter = input.Quantity
	movement.CreatedAt = now

	if err := insertMovement(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &inv, nil
}

func insertMovement(ctx context.Context, tx *sqlx.Tx, m *model.InventoryMovement) error {
	query := `
        INSERT INTO inventory_movements (
            id, store_id, variant_id, movement_type, quantity_change,
            quantity_before, quantity_after, reference_type, reference_id,
            notes, created_by, created_at
        )
        VALUES (
            :id, :store_id, :variant_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reference_type, :reference_id,
            :notes, :created_by, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	return nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	var items []model.InventoryMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.StoreID != "" {
		conditions = append(conditions, "store_id = :store_id")
		args["store_id"] = f.StoreID
	}
	if f.VariantID != "" {
		conditions = append(conditions, "variant_id = :variant_id")
		args["variant_id"] = f.VariantID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_movements" + whereClause
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

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
