package order

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/model"
)

type Repository interface {
	// CreateWithItems persists the order header and every line item in one
	// transaction; on any failure nothing is visible afterwards.
	CreateWithItems(ctx context.Context, o *model.Order) error

	// FindByID returns the order with its items, or (nil, nil) when absent.
	FindByID(ctx context.Context, id string) (*model.Order, error)

	FindByUser(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int, error)
	FindByStore(ctx context.Context, storeID string, page, pageSize int) ([]model.Order, int, error)

	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}
