package order

import (
	"context"

	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/order/dto"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	FindByUser(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int, error)
	FindByStore(ctx context.Context, storeID string, page, pageSize int) ([]model.Order, int, error)
	UpdateStatus(ctx context.Context, id string, next model.OrderStatus) (*model.Order, error)
	CancelOrder(ctx context.Context, id, reason string) error
}

// EventPublisher publishes domain events after commit. Satisfied by
// broker.KafkaProducer.
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// StatsRecorder receives order status edges; the aggregator decides which
// edges matter.
type StatsRecorder interface {
	OnOrderStatusChange(ctx context.Context, storeID string, prev, next model.OrderStatus, totalAmount float64) error
}

// SaleRecorder feeds the ranking engine's activity log when an order ships.
type SaleRecorder interface {
	RecordSale(ctx context.Context, productID, storeID string, quantity int) error
}
