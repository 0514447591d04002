package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/vendora/vendora-commerce-service/internal/events"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/internal/order"
	"github.com/vendora/vendora-commerce-service/internal/order/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"go.uber.org/zap"
)

// totalEpsilon is the tolerance when comparing a caller-declared total to the
// computed item sum. Half a cent: anything beyond is a real discrepancy.
const totalEpsilon = 0.005

type orderUseCase struct {
	repo      order.Repository
	publisher order.EventPublisher
	stats     order.StatsRecorder
	sales     order.SaleRecorder
	logger    logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, publisher order.EventPublisher, stats order.StatsRecorder, sales order.SaleRecorder, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		publisher: publisher,
		stats:     stats,
		sales:     sales,
		logger:    log,
	}
}

func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if input.UserID == "" {
		return nil, apperror.Validation("user_id is required")
	}
	if input.StoreID == "" {
		return nil, apperror.Validation("store_id is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.Validation("order must contain at least one item")
	}
	for i, item := range input.Items {
		if item.UnitPrice <= 0 {
			return nil, apperror.Validation("item %d: unit_price must be positive", i)
		}
		if item.Quantity < 1 {
			return nil, apperror.Validation("item %d: quantity must be at least 1", i)
		}
		if item.ProductName == "" || item.SKU == "" {
			return nil, apperror.Validation("item %d: product_name and sku are required", i)
		}
	}

	computedTotal := 0.0
	for _, item := range input.Items {
		computedTotal += item.UnitPrice * float64(item.Quantity)
	}

	if input.DeclaredTotal != nil && math.Abs(*input.DeclaredTotal-computedTotal) > totalEpsilon {
		return nil, fmt.Errorf("declared %.2f, computed %.2f: %w",
			*input.DeclaredTotal, computedTotal, apperror.ErrTotalMismatch)
	}

	now := time.Now()
	o := &model.Order{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       input.UserID,
		StoreID:      input.StoreID,
		Status:       model.OrderStatusPending,
		TotalAmount:  computedTotal,
		ShippingInfo: input.ShippingInfo,
		BillingInfo:  input.BillingInfo,
	}
	if o.ShippingInfo == nil {
		o.ShippingInfo = json.RawMessage(`{}`)
	}
	if o.BillingInfo == nil {
		o.BillingInfo = json.RawMessage(`{}`)
	}

	for _, item := range input.Items {
		o.Items = append(o.Items, model.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.UnitPrice * float64(item.Quantity),
		})
	}

	if err := uc.repo.CreateWithItems(ctx, o); err != nil {
		uc.logger.Error("order persistence failed", zap.String("order_id", o.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperror.ErrOrderCreationFailed, err)
	}

	uc.publishOrderCreated(ctx, o)

	return o, nil
}

func (uc *orderUseCase) publishOrderCreated(ctx context.Context, o *model.Order) {
	event := events.OrderCreated{
		EventID:   uuid.New().String(),
		EventType: events.TypeOrderCreated,
		Timestamp: time.Now(),
		Payload: events.OrderPayload{
			ID:      o.ID,
			StoreID: o.StoreID,
			UserID:  o.UserID,
		},
	}
	for _, item := range o.Items {
		event.Payload.Items = append(event.Payload.Items, events.OrderItemPayload{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
		})
	}

	value, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("marshal OrderCreated", zap.String("order_id", o.ID), zap.Error(err))
		return
	}

	// The order is already committed; a publish failure leaves stock
	// undeducted until the event is replayed, so it is loud in the logs.
	if err := uc.publisher.Publish(ctx, []byte(o.ID), value); err != nil {
		uc.logger.Error("publish OrderCreated", zap.String("order_id", o.ID), zap.Error(err))
	}
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFoundf("order %s not found", id)
	}
	return o, nil
}

func (uc *orderUseCase) FindByUser(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int, error) {
	return uc.repo.FindByUser(ctx, userID, page, pageSize)
}

func (uc *orderUseCase) FindByStore(ctx context.Context, storeID string, page, pageSize int) ([]model.Order, int, error) {
	return uc.repo.FindByStore(ctx, storeID, page, pageSize)
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id string, next model.OrderStatus) (*model.Order, error) {
	if !next.Valid() {
		return nil, apperror.Validation("unknown status %q", next)
	}

	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := o.Status
	if prev == next {
		return o, nil
	}
	if !prev.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s -> %s: %w", prev, next, apperror.ErrInvalidTransition)
	}

	if err := uc.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	o.Status = next

	// The aggregator only reacts to edges into and out of shipped.
	if err := uc.stats.OnOrderStatusChange(ctx, o.StoreID, prev, next, o.TotalAmount); err != nil {
		uc.logger.Error("store stats update failed",
			zap.String("order_id", id),
			zap.String("store_id", o.StoreID),
			zap.Error(err),
		)
	}

	if next == model.OrderStatusShipped {
		uc.recordSales(ctx, o)
	}

	return o, nil
}

func (uc *orderUseCase) recordSales(ctx context.Context, o *model.Order) {
	for _, item := range o.Items {
		if item.ProductID == nil {
			continue
		}
		if err := uc.sales.RecordSale(ctx, *item.ProductID, o.StoreID, item.Quantity); err != nil {
			uc.logger.Error("record sale event",
				zap.String("order_id", o.ID),
				zap.String("product_id", *item.ProductID),
				zap.Error(err),
			)
		}
	}
}

func (uc *orderUseCase) CancelOrder(ctx context.Context, id, reason string) error {
	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if o.Status == model.OrderStatusCancelled {
		return nil
	}
	if !o.Status.CanTransitionTo(model.OrderStatusCancelled) {
		return fmt.Errorf("%s -> cancelled: %w", o.Status, apperror.ErrInvalidTransition)
	}

	if err := uc.repo.UpdateStatus(ctx, id, model.OrderStatusCancelled); err != nil {
		return err
	}

	uc.logger.Info("order cancelled",
		zap.String("order_id", id),
		zap.String("reason", reason),
	)
	return nil
}
