package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vendora/vendora-commerce-service/internal/events"
	"github.com/vendora/vendora-commerce-service/internal/inventory"
	"github.com/vendora/vendora-commerce-service/internal/inventory/dto"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/broker"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
	"go.uber.org/zap"
)

// OrderCanceller is the compensation hook: when stock cannot cover a
// committed order, the order is cancelled rather than oversold.
type OrderCanceller interface {
	CancelOrder(ctx context.Context, orderID, reason string) error
}

type InventoryListener struct {
	consumer  *broker.KafkaConsumer
	uc        inventory.UseCase
	canceller OrderCanceller
	logger    logger.ZapLogger
}

func NewInventoryListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, canceller OrderCanceller, log logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer:  consumer,
		uc:        uc,
		canceller: canceller,
		logger:    log,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting inventory Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping inventory Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event events.OrderCreated
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != events.TypeOrderCreated {
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	// Deductions already applied for this event; on an oversell every one of
	// them must be reversed, otherwise the cancelled order keeps the stock.
	var deducted []events.OrderItemPayload

	for _, item := range event.Payload.Items {
		if item.VariantID == nil || item.Quantity <= 0 {
			continue
		}

		input := &dto.AdjustStockInput{
			StoreID:       event.Payload.StoreID,
			VariantID:     *item.VariantID,
			Delta:         -item.Quantity, // Deduction
			Reason:        "Order sale",
			ReferenceID:   event.Payload.ID,
			ReferenceType: "sale",
			ActorID:       "",
		}

		_, err := l.uc.Adjust(ctx, input)
		if err == nil {
			deducted = append(deducted, item)
			continue
		}

		if errors.Is(err, apperror.ErrInsufficientStock) {
			l.logger.Warn("Insufficient stock for committed order, cancelling",
				zap.String("order_id", event.Payload.ID),
				zap.String("variant_id", *item.VariantID),
			)
			l.reverseDeductions(ctx, event.Payload, deducted)
			reason := fmt.Sprintf("insufficient stock for sku %s", item.SKU)
			if cancelErr := l.canceller.CancelOrder(ctx, event.Payload.ID, reason); cancelErr != nil {
				l.logger.Error("Failed to cancel oversold order",
					zap.String("order_id", event.Payload.ID),
					zap.Error(cancelErr),
				)
			}
			return
		}

		l.logger.Error("Failed to adjust inventory for order item",
			zap.String("order_id", event.Payload.ID),
			zap.String("variant_id", *item.VariantID),
			zap.Error(err),
		)
	}
}

// reverseDeductions gives back stock taken for an order that is about to be
// cancelled. Each reversal is a "return" movement referencing the order, so
// the audit trail shows the sale and its compensation side by side.
func (l *InventoryListener) reverseDeductions(ctx context.Context, payload events.OrderPayload, deducted []events.OrderItemPayload) {
	for _, item := range deducted {
		input := &dto.AdjustStockInput{
			StoreID:       payload.StoreID,
			VariantID:     *item.VariantID,
			Delta:         item.Quantity,
			Reason:        "Oversold order reversal",
			ReferenceID:   payload.ID,
			ReferenceType: "return",
			ActorID:       "",
		}
		if _, err := l.uc.Adjust(ctx, input); err != nil {
			// A positive adjustment only fails on infrastructure trouble;
			// nothing more can be done here but leave a loud trace.
			l.logger.Error("Failed to reverse deduction for cancelled order",
				zap.String("order_id", payload.ID),
				zap.String("variant_id", *item.VariantID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}
}
