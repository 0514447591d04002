package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora-commerce-service/internal/events"
	"github.com/vendora/vendora-commerce-service/internal/inventory/dto"
	"github.com/vendora/vendora-commerce-service/internal/model"
	"github.com/vendora/vendora-commerce-service/pkg/apperror"
	"github.com/vendora/vendora-commerce-service/pkg/logger"
)

type fakeInventoryUC struct {
	stock     map[string]int
	adjusted  []*dto.AdjustStockInput
}

func (f *fakeInventoryUC) GetQuantity(_ context.Context, variantID string) (int, error) {
	return f.stock[variantID], nil
}

func (f *fakeInventoryUC) GetVariantInventory(_ context.Context, variantID string) (*model.Inventory, error) {
	return &model.Inventory{VariantID: variantID, Quantity: f.stock[variantID]}, nil
}

func (f *fakeInventoryUC) Adjust(_ context.Context, input *dto.AdjustStockInput) (*model.Inventory, error) {
	after := f.stock[input.VariantID] + input.Delta
	if after < 0 {
		return nil, fmt.Errorf("short by %d: %w", -after, apperror.ErrInsufficientStock)
	}
	f.stock[input.VariantID] = after
	f.adjusted = append(f.adjusted, input)
	return &model.Inventory{VariantID: input.VariantID, Quantity: after}, nil
}

func (f *fakeInventoryUC) Set(_ context.Context, _ *dto.SetStockInput) (*model.Inventory, error) {
	return nil, nil
}

func (f *fakeInventoryUC) ListLowStock(_ context.Context, _ string, _, _ int) ([]model.Inventory, int, error) {
	return nil, 0, nil
}

func (f *fakeInventoryUC) ListMovements(_ context.Context, _ *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	return nil, 0, nil
}

type fakeCanceller struct {
	cancelled []string
	reasons   []string
}

func (f *fakeCanceller) CancelOrder(_ context.Context, orderID, reason string) error {
	f.cancelled = append(f.cancelled, orderID)
	f.reasons = append(f.reasons, reason)
	return nil
}

func orderCreatedMessage(t *testing.T, orderID string, items []events.OrderItemPayload) []byte {
	t.Helper()
	raw, err := json.Marshal(events.OrderCreated{
		EventID:   "evt-1",
		EventType: events.TypeOrderCreated,
		Payload: events.OrderPayload{
			ID:      orderID,
			StoreID: "store-1",
			UserID:  "user-1",
			Items:   items,
		},
	})
	require.NoError(t, err)
	return raw
}

func strPtr(s string) *string { return &s }

func TestOrderCreatedDeductsStock(t *testing.T) {
	uc := &fakeInventoryUC{stock: map[string]int{"v1": 10, "v2": 5}}
	canceller := &fakeCanceller{}
	l := NewInventoryListener(nil, uc, canceller, logger.NewNop())

	msg := orderCreatedMessage(t, "order-1", []events.OrderItemPayload{
		{VariantID: strPtr("v1"), SKU: "A", Quantity: 3},
		{VariantID: strPtr("v2"), SKU: "B", Quantity: 1},
		{SKU: "C", Quantity: 2}, // no variant, nothing to deduct
	})
	l.processMessage(context.Background(), msg)

	assert.Equal(t, 7, uc.stock["v1"])
	assert.Equal(t, 4, uc.stock["v2"])
	assert.Empty(t, canceller.cancelled)

	require.Len(t, uc.adjusted, 2)
	assert.Equal(t, "sale", uc.adjusted[0].ReferenceType)
	assert.Equal(t, "order-1", uc.adjusted[0].ReferenceID)
}

func TestOversoldOrderIsCancelled(t *testing.T) {
	uc := &fakeInventoryUC{stock: map[string]int{"v1": 2}}
	canceller := &fakeCanceller{}
	l := NewInventoryListener(nil, uc, canceller, logger.NewNop())

	msg := orderCreatedMessage(t, "order-1", []events.OrderItemPayload{
		{VariantID: strPtr("v1"), SKU: "A", Quantity: 5},
	})
	l.processMessage(context.Background(), msg)

	assert.Equal(t, 2, uc.stock["v1"], "stock stays put when the deduction fails")
	require.Len(t, canceller.cancelled, 1)
	assert.Equal(t, "order-1", canceller.cancelled[0])
	assert.Contains(t, canceller.reasons[0], "A")
}

func TestOversellReversesEarlierDeductions(t *testing.T) {
	uc := &fakeInventoryUC{stock: map[string]int{"v1": 10, "v2": 1}}
	canceller := &fakeCanceller{}
	l := NewInventoryListener(nil, uc, canceller, logger.NewNop())

	// v1 deducts fine, v2 oversells. The v1 deduction must be given back,
	// otherwise the cancelled order keeps consuming stock forever.
	msg := orderCreatedMessage(t, "order-1", []events.OrderItemPayload{
		{VariantID: strPtr("v1"), SKU: "A", Quantity: 3},
		{VariantID: strPtr("v2"), SKU: "B", Quantity: 5},
	})
	l.processMessage(context.Background(), msg)

	require.Len(t, canceller.cancelled, 1)
	assert.Equal(t, 10, uc.stock["v1"], "earlier deduction must be reversed on cancellation")
	assert.Equal(t, 1, uc.stock["v2"])

	// Audit trail: the sale and its compensating return, both tied to the order.
	require.Len(t, uc.adjusted, 2)
	assert.Equal(t, "sale", uc.adjusted[0].ReferenceType)
	assert.Equal(t, -3, uc.adjusted[0].Delta)
	assert.Equal(t, "return", uc.adjusted[1].ReferenceType)
	assert.Equal(t, 3, uc.adjusted[1].Delta)
	assert.Equal(t, "order-1", uc.adjusted[1].ReferenceID)
}

func TestUnknownEventTypeIgnored(t *testing.T) {
	uc := &fakeInventoryUC{stock: map[string]int{"v1": 10}}
	l := NewInventoryListener(nil, uc, &fakeCanceller{}, logger.NewNop())

	raw, err := json.Marshal(events.OrderCreated{EventType: "OrderUpdated", Payload: events.OrderPayload{
		Items: []events.OrderItemPayload{{VariantID: strPtr("v1"), Quantity: 3}},
	}})
	require.NoError(t, err)

	l.processMessage(context.Background(), raw)
	assert.Equal(t, 10, uc.stock["v1"])
}

func TestMalformedMessageIgnored(t *testing.T) {
	uc := &fakeInventoryUC{stock: map[string]int{}}
	l := NewInventoryListener(nil, uc, &fakeCanceller{}, logger.NewNop())

	l.processMessage(context.Background(), []byte("{not json"))
	assert.Empty(t, uc.adjusted)
}
