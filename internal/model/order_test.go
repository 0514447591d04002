package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusReturned,
	} {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("processing").Valid())
	assert.False(t, OrderStatus("SHIPPED").Valid())
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatusReturned, false},

		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusReturned, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusPending, false},

		{OrderStatusDelivered, OrderStatusReturned, true},
		{OrderStatusDelivered, OrderStatusShipped, false},

		// Terminal states
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusShipped, false},
		{OrderStatusReturned, OrderStatusPending, false},
		{OrderStatusReturned, OrderStatusShipped, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestVariantPrice(t *testing.T) {
	p := &Product{BasePrice: 100}

	assert.Equal(t, 100.0, (&ProductVariant{}).Price(p))
	assert.Equal(t, 115.5, (&ProductVariant{PriceAdjustment: 15.5}).Price(p))
	assert.Equal(t, 90.0, (&ProductVariant{PriceAdjustment: -10}).Price(p))
}
