package tables

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponIsValidAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	base := Coupon{
		Code:      "SUMMER",
		IsActive:  true,
		ValidFrom: now.AddDate(0, -1, 0),
		ValidTo:   now.AddDate(0, 1, 0),
	}

	t.Run("active within window", func(t *testing.T) {
		c := base
		assert.True(t, c.IsValidAt(now))
	})

	t.Run("inactive", func(t *testing.T) {
		c := base
		c.IsActive = false
		assert.False(t, c.IsValidAt(now))
	})

	t.Run("before window", func(t *testing.T) {
		c := base
		c.ValidFrom = now.AddDate(0, 0, 1)
		assert.False(t, c.IsValidAt(now))
	})

	t.Run("after window", func(t *testing.T) {
		c := base
		c.ValidTo = now.AddDate(0, 0, -1)
		assert.False(t, c.IsValidAt(now))
	})

	t.Run("usage limit reached", func(t *testing.T) {
		c := base
		c.UsageLimit = 10
		c.TimesUsed = 10
		assert.False(t, c.IsValidAt(now))
	})

	t.Run("usage limit not reached", func(t *testing.T) {
		c := base
		c.UsageLimit = 10
		c.TimesUsed = 9
		assert.True(t, c.IsValidAt(now))
	})

	t.Run("zero usage limit means unlimited", func(t *testing.T) {
		c := base
		c.UsageLimit = 0
		c.TimesUsed = 100000
		assert.True(t, c.IsValidAt(now))
	})
}

func TestCouponDiscountFor(t *testing.T) {
	t.Run("fixed amount", func(t *testing.T) {
		c := Coupon{AmountOff: 500}
		assert.Equal(t, int64(500), c.DiscountFor(2000))
	})

	t.Run("fixed amount capped at subtotal", func(t *testing.T) {
		c := Coupon{AmountOff: 5000}
		assert.Equal(t, int64(2000), c.DiscountFor(2000))
	})

	t.Run("fixed amount takes precedence over percentage", func(t *testing.T) {
		c := Coupon{AmountOff: 500, PercentOff: 50}
		assert.Equal(t, int64(500), c.DiscountFor(2000))
	})

	t.Run("percentage", func(t *testing.T) {
		c := Coupon{PercentOff: 10}
		assert.Equal(t, int64(200), c.DiscountFor(2000))
	})

	t.Run("percentage floors fractional cents", func(t *testing.T) {
		c := Coupon{PercentOff: 15}
		// 15% of 999 = 149.85, floored
		assert.Equal(t, int64(149), c.DiscountFor(999))
	})

	t.Run("no discount configured", func(t *testing.T) {
		c := Coupon{}
		assert.Equal(t, int64(0), c.DiscountFor(2000))
	})
}

func TestOrderCanCancel(t *testing.T) {
	cancellable := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusCancelled,
		OrderStatusRefunded,
	}
	for _, status := range cancellable {
		o := Order{Status: status}
		assert.True(t, o.CanCancel(), "status %s should be cancellable", status)
	}

	for _, status := range []OrderStatus{OrderStatusShipped, OrderStatusDelivered} {
		o := Order{Status: status}
		assert.False(t, o.CanCancel(), "status %s should not be cancellable", status)
	}
}

func TestCartSubtotal(t *testing.T) {
	discount := int64(800)

	cart := Cart{
		Items: []*CartItem{
			{Quantity: 2, Product: &Product{Price: 1000}},
			{Quantity: 1, Product: &Product{Price: 1500, DiscountPrice: &discount}},
			{Quantity: 3, Product: nil}, // missing relation is skipped
		},
	}

	assert.Equal(t, int64(2800), cart.Subtotal())
}

func TestCartSubtotalEmpty(t *testing.T) {
	cart := Cart{}
	assert.Equal(t, int64(0), cart.Subtotal())
}
