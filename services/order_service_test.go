package services

import (
	"testing"

	"fairfoul_server/structs/tables"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItemFromLine(t *testing.T) {
	productId := uuid.New()
	discount := int64(1500)

	t.Run("carries variant ids and names", func(t *testing.T) {
		colorId := uuid.New()
		sizeId := uuid.New()
		line := &tables.CartItem{
			ProductId: productId,
			ColorId:   &colorId,
			SizeId:    &sizeId,
			Quantity:  3,
			Product:   &tables.Product{Name: "Away Shirt", Sku: "AW-01", Price: 2000},
			Color:     &tables.Color{Name: "Navy"},
			Size:      &tables.Size{Name: "L"},
		}

		item := orderItemFromLine(line)

		require.NotNil(t, item.ProductId)
		assert.Equal(t, productId, *item.ProductId)
		require.NotNil(t, item.ColorId)
		assert.Equal(t, colorId, *item.ColorId)
		require.NotNil(t, item.SizeId)
		assert.Equal(t, sizeId, *item.SizeId)
		assert.Equal(t, "Navy", item.ColorName)
		assert.Equal(t, "L", item.SizeName)
	})

	t.Run("uses the effective price", func(t *testing.T) {
		line := &tables.CartItem{
			ProductId: productId,
			Quantity:  2,
			Product:   &tables.Product{Name: "Home Shirt", Price: 2000, DiscountPrice: &discount},
		}

		item := orderItemFromLine(line)

		assert.Equal(t, int64(1500), item.UnitPrice)
		assert.Equal(t, int64(3000), item.TotalPrice)
	})

	t.Run("plain line leaves variant fields empty", func(t *testing.T) {
		line := &tables.CartItem{
			ProductId: productId,
			Quantity:  1,
			Product:   &tables.Product{Name: "Scarf", Price: 900},
		}

		item := orderItemFromLine(line)

		assert.Nil(t, item.ColorId)
		assert.Nil(t, item.SizeId)
		assert.Empty(t, item.ColorName)
		assert.Empty(t, item.SizeName)
	})
}

func TestCancelDescription(t *testing.T) {
	assert.Equal(t, "Order cancelled by customer", cancelDescription(""))
	assert.Equal(t, "Order cancelled. Reason: changed my mind", cancelDescription("changed my mind"))
}

func TestOrderBillingAddress(t *testing.T) {
	shipping := &tables.Address{Id: uuid.New()}
	billing := &tables.Address{Id: uuid.New()}

	t.Run("defaults to shipping", func(t *testing.T) {
		assert.Same(t, shipping, orderBillingAddress(shipping, nil))
	})

	t.Run("explicit billing wins", func(t *testing.T) {
		assert.Same(t, billing, orderBillingAddress(shipping, billing))
	})
}

func TestCheckoutSentinelsAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrProductUnavailable, ErrInsufficientStock)
	assert.NotErrorIs(t, ErrProductUnavailable, ErrEmptyCart)
	assert.NotErrorIs(t, ErrProductUnavailable, ErrInvalidCoupon)
}
