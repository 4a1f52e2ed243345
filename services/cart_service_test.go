package services

import (
	"testing"

	"fairfoul_server/structs/tables"

	"github.com/stretchr/testify/assert"
)

func TestAvailableStock(t *testing.T) {
	t.Run("size row governs a sized line", func(t *testing.T) {
		product := &tables.Product{StockQuantity: 0}
		row := &tables.ProductSize{StockQuantity: 5}
		assert.Equal(t, 5, availableStock(product, row))
	})

	t.Run("size row governs even when product stock is higher", func(t *testing.T) {
		product := &tables.Product{StockQuantity: 100}
		row := &tables.ProductSize{StockQuantity: 2}
		assert.Equal(t, 2, availableStock(product, row))
	})

	t.Run("product stock governs without a size row", func(t *testing.T) {
		product := &tables.Product{StockQuantity: 7}
		assert.Equal(t, 7, availableStock(product, nil))
	})
}
