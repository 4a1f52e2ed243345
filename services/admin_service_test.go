package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevenueQueriesCountDeliveredOnly(t *testing.T) {
	queries := map[string]string{
		"total revenue":       totalRevenueSQL,
		"sales report":        salesReportSQL,
		"product performance": productPerformanceSQL,
	}

	for name, sql := range queries {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, sql, "status = ?")
			assert.NotContains(t, sql, "payment_status")
			assert.NotContains(t, sql, "NOT IN")
		})
	}
}

func TestReportSQLShapes(t *testing.T) {
	assert.True(t, strings.Contains(salesReportSQL, "GROUP BY 1"))
	assert.Contains(t, productPerformanceSQL, "JOIN orders o ON o.id = oi.order_id")
	assert.Contains(t, productPerformanceSQL, "LIMIT 50")
}
