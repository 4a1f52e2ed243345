package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

func TestWhereClauseToSQL(t *testing.T) {
	t.Run("simple comparison", func(t *testing.T) {
		clause := &WhereClause{Column: "status", Operator: "=", Value: "active"}
		query, args := clause.toSQL()
		assert.Equal(t, "status = ?", query)
		assert.Equal(t, []any{"active"}, args)
	})

	t.Run("negated comparison", func(t *testing.T) {
		clause := &WhereClause{Column: "price", Operator: ">", Value: 1000, Negate: true}
		query, args := clause.toSQL()
		assert.Equal(t, "NOT (price > ?)", query)
		assert.Equal(t, []any{1000}, args)
	})

	t.Run("is null takes no args", func(t *testing.T) {
		clause := &WhereClause{Column: "deleted_at", Operator: "IS NULL"}
		query, args := clause.toSQL()
		assert.Equal(t, "deleted_at IS NULL", query)
		assert.Nil(t, args)
	})

	t.Run("in uses bun.In", func(t *testing.T) {
		values := []any{"pending", "confirmed"}
		clause := &WhereClause{Column: "status", Operator: "IN", Value: values}
		query, args := clause.toSQL()
		assert.Equal(t, "status IN (?)", query)
		assert.Equal(t, []any{bun.In(values)}, args)
	})

	t.Run("raw passthrough", func(t *testing.T) {
		clause := &WhereClause{
			IsRaw:   true,
			RawSQL:  "lower(name) LIKE ?",
			RawArgs: []any{"%jacket%"},
		}
		query, args := clause.toSQL()
		assert.Equal(t, "lower(name) LIKE ?", query)
		assert.Equal(t, []any{"%jacket%"}, args)
	})
}

func TestWhereGroupToSQL(t *testing.T) {
	t.Run("or group", func(t *testing.T) {
		group := &WhereGroup{
			Connector: "OR",
			Conditions: []*WhereClause{
				{Column: "is_featured", Operator: "=", Value: true},
				{Column: "is_bestseller", Operator: "=", Value: true},
			},
		}
		query, args := group.toSQL()
		assert.Equal(t, "(is_featured = ? OR is_bestseller = ?)", query)
		assert.Equal(t, []any{true, true}, args)
	})

	t.Run("negated and group", func(t *testing.T) {
		group := &WhereGroup{
			Connector: "AND",
			Negate:    true,
			Conditions: []*WhereClause{
				{Column: "status", Operator: "=", Value: "shipped"},
				{Column: "tracking_number", Operator: "IS NULL"},
			},
		}
		query, args := group.toSQL()
		assert.Equal(t, "NOT (status = ? AND tracking_number IS NULL)", query)
		assert.Equal(t, []any{"shipped"}, args)
	})

	t.Run("empty group", func(t *testing.T) {
		group := &WhereGroup{Connector: "AND"}
		query, args := group.toSQL()
		assert.Empty(t, query)
		assert.Nil(t, args)
	})
}
