package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// QueryBuilder provides a fluent, type-safe API for building database queries
type QueryBuilder[T any] struct {
	db  *DB
	idb bun.IDB

	tableName string

	// Query clauses
	selectCols  []string
	joins       []*JoinClause
	wheres      []*WhereClause
	whereGroups []*WhereGroup
	orders      []*OrderClause
	groupBys    []string
	limitVal    *int
	offsetVal   *int

	// Relations to preload
	relations []string

	// Options
	distinct  bool
	forUpdate bool

	// Timeout
	timeout time.Duration
}

// JoinClause represents a SQL JOIN operation
type JoinClause struct {
	SQL  string
	Args []any
}

// WhereClause represents a WHERE condition
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
	Negate   bool
}

// WhereGroup represents a grouped WHERE condition (for OR/AND grouping)
type WhereGroup struct {
	Conditions []*WhereClause
	Connector  string // "AND" or "OR"
	Negate     bool
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// WhereGroupBuilder provides a fluent API for building grouped WHERE clauses
type WhereGroupBuilder[T any] struct {
	parent *QueryBuilder[T]
	group  *WhereGroup
}

// Query creates a new QueryBuilder instance
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{
		db:          db,
		idb:         db.DB,
		selectCols:  []string{},
		joins:       []*JoinClause{},
		wheres:      []*WhereClause{},
		whereGroups: []*WhereGroup{},
		orders:      []*OrderClause{},
		groupBys:    []string{},
		relations:   []string{},
	}
}

// QueryTx creates a QueryBuilder that runs inside the given transaction
func QueryTx[T any](db *DB, tx bun.Tx) *QueryBuilder[T] {
	q := Query[T](db)
	q.idb = tx
	return q
}

// Table sets the table name explicitly
func (q *QueryBuilder[T]) Table(name string) *QueryBuilder[T] {
	q.tableName = name
	return q
}

// Select specifies the columns to select
func (q *QueryBuilder[T]) Select(columns ...string) *QueryBuilder[T] {
	q.selectCols = append(q.selectCols, columns...)
	return q
}

// Distinct adds DISTINCT to the query
func (q *QueryBuilder[T]) Distinct() *QueryBuilder[T] {
	q.distinct = true
	return q
}

// Join adds a raw JOIN clause, e.g. Join("JOIN colors col ON col.id = pc.color_id")
func (q *QueryBuilder[T]) Join(sql string, args ...any) *QueryBuilder[T] {
	q.joins = append(q.joins, &JoinClause{SQL: sql, Args: args})
	return q
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
	})
	return q
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return q
}

// WhereNot adds a WHERE NOT condition
func (q *QueryBuilder[T]) WhereNot(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
		Negate:   true,
	})
	return q
}

// WhereIn adds a WHERE IN condition
func (q *QueryBuilder[T]) WhereIn(column string, values []any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IN",
		Value:    values,
	})
	return q
}

// WhereNull adds a WHERE IS NULL condition
func (q *QueryBuilder[T]) WhereNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IS NULL",
	})
	return q
}

// WhereNotNull adds a WHERE IS NOT NULL condition
func (q *QueryBuilder[T]) WhereNotNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IS NOT NULL",
	})
	return q
}

// WhereLike adds a case-insensitive WHERE ILIKE condition
func (q *QueryBuilder[T]) WhereLike(column, pattern string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "ILIKE",
		Value:    pattern,
	})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		IsRaw:   true,
		RawSQL:  sql,
		RawArgs: args,
	})
	return q
}

// WhereGroup starts building a grouped WHERE clause
func (q *QueryBuilder[T]) WhereGroup(connector string) *WhereGroupBuilder[T] {
	group := &WhereGroup{
		Conditions: []*WhereClause{},
		Connector:  connector,
	}
	return &WhereGroupBuilder[T]{
		parent: q,
		group:  group,
	}
}

// Or starts an OR group
func (q *QueryBuilder[T]) Or() *WhereGroupBuilder[T] {
	return q.WhereGroup("OR")
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{
		Column:    column,
		Direction: string(direction),
	})
	return q
}

// GroupBy adds a GROUP BY clause
func (q *QueryBuilder[T]) GroupBy(columns ...string) *QueryBuilder[T] {
	q.groupBys = append(q.groupBys, columns...)
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// With specifies a relation to preload
func (q *QueryBuilder[T]) With(relation string) *QueryBuilder[T] {
	q.relations = append(q.relations, relation)
	return q
}

// ForUpdate adds FOR UPDATE clause (for row locking)
func (q *QueryBuilder[T]) ForUpdate() *QueryBuilder[T] {
	q.forUpdate = true
	return q
}

// Timeout sets a timeout for the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

// WhereGroupBuilder methods

// Where adds a condition to the group
func (w *WhereGroupBuilder[T]) Where(column string, value any) *WhereGroupBuilder[T] {
	w.group.Conditions = append(w.group.Conditions, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
	})
	return w
}

// WhereOp adds a condition with an operator to the group
func (w *WhereGroupBuilder[T]) WhereOp(column, operator string, value any) *WhereGroupBuilder[T] {
	w.group.Conditions = append(w.group.Conditions, &WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return w
}

// WhereRaw adds a raw condition to the group
func (w *WhereGroupBuilder[T]) WhereRaw(sql string, args ...any) *WhereGroupBuilder[T] {
	w.group.Conditions = append(w.group.Conditions, &WhereClause{
		IsRaw:   true,
		RawSQL:  sql,
		RawArgs: args,
	})
	return w
}

// End completes the group builder and returns to the query builder
func (w *WhereGroupBuilder[T]) End() *QueryBuilder[T] {
	w.parent.whereGroups = append(w.parent.whereGroups, w.group)
	return w.parent
}

// buildBunQuery assembles a bun SelectQuery from the accumulated clauses.
// The model pointer is what Scan/Count will populate.
func (q *QueryBuilder[T]) buildBunQuery(model any) *bun.SelectQuery {
	query := q.idb.NewSelect().Model(model)

	if q.tableName != "" {
		query = query.ModelTableExpr("? AS ?", bun.Ident(q.tableName), bun.Ident(q.tableName))
	}

	if len(q.selectCols) > 0 {
		for _, col := range q.selectCols {
			query = query.ColumnExpr(col)
		}
	}

	if q.distinct {
		query = query.Distinct()
	}

	for _, join := range q.joins {
		query = query.Join(join.SQL, join.Args...)
	}

	for _, rel := range q.relations {
		query = query.Relation(rel)
	}

	query = q.applyWhereConditions(query)

	for _, order := range q.orders {
		query = query.OrderExpr("? ?", bun.Ident(order.Column), bun.Safe(order.Direction))
	}

	for _, group := range q.groupBys {
		query = query.Group(group)
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}

	if q.forUpdate {
		query = query.For("UPDATE")
	}

	return query
}

// applyWhereConditions applies WHERE clauses and groups to a Bun SelectQuery
func (q *QueryBuilder[T]) applyWhereConditions(query *bun.SelectQuery) *bun.SelectQuery {
	for _, where := range q.wheres {
		sql, args := where.toSQL()
		query = query.Where(sql, args...)
	}

	for _, group := range q.whereGroups {
		sql, args := group.toSQL()
		if sql != "" {
			query = query.Where(sql, args...)
		}
	}

	return query
}

// toSQL renders a single WHERE clause into SQL and its arguments
func (w *WhereClause) toSQL() (string, []any) {
	if w.IsRaw {
		return w.RawSQL, w.RawArgs
	}

	if w.Operator == "IS NULL" || w.Operator == "IS NOT NULL" {
		return fmt.Sprintf("%s %s", w.Column, w.Operator), nil
	}

	if w.Operator == "IN" {
		values, _ := w.Value.([]any)
		condition := fmt.Sprintf("%s IN (?)", w.Column)
		if w.Negate {
			condition = "NOT " + condition
		}
		return condition, []any{bun.In(values)}
	}

	condition := fmt.Sprintf("%s %s ?", w.Column, w.Operator)
	if w.Negate {
		condition = fmt.Sprintf("NOT (%s)", condition)
	}
	return condition, []any{w.Value}
}

// toSQL renders a WHERE group into a single parenthesized condition
func (g *WhereGroup) toSQL() (string, []any) {
	if len(g.Conditions) == 0 {
		return "", nil
	}

	var conditions []string
	var args []any

	for _, cond := range g.Conditions {
		sql, condArgs := cond.toSQL()
		conditions = append(conditions, sql)
		args = append(args, condArgs...)
	}

	groupSQL := "(" + strings.Join(conditions, " "+g.Connector+" ") + ")"
	if g.Negate {
		groupSQL = "NOT " + groupSQL
	}
	return groupSQL, args
}

// applyContext applies the configured timeout to the context
func (q *QueryBuilder[T]) applyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}
