package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		data = nil // Reset on retry
		return q.buildBunQuery(&data).Scan(ctx)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record with automatic retry.
// Returns nil without error when no row matches.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		return q.buildBunQuery(&data).Limit(1).Scan(ctx)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		var err error
		count, err = q.buildBunQuery(&model).Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it with automatic retry
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.idb.NewInsert().Model(data).Returning("*")

		if q.tableName != "" {
			query = query.Table(q.tableName)
		}

		_, err := query.Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records with automatic retry
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	start := time.Now()

	if len(data) == 0 {
		return data, nil
	}

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.idb.NewInsert().Model(&data).Returning("*")

		if q.tableName != "" {
			query = query.Table(q.tableName)
		}

		_, err := query.Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update updates records matching the query with automatic retry.
// Accepts either a map[string]any of column updates or a *T struct.
func (q *QueryBuilder[T]) Update(ctx context.Context, data any) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query, err := q.buildUpdateQuery(data)
		if err != nil {
			return err
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// UpdateReturning updates records and returns them with automatic retry
func (q *QueryBuilder[T]) UpdateReturning(ctx context.Context, data any) ([]T, error) {
	start := time.Now()
	var results []T

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		results = nil // Reset on retry
		query, err := q.buildUpdateQuery(data)
		if err != nil {
			return err
		}

		_, err = query.Returning("*").Exec(ctx, &results)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return results, nil
}

// Delete deletes records matching the query with automatic retry
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		query := q.idb.NewDelete().Model(&model)

		if q.tableName != "" {
			query = query.Table(q.tableName)
		}

		query = q.applyWhereConditionsToDelete(query)

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// buildUpdateQuery assembles a bun UpdateQuery with WHERE conditions applied
func (q *QueryBuilder[T]) buildUpdateQuery(data any) (*bun.UpdateQuery, error) {
	var model T
	query := q.idb.NewUpdate().Model(&model)

	if q.tableName != "" {
		query = query.Table(q.tableName)
	}

	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			query = query.Set("? = ?", bun.Ident(key), value)
		}
	case *T:
		query = q.idb.NewUpdate().Model(v)
		if q.tableName != "" {
			query = query.Table(q.tableName)
		}
	default:
		return nil, fmt.Errorf("unsupported data type for update: %T", data)
	}

	return q.applyWhereConditionsToUpdate(query), nil
}

// applyWhereConditionsToUpdate applies WHERE conditions to a Bun UpdateQuery
func (q *QueryBuilder[T]) applyWhereConditionsToUpdate(query *bun.UpdateQuery) *bun.UpdateQuery {
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

// applyWhereConditionsToDelete applies WHERE conditions to a Bun DeleteQuery
func (q *QueryBuilder[T]) applyWhereConditionsToDelete(query *bun.DeleteQuery) *bun.DeleteQuery {
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
