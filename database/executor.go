package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// run retries transient failures, except inside a transaction where a
// failed statement aborts the whole unit anyway.
func (q *QueryBuilder[T]) run(ctx context.Context, op func(ctx context.Context) error) error {
	if _, inTx := q.db.(bun.Tx); inTx {
		return op(ctx)
	}
	return WithRetry(ctx, func() error { return op(ctx) })
}

// All executes the query and returns all matching records
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	err := q.run(ctx, func(ctx context.Context) error {
		data = make([]T, 0) // Reset on retry
		return q.buildSelect(&data).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record, or nil
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T

	err := q.run(ctx, func(ctx context.Context) error {
		return q.buildSelect(&data).Limit(1).Scan(ctx)
	})
	if err != nil {
		// Return nil for no rows instead of error
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Insert inserts data and scans the returning columns back into it
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T, returning ...string) (*T, error) {
	start := time.Now()

	err := q.run(ctx, func(ctx context.Context) error {
		query := q.db.NewInsert().Model(data)
		for _, col := range returning {
			query = query.Returning("?", bun.Ident(col))
		}
		_, err := query.Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertIgnore inserts data unless it conflicts with an existing row and
// reports how many rows were written.
func (q *QueryBuilder[T]) InsertIgnore(ctx context.Context, data *T) (int64, error) {
	start := time.Now()
	var affected int64

	err := q.run(ctx, func(ctx context.Context) error {
		res, err := q.db.NewInsert().Model(data).On("CONFLICT DO NOTHING").Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return affected, nil
}

// Update writes every column of data except the excluded ones to the rows
// matching the query
func (q *QueryBuilder[T]) Update(ctx context.Context, data *T, exclude ...string) (int64, error) {
	start := time.Now()
	var affected int64

	err := q.run(ctx, func(ctx context.Context) error {
		query := q.db.NewUpdate().Model(data)
		if len(exclude) > 0 {
			query = query.ExcludeColumn(exclude...)
		}
		res, err := applyWheres(query, q.wheres).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return affected, nil
}

// Set assigns a single column on the rows matching the query
func (q *QueryBuilder[T]) Set(ctx context.Context, column string, value any) (int64, error) {
	start := time.Now()
	var affected int64

	err := q.run(ctx, func(ctx context.Context) error {
		query := q.db.NewUpdate().Model((*T)(nil)).Set("? = ?", bun.Ident(column), value)
		res, err := applyWheres(query, q.wheres).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return affected, nil
}

// Delete removes the rows matching the query
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int64, error) {
	start := time.Now()
	var affected int64

	if len(q.wheres) == 0 {
		return 0, errors.New("refusing to delete without a WHERE clause")
	}

	err := q.run(ctx, func(ctx context.Context) error {
		res, err := applyWheres(q.db.NewDelete().Model((*T)(nil)), q.wheres).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return affected, nil
}
