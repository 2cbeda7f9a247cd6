package database

import (
	"github.com/uptrace/bun"
)

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// whereClause is a single SQL condition with its bun placeholders
type whereClause struct {
	sql  string
	args []any
}

// QueryBuilder provides a fluent, type-safe API over bun for the row type T
type QueryBuilder[T any] struct {
	db bun.IDB

	wheres    []whereClause
	orders    []string
	relations []string
	limitVal  *int
	offsetVal *int
}

// Query creates a new QueryBuilder running on db, which is either the pool
// or a transaction.
func Query[T any](db bun.IDB) *QueryBuilder[T] {
	return &QueryBuilder[T]{db: db}
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{sql: "? = ?", args: []any{bun.Ident(column), value}})
	return q
}

// WhereIn adds a WHERE IN condition. values must be a slice.
func (q *QueryBuilder[T]) WhereIn(column string, values any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{sql: "? IN (?)", args: []any{bun.Ident(column), bun.In(values)}})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{sql: sql, args: args})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, column+" "+string(direction))
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

// With joins a bun relation declared on T
func (q *QueryBuilder[T]) With(relation string) *QueryBuilder[T] {
	q.relations = append(q.relations, relation)
	return q
}

// wherer is implemented by bun's select, update and delete queries
type wherer[Q any] interface {
	Where(query string, args ...any) Q
}

func applyWheres[Q wherer[Q]](query Q, wheres []whereClause) Q {
	for _, w := range wheres {
		query = query.Where(w.sql, w.args...)
	}
	return query
}

func (q *QueryBuilder[T]) buildSelect(model any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)
	for _, rel := range q.relations {
		query = query.Relation(rel)
	}
	query = applyWheres(query, q.wheres)
	for _, order := range q.orders {
		query = query.OrderExpr(order)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}
	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	return query
}
