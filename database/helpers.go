package database

import (
	"context"
	"fmt"
	"math"

	"github.com/uptrace/bun"
)

// PageOffset returns page*limit. ok is false when the product does not fit
// in an int, in which case the page lies past any possible row.
func PageOffset(page, limit int) (offset int, ok bool) {
	if limit > 0 && page > math.MaxInt/limit {
		return 0, false
	}
	return page * limit, true
}

// Paginate returns rows [page*limit, page*limit+limit) ordered by idColumn
func Paginate[T any](ctx context.Context, db bun.IDB, idColumn string, page, limit int) ([]T, error) {
	if page < 0 || limit < 1 {
		return nil, fmt.Errorf("invalid page window page=%d limit=%d", page, limit)
	}
	offset, ok := PageOffset(page, limit)
	if !ok {
		return []T{}, nil
	}
	return Query[T](db).
		OrderBy(idColumn, ASC).
		Offset(offset).
		Limit(limit).
		All(ctx)
}

// FindByID returns the row whose idColumn equals id, or nil
func FindByID[T any](ctx context.Context, db bun.IDB, idColumn string, id int64) (*T, error) {
	return Query[T](db).Where(idColumn, id).First(ctx)
}

// FindByIDs returns the rows whose idColumn is in ids, ordered by id
func FindByIDs[T any](ctx context.Context, db bun.IDB, idColumn string, ids []int64) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return Query[T](db).WhereIn(idColumn, ids).OrderBy(idColumn, ASC).All(ctx)
}

// DeleteByID removes the row whose idColumn equals id and reports whether it existed
func DeleteByID[T any](ctx context.Context, db bun.IDB, idColumn string, id int64) (bool, error) {
	affected, err := Query[T](db).Where(idColumn, id).Delete(ctx)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
