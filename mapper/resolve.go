package mapper

import (
	"coffeeshop_server/lib"
	"context"
	"slices"
)

type finder[T any] func(ctx context.Context, ids []int64) ([]T, error)

// resolve looks up every id in one round trip and returns the entities in
// input order. Negative ids, repeats and ids with no row are rejected; a
// missing-row error names every missing id.
func resolve[T any](
	ctx context.Context,
	field string,
	ids []int64,
	find finder[T],
	idOf func(T) int64,
	notFound func(ids ...int64) error,
) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	for _, id := range ids {
		if id < 0 {
			return nil, lib.NoValidID(id)
		}
	}
	if dups := repeated(ids); len(dups) > 0 {
		return nil, lib.DuplicatedElements(field, dups)
	}

	found, err := find(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]T, len(found))
	for _, item := range found {
		byID[idOf(item)] = item
	}

	out := make([]T, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, item)
	}
	if len(missing) > 0 {
		return nil, notFound(missing...)
	}
	return out, nil
}

func repeated(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	var dups []int64
	for _, id := range ids {
		if seen[id] && !slices.Contains(dups, id) {
			dups = append(dups, id)
		}
		seen[id] = true
	}
	return dups
}
