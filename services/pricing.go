package services

import (
	"coffeeshop_server/entity"
	"coffeeshop_server/repository"
	"context"
)

// repricer keeps stored order prices in line with their barista's tip and
// their coffees' prices.
type repricer struct {
	store *repository.Store
}

// attachCoffees loads the coffees of every order in one query.
func (r repricer) attachCoffees(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byOrder, err := r.store.Coffees.FindByOrderIDs(ctx, orderIDs(orders))
	if err != nil {
		return err
	}
	for _, o := range orders {
		if err := o.SetCoffees(byOrder[o.ID()]); err != nil {
			return err
		}
	}
	return nil
}

// repriceIDs reloads the listed orders and writes back every price that
// changed. It returns how many orders were rewritten.
func (r repricer) repriceIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	orders, err := r.store.Orders.FindAllByID(ctx, ids)
	if err != nil {
		return 0, err
	}
	if err := r.attachCoffees(ctx, orders); err != nil {
		return 0, err
	}
	changed := 0
	for _, o := range orders {
		if !o.Reprice() {
			continue
		}
		if _, err := r.store.Orders.Update(ctx, o); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func orderIDs(orders []*entity.Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}

func coffeeIDs(coffees []*entity.Coffee) []int64 {
	ids := make([]int64, 0, len(coffees))
	for _, c := range coffees {
		ids = append(ids, c.ID())
	}
	return ids
}

// difference returns the ids of a that are not in b, keeping a's order.
func difference(a, b []int64) []int64 {
	drop := make(map[int64]struct{}, len(b))
	for _, id := range b {
		drop[id] = struct{}{}
	}
	out := make([]int64, 0, len(a))
	for _, id := range a {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// union returns the distinct ids of all lists in first-seen order.
func union(lists ...[]int64) []int64 {
	seen := make(map[int64]struct{})
	var out []int64
	for _, list := range lists {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
