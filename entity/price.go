package entity

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// PricePlaces is the number of decimal places prices are rounded to.
const PricePlaces = 2

// OrderPrice is the sum of the coffee prices plus the barista's tip share,
// rounded half away from zero to PricePlaces.
func OrderPrice(coffees []*Coffee, tipSize float64) float64 {
	subtotal := decimal.Zero
	for _, c := range coffees {
		subtotal = subtotal.Add(decimal.NewFromFloat(c.Price()))
	}
	total := subtotal.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(tipSize)))
	price, _ := total.Round(PricePlaces).Float64()
	return price
}

// SortQueue orders open orders by creation time, breaking ties by id.
func SortQueue(orders []*Order) {
	slices.SortStableFunc(orders, func(a, b *Order) int {
		if c := a.Created().Compare(b.Created()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
}

// Queue returns the open orders from orders in queue order.
func Queue(orders []*Order) []*Order {
	open := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o.IsOpen() {
			open = append(open, o)
		}
	}
	SortQueue(open)
	return open
}
