package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Order struct {
	bun.BaseModel `bun:"table:order,alias:o"`

	ID        int64      `bun:"id,pk,autoincrement"`
	BaristaID int64      `bun:"barista,notnull"`
	Created   time.Time  `bun:"created,notnull"`
	Completed *time.Time `bun:"completed"` // NULL while the order is open
	Price     float64    `bun:"price,notnull"`

	Barista *Barista `bun:"rel:belongs-to,join:barista=id"`
}

// OrderCoffee is one (order, coffee) pair of the association set.
type OrderCoffee struct {
	bun.BaseModel `bun:"table:order_coffee,alias:oc"`

	OrderID  int64 `bun:"order_id,pk"`
	CoffeeID int64 `bun:"coffee_id,pk"`
}
