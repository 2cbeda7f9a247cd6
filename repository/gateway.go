// Package repository holds the persistence gateways. Gateways never open
// transactions; they join the one the caller's context carries.
package repository

import (
	"coffeeshop_server/entity"
	"context"
)

// Transactor runs a unit of work inside a single transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// BaristaGateway reads and writes barista rows. Related orders are not loaded.
type BaristaGateway interface {
	Create(ctx context.Context, b *entity.Barista) (*entity.Barista, error)
	Update(ctx context.Context, b *entity.Barista) (*entity.Barista, error)
	Delete(ctx context.Context, id int64) error
	// FindByID returns nil without an error when no row matches.
	FindByID(ctx context.Context, id int64) (*entity.Barista, error)
	FindAll(ctx context.Context) ([]*entity.Barista, error)
	FindAllByPage(ctx context.Context, page, limit int) ([]*entity.Barista, error)
	// FindAllByID returns the matching rows in id order; missing ids are skipped.
	FindAllByID(ctx context.Context, ids []int64) ([]*entity.Barista, error)
}

// CoffeeGateway reads and writes coffee rows.
type CoffeeGateway interface {
	Create(ctx context.Context, c *entity.Coffee) (*entity.Coffee, error)
	Update(ctx context.Context, c *entity.Coffee) (*entity.Coffee, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.Coffee, error)
	FindAll(ctx context.Context) ([]*entity.Coffee, error)
	FindAllByPage(ctx context.Context, page, limit int) ([]*entity.Coffee, error)
	FindAllByID(ctx context.Context, ids []int64) ([]*entity.Coffee, error)
	// FindByOrderIDs groups the coffees linked to each of the given orders.
	FindByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]*entity.Coffee, error)
}

// OrderGateway reads and writes order rows. Orders come back with their
// barista set and without coffees.
type OrderGateway interface {
	Create(ctx context.Context, o *entity.Order) (*entity.Order, error)
	Update(ctx context.Context, o *entity.Order) (*entity.Order, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	FindAll(ctx context.Context) ([]*entity.Order, error)
	FindAllByPage(ctx context.Context, page, limit int) ([]*entity.Order, error)
	FindAllByID(ctx context.Context, ids []int64) ([]*entity.Order, error)
	FindByBaristaID(ctx context.Context, baristaID int64) ([]*entity.Order, error)
	FindByBaristaIDs(ctx context.Context, baristaIDs []int64) (map[int64][]*entity.Order, error)
	FindByCoffeeID(ctx context.Context, coffeeID int64) ([]*entity.Order, error)
	FindByCoffeeIDs(ctx context.Context, coffeeIDs []int64) (map[int64][]*entity.Order, error)
	// AssignBarista points every listed order at baristaID in one statement.
	AssignBarista(ctx context.Context, orderIDs []int64, baristaID int64) error
}

// OrderCoffeeGateway maintains the (order, coffee) association set.
type OrderCoffeeGateway interface {
	// Link is idempotent; a missing order or coffee fails with KeyNotPresent.
	Link(ctx context.Context, orderID, coffeeID int64) error
	Unlink(ctx context.Context, orderID, coffeeID int64) error
	UnlinkByOrder(ctx context.Context, orderID int64) error
	UnlinkByCoffee(ctx context.Context, coffeeID int64) error
}

// Store bundles the gateways with the transactor they share.
type Store struct {
	Tx           Transactor
	Baristas     BaristaGateway
	Coffees      CoffeeGateway
	Orders       OrderGateway
	OrderCoffees OrderCoffeeGateway
}
