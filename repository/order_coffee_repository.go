package repository

import (
	"coffeeshop_server/database"
	"coffeeshop_server/structs/tables"
	"context"
)

type OrderCoffeeRepository struct {
	db *database.DB
}

func NewOrderCoffeeRepository(db *database.DB) *OrderCoffeeRepository {
	return &OrderCoffeeRepository{db: db}
}

func (r *OrderCoffeeRepository) Link(ctx context.Context, orderID, coffeeID int64) error {
	_, err := database.Query[tables.OrderCoffee](r.db.Conn(ctx)).
		InsertIgnore(ctx, &tables.OrderCoffee{OrderID: orderID, CoffeeID: coffeeID})
	return database.MapError(err)
}

func (r *OrderCoffeeRepository) Unlink(ctx context.Context, orderID, coffeeID int64) error {
	_, err := database.Query[tables.OrderCoffee](r.db.Conn(ctx)).
		Where("order_id", orderID).
		Where("coffee_id", coffeeID).
		Delete(ctx)
	return database.MapError(err)
}

func (r *OrderCoffeeRepository) UnlinkByOrder(ctx context.Context, orderID int64) error {
	_, err := database.Query[tables.OrderCoffee](r.db.Conn(ctx)).Where("order_id", orderID).Delete(ctx)
	return database.MapError(err)
}

func (r *OrderCoffeeRepository) UnlinkByCoffee(ctx context.Context, coffeeID int64) error {
	_, err := database.Query[tables.OrderCoffee](r.db.Conn(ctx)).Where("coffee_id", coffeeID).Delete(ctx)
	return database.MapError(err)
}
