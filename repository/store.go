package repository

import "coffeeshop_server/database"

// NewStore wires the bun gateways to db.
func NewStore(db *database.DB) *Store {
	return &Store{
		Tx:           db,
		Baristas:     NewBaristaRepository(db),
		Coffees:      NewCoffeeRepository(db),
		Orders:       NewOrderRepository(db),
		OrderCoffees: NewOrderCoffeeRepository(db),
	}
}
