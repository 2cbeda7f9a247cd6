package entity

import (
	"coffeeshop_server/lib"
	"strings"
)

type Coffee struct {
	id     int64
	name   string
	price  float64
	orders []*Order
}

// NewCoffee creates a coffee that has not been stored yet.
func NewCoffee(name string, price float64) (*Coffee, error) {
	return RestoreCoffee(UnassignedID, name, price)
}

// RestoreCoffee rebuilds a coffee with a known id. UnassignedID is allowed.
func RestoreCoffee(id int64, name string, price float64) (*Coffee, error) {
	if id != UnassignedID {
		if err := validateID(id); err != nil {
			return nil, err
		}
	}
	c := &Coffee{id: id}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	if err := c.SetPrice(price); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Coffee) ID() int64 { return c.id }

func (c *Coffee) HasID() bool { return c.id != UnassignedID }

func (c *Coffee) SetID(id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Coffee) Name() string { return c.name }

func (c *Coffee) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return lib.NoValidName("name")
	}
	c.name = name
	return nil
}

func (c *Coffee) Price() float64 { return c.price }

func (c *Coffee) SetPrice(price float64) error {
	if !validAmount(price) {
		return lib.NoValidPrice(price)
	}
	c.price = price
	return nil
}

func (c *Coffee) Orders() []*Order { return c.orders }

func (c *Coffee) SetOrders(orders []*Order) error {
	if err := rejectDuplicateOrders(orders); err != nil {
		return err
	}
	c.orders = orders
	return nil
}

func (c *Coffee) OrderIDs() []int64 {
	return orderIDs(c.orders)
}

// Equal compares by id. Unassigned coffees are only equal to themselves.
func (c *Coffee) Equal(other *Coffee) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.id == UnassignedID || other.id == UnassignedID {
		return c == other
	}
	return c.id == other.id
}

func coffeeIDs(coffees []*Coffee) []int64 {
	ids := make([]int64, 0, len(coffees))
	for _, c := range coffees {
		if c.HasID() {
			ids = append(ids, c.ID())
		}
	}
	return ids
}
