package mapper

import (
	"coffeeshop_server/entity"
	"coffeeshop_server/structs"
)

// ToBaristaPublic projects the barista and the orders attached to it.
func ToBaristaPublic(b *entity.Barista) structs.BaristaPublic {
	return structs.BaristaPublic{
		ID:       b.ID(),
		FullName: b.FullName(),
		TipSize:  b.TipSize(),
		Orders:   ToOrderNoRefs(b.Orders()),
	}
}

func ToBaristaNoRef(b *entity.Barista) structs.BaristaNoRef {
	return structs.BaristaNoRef{ID: b.ID(), FullName: b.FullName(), TipSize: b.TipSize()}
}

func ToBaristaPublics(baristas []*entity.Barista) []structs.BaristaPublic {
	out := make([]structs.BaristaPublic, 0, len(baristas))
	for _, b := range baristas {
		out = append(out, ToBaristaPublic(b))
	}
	return out
}

func ToCoffeePublic(c *entity.Coffee) structs.CoffeePublic {
	return structs.CoffeePublic{
		ID:     c.ID(),
		Name:   c.Name(),
		Price:  c.Price(),
		Orders: ToOrderNoRefs(c.Orders()),
	}
}

func ToCoffeeNoRef(c *entity.Coffee) structs.CoffeeNoRef {
	return structs.CoffeeNoRef{ID: c.ID(), Name: c.Name(), Price: c.Price()}
}

func ToCoffeePublics(coffees []*entity.Coffee) []structs.CoffeePublic {
	out := make([]structs.CoffeePublic, 0, len(coffees))
	for _, c := range coffees {
		out = append(out, ToCoffeePublic(c))
	}
	return out
}

func ToCoffeeNoRefs(coffees []*entity.Coffee) []structs.CoffeeNoRef {
	out := make([]structs.CoffeeNoRef, 0, len(coffees))
	for _, c := range coffees {
		out = append(out, ToCoffeeNoRef(c))
	}
	return out
}

// ToOrderPublic nests the barista and coffees as NoRef shapes, which keeps
// the barista -> orders -> barista cycle out of the output.
func ToOrderPublic(o *entity.Order) structs.OrderPublic {
	return structs.OrderPublic{
		ID:        o.ID(),
		BaristaID: ToBaristaNoRef(o.Barista()),
		Created:   structs.NewTimestamp(o.Created()),
		Completed: structs.NewTimestampPtr(o.Completed()),
		Price:     o.Price(),
		Coffees:   ToCoffeeNoRefs(o.Coffees()),
	}
}

func ToOrderNoRef(o *entity.Order) structs.OrderNoRef {
	return structs.OrderNoRef{
		ID:        o.ID(),
		BaristaID: o.Barista().ID(),
		Created:   structs.NewTimestamp(o.Created()),
		Completed: structs.NewTimestampPtr(o.Completed()),
		Price:     o.Price(),
	}
}

func ToOrderPublics(orders []*entity.Order) []structs.OrderPublic {
	out := make([]structs.OrderPublic, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderPublic(o))
	}
	return out
}

func ToOrderNoRefs(orders []*entity.Order) []structs.OrderNoRef {
	out := make([]structs.OrderNoRef, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderNoRef(o))
	}
	return out
}
