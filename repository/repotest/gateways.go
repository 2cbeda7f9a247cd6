package repotest

import (
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"context"
	"slices"
)

type baristaGateway struct{ m *Memory }

func (g baristaGateway) restore(id int64) (*entity.Barista, error) {
	row := g.m.data.baristas[id]
	return entity.RestoreBarista(id, row.fullName, row.tipSize)
}

func (g baristaGateway) Create(ctx context.Context, b *entity.Barista) (*entity.Barista, error) {
	if err := g.m.lock(ctx, "barista.create"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	id := g.m.nextID("barista")
	g.m.data.baristas[id] = baristaRow{fullName: b.FullName(), tipSize: b.TipSize()}
	return g.restore(id)
}

func (g baristaGateway) Update(ctx context.Context, b *entity.Barista) (*entity.Barista, error) {
	if err := g.m.lock(ctx, "barista.update"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.baristas[b.ID()]; !ok {
		return nil, lib.BaristaNotFound(b.ID())
	}
	g.m.data.baristas[b.ID()] = baristaRow{fullName: b.FullName(), tipSize: b.TipSize()}
	return b, nil
}

func (g baristaGateway) Delete(ctx context.Context, id int64) error {
	if err := g.m.lock(ctx, "barista.delete"); err != nil {
		return err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.baristas[id]; !ok {
		return lib.BaristaNotFound(id)
	}
	for orderID, o := range g.m.data.orders {
		if o.baristaID == id {
			return fkViolation("order %d still references barista %d", orderID, id)
		}
	}
	delete(g.m.data.baristas, id)
	return nil
}

func (g baristaGateway) FindByID(ctx context.Context, id int64) (*entity.Barista, error) {
	if err := g.m.lock(ctx, "barista.findById"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.baristas[id]; !ok {
		return nil, nil
	}
	return g.restore(id)
}

func (g baristaGateway) FindAll(ctx context.Context) ([]*entity.Barista, error) {
	if err := g.m.lock(ctx, "barista.findAll"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	return g.collect(sortedKeys(g.m.data.baristas))
}

func (g baristaGateway) FindAllByPage(ctx context.Context, page, limit int) ([]*entity.Barista, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	if err := g.m.lock(ctx, "barista.findAllByPage"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	return g.collect(window(sortedKeys(g.m.data.baristas), page, limit))
}

func (g baristaGateway) FindAllByID(ctx context.Context, ids []int64) ([]*entity.Barista, error) {
	if err := g.m.lock(ctx, "barista.findAllById"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	return g.collect(present(ids, g.m.data.baristas))
}

func (g baristaGateway) collect(ids []int64) ([]*entity.Barista, error) {
	out := make([]*entity.Barista, 0, len(ids))
	for _, id := range ids {
		b, err := g.restore(id)
		if err != nil {
			return nil, lib.DataBase(err)
		}
		out = append(out, b)
	}
	return out, nil
}

type coffeeGateway struct{ m *Memory }

func (g coffeeGateway) restore(id int64) (*entity.Coffee, error) {
	row := g.m.data.coffees[id]
	return entity.RestoreCoffee(id, row.name, row.price)
}

func (g coffeeGateway) Create(ctx context.Context, c *entity.Coffee) (*entity.Coffee, error) {
	if err := g.m.lock(ctx, "coffee.create"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	id := g.m.nextID("coffee")
	g.m.data.coffees[id] = coffeeRow{name: c.Name(), price: c.Price()}
	return g.restore(id)
}

func (g coffeeGateway) Update(ctx context.Context, c *entity.Coffee) (*entity.Coffee, error) {
	if err := g.m.lock(ctx, "coffee.update"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.coffees[c.ID()]; !ok {
		return nil, lib.CoffeeNotFound(c.ID())
	}
	g.m.data.coffees[c.ID()] = coffeeRow{name: c.Name(), price: c.Price()}
	return c, nil
}

func (g coffeeGateway) Delete(ctx context.Context, id int64) error {
	if err := g.m.lock(ctx, "coffee.delete"); err != nil {
		return err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.coffees[id]; !ok {
		return lib.CoffeeNotFound(id)
	}
	for l := range g.m.data.links {
		if l.coffeeID == id {
			return fkViolation("order %d still references coffee %d", l.orderID, id)
		}
	}
	delete(g.m.data.coffees, id)
	return nil
}

func (g coffeeGateway) FindByID(ctx context.Context, id int64) (*entity.Coffee, error) {
	if err := g.m.lock(ctx, "coffee.findById"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.coffees[id]; !ok {
		return nil, nil
	}
	return g.restore(id)
}

func (g coffeeGateway) FindAll(ctx context.Context) ([]*entity.Coffee, error) {
	if err := g.m.lock(ctx, "coffee.findAll"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	return g.collect(sortedKeys(g.m.data.coffees))
}

func (g coffeeGateway) FindAllByPage(ctx context.Context, page, limit int) ([]*entity.Coffee, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	if err := g.m.lock(ctx, "coffee.findAllByPage"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	return g.collect(window(sortedKeys(g.m.data.coffees), page, limit))
}

func (g coffeeGateway) FindAllByID(ctx context.Context, ids []int64) ([]*entity.Coffee, error) {
	if err := g.m.lock(ctx, "coffee.findAllById"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	return g.collect(present(ids, g.m.data.coffees))
}

func (g coffeeGateway) FindByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]*entity.Coffee, error) {
	if err := g.m.lock(ctx, "coffee.findByOrderIds"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	out := make(map[int64][]*entity.Coffee, len(orderIDs))
	for _, orderID := range orderIDs {
		for _, coffeeID := range sortedKeys(g.m.data.coffees) {
			if _, ok := g.m.data.links[link{orderID, coffeeID}]; !ok {
				continue
			}
			c, err := g.restore(coffeeID)
			if err != nil {
				return nil, lib.DataBase(err)
			}
			out[orderID] = append(out[orderID], c)
		}
	}
	return out, nil
}

func (g coffeeGateway) collect(ids []int64) ([]*entity.Coffee, error) {
	out := make([]*entity.Coffee, 0, len(ids))
	for _, id := range ids {
		c, err := g.restore(id)
		if err != nil {
			return nil, lib.DataBase(err)
		}
		out = append(out, c)
	}
	return out, nil
}

type orderGateway struct{ m *Memory }

func (g orderGateway) restore(id int64) (*entity.Order, error) {
	row := g.m.data.orders[id]
	b, err := baristaGateway{g.m}.restore(row.baristaID)
	if err != nil {
		return nil, err
	}
	return entity.RestoreOrder(id, b, nil, row.created, row.completed, row.price)
}

func (g orderGateway) toRow(o *entity.Order) (orderRow, error) {
	baristaID := o.Barista().ID()
	if _, ok := g.m.data.baristas[baristaID]; !ok {
		return orderRow{}, fkViolation("barista %d does not exist", baristaID)
	}
	row := orderRow{baristaID: baristaID, created: o.Created(), price: o.Price()}
	if c := o.Completed(); c != nil {
		completed := *c
		row.completed = &completed
	}
	return row, nil
}

func (g orderGateway) Create(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	if err := g.m.lock(ctx, "order.create"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	row, err := g.toRow(o)
	if err != nil {
		return nil, err
	}
	id := g.m.nextID("order")
	g.m.data.orders[id] = row
	if err := o.SetID(id); err != nil {
		return nil, lib.DataBase(err)
	}
	return o, nil
}

func (g orderGateway) Update(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	if err := g.m.lock(ctx, "order.update"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.orders[o.ID()]; !ok {
		return nil, lib.OrderNotFound(o.ID())
	}
	row, err := g.toRow(o)
	if err != nil {
		return nil, err
	}
	g.m.data.orders[o.ID()] = row
	return o, nil
}

func (g orderGateway) Delete(ctx context.Context, id int64) error {
	if err := g.m.lock(ctx, "order.delete"); err != nil {
		return err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.orders[id]; !ok {
		return lib.OrderNotFound(id)
	}
	for l := range g.m.data.links {
		if l.orderID == id {
			return fkViolation("coffee %d is still linked to order %d", l.coffeeID, id)
		}
	}
	delete(g.m.data.orders, id)
	return nil
}

func (g orderGateway) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	if err := g.m.lock(ctx, "order.findById"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.orders[id]; !ok {
		return nil, nil
	}
	o, err := g.restore(id)
	if err != nil {
		return nil, lib.DataBase(err)
	}
	return o, nil
}

func (g orderGateway) FindAll(ctx context.Context) ([]*entity.Order, error) {
	if err := g.m.lock(ctx, "order.findAll"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	return g.collect(sortedKeys(g.m.data.orders))
}

func (g orderGateway) FindAllByPage(ctx context.Context, page, limit int) ([]*entity.Order, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	if err := g.m.lock(ctx, "order.findAllByPage"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	return g.collect(window(sortedKeys(g.m.data.orders), page, limit))
}

func (g orderGateway) FindAllByID(ctx context.Context, ids []int64) ([]*entity.Order, error) {
	if err := g.m.lock(ctx, "order.findAllById"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	return g.collect(present(ids, g.m.data.orders))
}

func (g orderGateway) FindByBaristaID(ctx context.Context, baristaID int64) ([]*entity.Order, error) {
	grouped, err := g.FindByBaristaIDs(ctx, []int64{baristaID})
	if err != nil {
		return nil, err
	}
	if orders := grouped[baristaID]; orders != nil {
		return orders, nil
	}
	return []*entity.Order{}, nil
}

func (g orderGateway) FindByBaristaIDs(ctx context.Context, baristaIDs []int64) (map[int64][]*entity.Order, error) {
	if err := g.m.lock(ctx, "order.findByBaristaIds"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	out := make(map[int64][]*entity.Order, len(baristaIDs))
	for _, baristaID := range baristaIDs {
		for _, id := range sortedKeys(g.m.data.orders) {
			if g.m.data.orders[id].baristaID != baristaID {
				continue
			}
			o, err := g.restore(id)
			if err != nil {
				return nil, lib.DataBase(err)
			}
			out[baristaID] = append(out[baristaID], o)
		}
	}
	return out, nil
}

func (g orderGateway) FindByCoffeeID(ctx context.Context, coffeeID int64) ([]*entity.Order, error) {
	grouped, err := g.FindByCoffeeIDs(ctx, []int64{coffeeID})
	if err != nil {
		return nil, err
	}
	if orders := grouped[coffeeID]; orders != nil {
		return orders, nil
	}
	return []*entity.Order{}, nil
}

func (g orderGateway) FindByCoffeeIDs(ctx context.Context, coffeeIDs []int64) (map[int64][]*entity.Order, error) {
	if err := g.m.lock(ctx, "order.findByCoffeeIds"); err != nil {
		return nil, err
	}
	defer g.m.mu.Unlock()
	out := make(map[int64][]*entity.Order, len(coffeeIDs))
	for _, coffeeID := range coffeeIDs {
		for _, id := range sortedKeys(g.m.data.orders) {
			if _, ok := g.m.data.links[link{id, coffeeID}]; !ok {
				continue
			}
			o, err := g.restore(id)
			if err != nil {
				return nil, lib.DataBase(err)
			}
			out[coffeeID] = append(out[coffeeID], o)
		}
	}
	return out, nil
}

func (g orderGateway) AssignBarista(ctx context.Context, orderIDs []int64, baristaID int64) error {
	if err := g.m.lock(ctx, "order.assignBarista"); err != nil {
		return err
	}
	defer g.m.mu.Unlock()
	if len(orderIDs) == 0 {
		return nil
	}
	if _, ok := g.m.data.baristas[baristaID]; !ok {
		return fkViolation("barista %d does not exist", baristaID)
	}
	for _, id := range orderIDs {
		if row, ok := g.m.data.orders[id]; ok {
			row.baristaID = baristaID
			g.m.data.orders[id] = row
		}
	}
	return nil
}

func (g orderGateway) collect(ids []int64) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(ids))
	for _, id := range ids {
		o, err := g.restore(id)
		if err != nil {
			return nil, lib.DataBase(err)
		}
		out = append(out, o)
	}
	return out, nil
}

type orderCoffeeGateway struct{ m *Memory }

func (g orderCoffeeGateway) Link(ctx context.Context, orderID, coffeeID int64) error {
	if err := g.m.lock(ctx, "orderCoffee.link"); err != nil {
		return err
	}
	defer g.m.mu.Unlock()
	if _, ok := g.m.data.orders[orderID]; !ok {
		return fkViolation("order %d does not exist", orderID)
	}
	if _, ok := g.m.data.coffees[coffeeID]; !ok {
		return fkViolation("coffee %d does not exist", coffeeID)
	}
	g.m.data.links[link{orderID, coffeeID}] = struct{}{}
	return nil
}

func (g orderCoffeeGateway) Unlink(ctx context.Context, orderID, coffeeID int64) error {
	if err := g.m.lock(ctx, "orderCoffee.unlink"); err != nil {
		return err
	}
	defer g.m.mu.Unlock()
	delete(g.m.data.links, link{orderID, coffeeID})
	return nil
}

func (g orderCoffeeGateway) UnlinkByOrder(ctx context.Context, orderID int64) error {
	if err := g.m.lock(ctx, "orderCoffee.unlinkByOrder"); err != nil {
		return err
	}
	defer g.m.mu.Unlock()
	for l := range g.m.data.links {
		if l.orderID == orderID {
			delete(g.m.data.links, l)
		}
	}
	return nil
}

func (g orderCoffeeGateway) UnlinkByCoffee(ctx context.Context, coffeeID int64) error {
	if err := g.m.lock(ctx, "orderCoffee.unlinkByCoffee"); err != nil {
		return err
	}
	defer g.m.mu.Unlock()
	for l := range g.m.data.links {
		if l.coffeeID == coffeeID {
			delete(g.m.data.links, l)
		}
	}
	return nil
}

// present keeps the ids that have a row, in ascending order without repeats.
func present[V any](ids []int64, rows map[int64]V) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := rows[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
