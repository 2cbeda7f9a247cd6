// Package mapper converts between the wire DTOs and the domain entities.
// Request mappers resolve id lists against the store; response mappers are
// pure projections.
package mapper

import (
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/repository"
	"coffeeshop_server/structs"
	"context"
	"time"
)

type Mapper struct {
	baristas repository.BaristaGateway
	coffees  repository.CoffeeGateway
	orders   repository.OrderGateway
}

func New(store *repository.Store) *Mapper {
	return &Mapper{baristas: store.Baristas, coffees: store.Coffees, orders: store.Orders}
}

// BaristaFromCreate builds an unstored barista. A missing tip falls back to
// entity.DefaultTipSize.
func (m *Mapper) BaristaFromCreate(dto *structs.BaristaCreate) (*entity.Barista, error) {
	if dto.FullName == nil {
		return nil, lib.NullParam("fullName")
	}
	tip := entity.DefaultTipSize
	if dto.TipSize != nil {
		tip = *dto.TipSize
	}
	return entity.NewBarista(*dto.FullName, tip)
}

// BaristaFromUpdate builds the barista's desired state with its order list
// resolved. id wins over dto.ID.
func (m *Mapper) BaristaFromUpdate(ctx context.Context, id int64, dto *structs.BaristaUpdate) (*entity.Barista, error) {
	if dto.FullName == nil {
		return nil, lib.NullParam("fullName")
	}
	if dto.TipSize == nil {
		return nil, lib.NullParam("tipSize")
	}
	if dto.OrderIDList == nil {
		return nil, lib.NullParam("orderIdList")
	}
	b, err := entity.RestoreBarista(id, *dto.FullName, *dto.TipSize)
	if err != nil {
		return nil, err
	}
	orders, err := m.ResolveOrders(ctx, "orderIdList", dto.OrderIDList)
	if err != nil {
		return nil, err
	}
	if err := b.SetOrders(orders); err != nil {
		return nil, err
	}
	return b, nil
}

func (m *Mapper) CoffeeFromCreate(dto *structs.CoffeeCreate) (*entity.Coffee, error) {
	if dto.Name == nil {
		return nil, lib.NullParam("name")
	}
	if dto.Price == nil {
		return nil, lib.NullParam("price")
	}
	return entity.NewCoffee(*dto.Name, *dto.Price)
}

func (m *Mapper) CoffeeFromUpdate(ctx context.Context, id int64, dto *structs.CoffeeUpdate) (*entity.Coffee, error) {
	if dto.Name == nil {
		return nil, lib.NullParam("name")
	}
	if dto.Price == nil {
		return nil, lib.NullParam("price")
	}
	if dto.OrderIDList == nil {
		return nil, lib.NullParam("orderIdList")
	}
	c, err := entity.RestoreCoffee(id, *dto.Name, *dto.Price)
	if err != nil {
		return nil, err
	}
	orders, err := m.ResolveOrders(ctx, "orderIdList", dto.OrderIDList)
	if err != nil {
		return nil, err
	}
	if err := c.SetOrders(orders); err != nil {
		return nil, err
	}
	return c, nil
}

// OrderFromCreate builds an open order created at now and priced from the
// resolved barista and coffees.
func (m *Mapper) OrderFromCreate(ctx context.Context, dto *structs.OrderCreate, now time.Time) (*entity.Order, error) {
	if dto.BaristaID == nil {
		return nil, lib.NullParam("baristaId")
	}
	if dto.CoffeeIDList == nil {
		return nil, lib.NullParam("coffeeIdList")
	}
	b, err := m.ResolveBarista(ctx, *dto.BaristaID)
	if err != nil {
		return nil, err
	}
	coffees, err := m.ResolveCoffees(ctx, "coffeeIdList", dto.CoffeeIDList)
	if err != nil {
		return nil, err
	}
	return entity.NewOrder(b, coffees, now)
}

// OrderFromUpdate builds the desired state of current. Any supplied price is
// discarded and recomputed. A created later than now is rejected. Timestamps
// that echo the stored value at wire precision keep the stored value.
func (m *Mapper) OrderFromUpdate(ctx context.Context, current *entity.Order, dto *structs.OrderUpdate, now time.Time) (*entity.Order, error) {
	if dto.BaristaID == nil {
		return nil, lib.NullParam("baristaId")
	}
	if dto.Created == nil {
		if dto.Completed != nil {
			return nil, lib.CreatedNotDefined()
		}
		return nil, lib.NullParam("created")
	}
	if dto.CoffeeIDList == nil {
		return nil, lib.NullParam("coffeeIdList")
	}
	created := keepStored(dto.Created.Time, current.Created())
	if created.After(now) {
		return nil, lib.CreatedInFuture(created, now)
	}
	completed := dto.Completed.TimePtr()
	if completed != nil && current.Completed() != nil {
		t := keepStored(*completed, *current.Completed())
		completed = &t
	}
	b, err := m.ResolveBarista(ctx, *dto.BaristaID)
	if err != nil {
		return nil, err
	}
	coffees, err := m.ResolveCoffees(ctx, "coffeeIdList", dto.CoffeeIDList)
	if err != nil {
		return nil, err
	}
	o, err := entity.RestoreOrder(current.ID(), b, coffees, created, completed, 0)
	if err != nil {
		return nil, err
	}
	o.Reprice()
	return o, nil
}

// keepStored returns stored when submitted is stored truncated to seconds.
func keepStored(submitted, stored time.Time) time.Time {
	if !stored.IsZero() && submitted.Equal(stored.Truncate(time.Second)) {
		return stored
	}
	return submitted
}

func (m *Mapper) ResolveBarista(ctx context.Context, id int64) (*entity.Barista, error) {
	if id < 0 {
		return nil, lib.NoValidID(id)
	}
	b, err := m.baristas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, lib.BaristaNotFound(id)
	}
	return b, nil
}

func (m *Mapper) ResolveCoffees(ctx context.Context, field string, ids []int64) ([]*entity.Coffee, error) {
	return resolve(ctx, field, ids, m.coffees.FindAllByID, (*entity.Coffee).ID, lib.CoffeeNotFound)
}

func (m *Mapper) ResolveOrders(ctx context.Context, field string, ids []int64) ([]*entity.Order, error) {
	return resolve(ctx, field, ids, m.orders.FindAllByID, (*entity.Order).ID, lib.OrderNotFound)
}
