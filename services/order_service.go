package services

import (
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/mapper"
	"coffeeshop_server/repository"
	"coffeeshop_server/structs"
	"context"
	"strconv"
	"time"

	"github.com/MonkyMars/gecho"
)

const queueCacheKey = "queue"

type OrderService struct {
	logger   *gecho.Logger
	store    *repository.Store
	mapper   *mapper.Mapper
	cache    *CacheService
	policy   structs.DeletePolicy
	now      func() time.Time
	repricer repricer
}

func NewOrderService(
	logger *gecho.Logger,
	store *repository.Store,
	m *mapper.Mapper,
	cache *CacheService,
	policy structs.DeletePolicy,
	now func() time.Time,
) *OrderService {
	if now == nil {
		now = time.Now
	}
	return &OrderService{
		logger:   logger,
		store:    store,
		mapper:   m,
		cache:    cache,
		policy:   policy,
		now:      now,
		repricer: repricer{store: store},
	}
}

// Create stamps the order with the current time, prices it and links its
// coffees.
func (os *OrderService) Create(ctx context.Context, dto *structs.OrderCreate) (structs.OrderPublic, error) {
	var out structs.OrderPublic
	err := os.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := os.mapper.OrderFromCreate(ctx, dto, os.now())
		if err != nil {
			return err
		}
		if o, err = os.store.Orders.Create(ctx, o); err != nil {
			return err
		}
		for _, c := range o.Coffees() {
			if err := os.store.OrderCoffees.Link(ctx, o.ID(), c.ID()); err != nil {
				return err
			}
		}
		out = mapper.ToOrderPublic(o)
		return nil
	})
	if err != nil {
		return out, err
	}
	os.cache.InvalidateAll(ctx)
	os.logger.Info("Order created",
		gecho.Field("id", out.ID),
		gecho.Field("barista", out.BaristaID.ID),
		gecho.Field("price", out.Price))
	return out, nil
}

// Update replaces the order's state and reconciles its coffees. The price is
// always recomputed and a completed order cannot be reopened.
func (os *OrderService) Update(ctx context.Context, id int64, dto *structs.OrderUpdate) (structs.OrderPublic, error) {
	var out structs.OrderPublic
	err := os.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := os.store.Orders.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return lib.OrderNotFound(id)
		}
		desired, err := os.mapper.OrderFromUpdate(ctx, existing, dto, os.now())
		if err != nil {
			return err
		}
		if !existing.IsOpen() && desired.IsOpen() {
			return lib.OrderAlreadyCompleted(id)
		}
		if _, err := os.store.Orders.Update(ctx, desired); err != nil {
			return err
		}

		linked, err := os.store.Coffees.FindByOrderIDs(ctx, []int64{id})
		if err != nil {
			return err
		}
		current := coffeeIDs(linked[id])
		wanted := desired.CoffeeIDs()
		for _, coffeeID := range difference(current, wanted) {
			if err := os.store.OrderCoffees.Unlink(ctx, id, coffeeID); err != nil {
				return err
			}
		}
		for _, coffeeID := range difference(wanted, current) {
			if err := os.store.OrderCoffees.Link(ctx, id, coffeeID); err != nil {
				return err
			}
		}

		out = mapper.ToOrderPublic(desired)
		return nil
	})
	if err != nil {
		return out, err
	}
	os.cache.InvalidateAll(ctx)
	os.logger.Info("Order updated", gecho.Field("id", id))
	return out, nil
}

// Complete finalizes an open order at the current time.
func (os *OrderService) Complete(ctx context.Context, id int64) (structs.OrderPublic, error) {
	var out structs.OrderPublic
	err := os.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := os.load(ctx, id)
		if err != nil {
			return err
		}
		if !o.IsOpen() {
			return lib.OrderAlreadyCompleted(id)
		}
		if err := o.SetCompleted(os.now()); err != nil {
			return err
		}
		if _, err := os.store.Orders.Update(ctx, o); err != nil {
			return err
		}
		out = mapper.ToOrderPublic(o)
		return nil
	})
	if err != nil {
		return out, err
	}
	os.cache.InvalidateAll(ctx)
	os.logger.Info("Order completed", gecho.Field("id", id))
	return out, nil
}

// Delete refuses while coffees are still linked, unless the cascade policy
// is configured.
func (os *OrderService) Delete(ctx context.Context, id int64) error {
	err := os.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := os.load(ctx, id)
		if err != nil {
			return err
		}
		if len(o.Coffees()) > 0 {
			if os.policy != structs.DeletePolicyCascade {
				return lib.OrderHasReferences(id)
			}
			if err := os.store.OrderCoffees.UnlinkByOrder(ctx, id); err != nil {
				return err
			}
		}
		if err := os.store.Orders.Delete(ctx, id); err != nil {
			return err
		}
		return os.store.OrderCoffees.UnlinkByOrder(ctx, id)
	})
	if err != nil {
		return err
	}
	os.cache.InvalidateAll(ctx)
	os.logger.Info("Order deleted", gecho.Field("id", id))
	return nil
}

// GetQueue lists the open orders, oldest first.
func (os *OrderService) GetQueue(ctx context.Context) ([]structs.OrderPublic, error) {
	return cached(ctx, os.cache, os.cache.key("order", queueCacheKey), func() ([]structs.OrderPublic, error) {
		var out []structs.OrderPublic
		err := os.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
			orders, err := os.store.Orders.FindAll(ctx)
			if err != nil {
				return err
			}
			queue := entity.Queue(orders)
			if err := os.repricer.attachCoffees(ctx, queue); err != nil {
				return err
			}
			out = mapper.ToOrderPublics(queue)
			return nil
		})
		return out, err
	})
}

func (os *OrderService) FindByID(ctx context.Context, id int64) (structs.OrderPublic, error) {
	if id < 0 {
		return structs.OrderPublic{}, lib.NoValidID(id)
	}
	return cached(ctx, os.cache, os.cache.key("order", strconv.FormatInt(id, 10)), func() (structs.OrderPublic, error) {
		var out structs.OrderPublic
		err := os.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
			o, err := os.load(ctx, id)
			if err != nil {
				return err
			}
			out = mapper.ToOrderPublic(o)
			return nil
		})
		return out, err
	})
}

func (os *OrderService) FindAll(ctx context.Context) ([]structs.OrderPublic, error) {
	var out []structs.OrderPublic
	err := os.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		orders, err := os.store.Orders.FindAll(ctx)
		if err != nil {
			return err
		}
		if err := os.repricer.attachCoffees(ctx, orders); err != nil {
			return err
		}
		out = mapper.ToOrderPublics(orders)
		return nil
	})
	return out, err
}

func (os *OrderService) FindAllByPage(ctx context.Context, page, limit int) ([]structs.OrderPublic, error) {
	var out []structs.OrderPublic
	err := os.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		orders, err := os.store.Orders.FindAllByPage(ctx, page, limit)
		if err != nil {
			return err
		}
		if err := os.repricer.attachCoffees(ctx, orders); err != nil {
			return err
		}
		out = mapper.ToOrderPublics(orders)
		return nil
	})
	return out, err
}

// load reads the order with its coffees attached.
func (os *OrderService) load(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := os.store.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, lib.OrderNotFound(id)
	}
	if err := os.repricer.attachCoffees(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}
