package services

import (
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/mapper"
	"coffeeshop_server/repository"
	"coffeeshop_server/structs"
	"context"
	"strconv"

	"github.com/MonkyMars/gecho"
)

type CoffeeService struct {
	logger   *gecho.Logger
	store    *repository.Store
	mapper   *mapper.Mapper
	cache    *CacheService
	policy   structs.DeletePolicy
	repricer repricer
}

func NewCoffeeService(logger *gecho.Logger, store *repository.Store, m *mapper.Mapper, cache *CacheService, policy structs.DeletePolicy) *CoffeeService {
	return &CoffeeService{
		logger:   logger,
		store:    store,
		mapper:   m,
		cache:    cache,
		policy:   policy,
		repricer: repricer{store: store},
	}
}

func (cs *CoffeeService) Create(ctx context.Context, dto *structs.CoffeeCreate) (structs.CoffeePublic, error) {
	var out structs.CoffeePublic
	err := cs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := cs.mapper.CoffeeFromCreate(dto)
		if err != nil {
			return err
		}
		if c, err = cs.store.Coffees.Create(ctx, c); err != nil {
			return err
		}
		out = mapper.ToCoffeePublic(c)
		return nil
	})
	if err != nil {
		return out, err
	}
	cs.cache.InvalidateAll(ctx)
	cs.logger.Info("Coffee created", gecho.Field("id", out.ID))
	return out, nil
}

// Update replaces the coffee's scalars and reconciles its order set,
// unlinking before linking. Orders on either side of the change are
// repriced.
func (cs *CoffeeService) Update(ctx context.Context, id int64, dto *structs.CoffeeUpdate) (structs.CoffeePublic, error) {
	var out structs.CoffeePublic
	err := cs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := cs.requireExists(ctx, id); err != nil {
			return err
		}
		desired, err := cs.mapper.CoffeeFromUpdate(ctx, id, dto)
		if err != nil {
			return err
		}
		if _, err := cs.store.Coffees.Update(ctx, desired); err != nil {
			return err
		}

		existing, err := cs.store.Orders.FindByCoffeeID(ctx, id)
		if err != nil {
			return err
		}
		existingIDs := orderIDs(existing)
		wanted := desired.OrderIDs()

		for _, orderID := range difference(existingIDs, wanted) {
			if err := cs.store.OrderCoffees.Unlink(ctx, orderID, id); err != nil {
				return err
			}
		}
		for _, orderID := range difference(wanted, existingIDs) {
			if err := cs.store.OrderCoffees.Link(ctx, orderID, id); err != nil {
				return err
			}
		}

		if _, err := cs.repricer.repriceIDs(ctx, union(existingIDs, wanted)); err != nil {
			return err
		}

		c, err := cs.load(ctx, id)
		if err != nil {
			return err
		}
		out = mapper.ToCoffeePublic(c)
		return nil
	})
	if err != nil {
		return out, err
	}
	cs.cache.InvalidateAll(ctx)
	cs.logger.Info("Coffee updated", gecho.Field("id", id))
	return out, nil
}

// Delete refuses while orders still contain the coffee, unless the cascade
// policy is configured, in which case the coffee is removed from those
// orders and they are repriced.
func (cs *CoffeeService) Delete(ctx context.Context, id int64) error {
	err := cs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := cs.requireExists(ctx, id); err != nil {
			return err
		}
		orders, err := cs.store.Orders.FindByCoffeeID(ctx, id)
		if err != nil {
			return err
		}
		affected := orderIDs(orders)
		if len(affected) > 0 {
			if cs.policy != structs.DeletePolicyCascade {
				return lib.CoffeeHasReferences(id, affected)
			}
			if err := cs.store.OrderCoffees.UnlinkByCoffee(ctx, id); err != nil {
				return err
			}
			if _, err := cs.repricer.repriceIDs(ctx, affected); err != nil {
				return err
			}
		}
		if err := cs.store.Coffees.Delete(ctx, id); err != nil {
			return err
		}
		return cs.store.OrderCoffees.UnlinkByCoffee(ctx, id)
	})
	if err != nil {
		return err
	}
	cs.cache.InvalidateAll(ctx)
	cs.logger.Info("Coffee deleted", gecho.Field("id", id))
	return nil
}

func (cs *CoffeeService) FindByID(ctx context.Context, id int64) (structs.CoffeePublic, error) {
	if id < 0 {
		return structs.CoffeePublic{}, lib.NoValidID(id)
	}
	return cached(ctx, cs.cache, cs.cache.key("coffee", strconv.FormatInt(id, 10)), func() (structs.CoffeePublic, error) {
		var out structs.CoffeePublic
		err := cs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
			c, err := cs.load(ctx, id)
			if err != nil {
				return err
			}
			out = mapper.ToCoffeePublic(c)
			return nil
		})
		return out, err
	})
}

func (cs *CoffeeService) FindAll(ctx context.Context) ([]structs.CoffeePublic, error) {
	var out []structs.CoffeePublic
	err := cs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		coffees, err := cs.store.Coffees.FindAll(ctx)
		if err != nil {
			return err
		}
		if err := cs.attachOrders(ctx, coffees); err != nil {
			return err
		}
		out = mapper.ToCoffeePublics(coffees)
		return nil
	})
	return out, err
}

func (cs *CoffeeService) FindAllByPage(ctx context.Context, page, limit int) ([]structs.CoffeePublic, error) {
	var out []structs.CoffeePublic
	err := cs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		coffees, err := cs.store.Coffees.FindAllByPage(ctx, page, limit)
		if err != nil {
			return err
		}
		if err := cs.attachOrders(ctx, coffees); err != nil {
			return err
		}
		out = mapper.ToCoffeePublics(coffees)
		return nil
	})
	return out, err
}

func (cs *CoffeeService) requireExists(ctx context.Context, id int64) error {
	c, err := cs.store.Coffees.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return lib.CoffeeNotFound(id)
	}
	return nil
}

func (cs *CoffeeService) load(ctx context.Context, id int64) (*entity.Coffee, error) {
	c, err := cs.store.Coffees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, lib.CoffeeNotFound(id)
	}
	if err := cs.attachOrders(ctx, []*entity.Coffee{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (cs *CoffeeService) attachOrders(ctx context.Context, coffees []*entity.Coffee) error {
	if len(coffees) == 0 {
		return nil
	}
	byCoffee, err := cs.store.Orders.FindByCoffeeIDs(ctx, coffeeIDs(coffees))
	if err != nil {
		return err
	}
	for _, c := range coffees {
		if err := c.SetOrders(byCoffee[c.ID()]); err != nil {
			return err
		}
	}
	return nil
}
