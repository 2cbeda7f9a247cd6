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

type BaristaService struct {
	logger   *gecho.Logger
	store    *repository.Store
	mapper   *mapper.Mapper
	cache    *CacheService
	repricer repricer
}

func NewBaristaService(logger *gecho.Logger, store *repository.Store, m *mapper.Mapper, cache *CacheService) *BaristaService {
	return &BaristaService{
		logger:   logger,
		store:    store,
		mapper:   m,
		cache:    cache,
		repricer: repricer{store: store},
	}
}

func (bs *BaristaService) Create(ctx context.Context, dto *structs.BaristaCreate) (structs.BaristaPublic, error) {
	var out structs.BaristaPublic
	err := bs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		b, err := bs.mapper.BaristaFromCreate(dto)
		if err != nil {
			return err
		}
		if b, err = bs.store.Baristas.Create(ctx, b); err != nil {
			return err
		}
		out = mapper.ToBaristaPublic(b)
		return nil
	})
	if err != nil {
		return out, err
	}
	bs.cache.InvalidateAll(ctx)
	bs.logger.Info("Barista created", gecho.Field("id", out.ID))
	return out, nil
}

// Update replaces the barista's scalars and order set. Orders dropped from
// the set fall back to the default barista before the new ones are taken
// over; every order whose barista or tip changed is repriced.
func (bs *BaristaService) Update(ctx context.Context, id int64, dto *structs.BaristaUpdate) (structs.BaristaPublic, error) {
	var out structs.BaristaPublic
	err := bs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := bs.requireExists(ctx, id); err != nil {
			return err
		}
		desired, err := bs.mapper.BaristaFromUpdate(ctx, id, dto)
		if err != nil {
			return err
		}
		if _, err := bs.store.Baristas.Update(ctx, desired); err != nil {
			return err
		}

		current, err := bs.store.Orders.FindByBaristaID(ctx, id)
		if err != nil {
			return err
		}
		currentIDs := orderIDs(current)
		wanted := desired.OrderIDs()

		detach := difference(currentIDs, wanted)
		if !desired.IsDefault() {
			if err := bs.store.Orders.AssignBarista(ctx, detach, entity.DefaultBaristaID); err != nil {
				return err
			}
		}
		attach := difference(wanted, currentIDs)
		if err := bs.store.Orders.AssignBarista(ctx, attach, id); err != nil {
			return err
		}

		if _, err := bs.repricer.repriceIDs(ctx, union(currentIDs, wanted)); err != nil {
			return err
		}

		b, err := bs.load(ctx, id)
		if err != nil {
			return err
		}
		out = mapper.ToBaristaPublic(b)
		return nil
	})
	if err != nil {
		return out, err
	}
	bs.cache.InvalidateAll(ctx)
	bs.logger.Info("Barista updated", gecho.Field("id", id))
	return out, nil
}

// Delete moves the barista's orders to the default barista, reprices them
// and removes the row. The default barista itself cannot be deleted.
func (bs *BaristaService) Delete(ctx context.Context, id int64) error {
	if id == entity.DefaultBaristaID {
		return lib.NoValidIDMessage(id, "the default barista cannot be deleted")
	}
	err := bs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := bs.requireExists(ctx, id); err != nil {
			return err
		}
		orders, err := bs.store.Orders.FindByBaristaID(ctx, id)
		if err != nil {
			return err
		}
		ids := orderIDs(orders)
		if err := bs.store.Orders.AssignBarista(ctx, ids, entity.DefaultBaristaID); err != nil {
			return err
		}
		if _, err := bs.repricer.repriceIDs(ctx, ids); err != nil {
			return err
		}
		return bs.store.Baristas.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	bs.cache.InvalidateAll(ctx)
	bs.logger.Info("Barista deleted", gecho.Field("id", id))
	return nil
}

func (bs *BaristaService) FindByID(ctx context.Context, id int64) (structs.BaristaPublic, error) {
	if id < 0 {
		return structs.BaristaPublic{}, lib.NoValidID(id)
	}
	return cached(ctx, bs.cache, bs.cache.key("barista", strconv.FormatInt(id, 10)), func() (structs.BaristaPublic, error) {
		var out structs.BaristaPublic
		err := bs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
			b, err := bs.load(ctx, id)
			if err != nil {
				return err
			}
			out = mapper.ToBaristaPublic(b)
			return nil
		})
		return out, err
	})
}

func (bs *BaristaService) FindAll(ctx context.Context) ([]structs.BaristaPublic, error) {
	var out []structs.BaristaPublic
	err := bs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		baristas, err := bs.store.Baristas.FindAll(ctx)
		if err != nil {
			return err
		}
		if err := bs.attachOrders(ctx, baristas); err != nil {
			return err
		}
		out = mapper.ToBaristaPublics(baristas)
		return nil
	})
	return out, err
}

func (bs *BaristaService) FindAllByPage(ctx context.Context, page, limit int) ([]structs.BaristaPublic, error) {
	var out []structs.BaristaPublic
	err := bs.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		baristas, err := bs.store.Baristas.FindAllByPage(ctx, page, limit)
		if err != nil {
			return err
		}
		if err := bs.attachOrders(ctx, baristas); err != nil {
			return err
		}
		out = mapper.ToBaristaPublics(baristas)
		return nil
	})
	return out, err
}

func (bs *BaristaService) requireExists(ctx context.Context, id int64) error {
	b, err := bs.store.Baristas.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return lib.BaristaNotFound(id)
	}
	return nil
}

// load reads the barista with its orders attached.
func (bs *BaristaService) load(ctx context.Context, id int64) (*entity.Barista, error) {
	b, err := bs.store.Baristas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, lib.BaristaNotFound(id)
	}
	if err := bs.attachOrders(ctx, []*entity.Barista{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (bs *BaristaService) attachOrders(ctx context.Context, baristas []*entity.Barista) error {
	if len(baristas) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(baristas))
	for _, b := range baristas {
		ids = append(ids, b.ID())
	}
	byBarista, err := bs.store.Orders.FindByBaristaIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, b := range baristas {
		if err := b.SetOrders(byBarista[b.ID()]); err != nil {
			return err
		}
	}
	return nil
}
