package services

import (
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/repository/repotest"
	"coffeeshop_server/structs"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// tickingClock returns a clock that advances one second per call.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

type fixture struct {
	sm  *ServiceManager
	mem *repotest.Memory
}

func newFixture(t *testing.T, policy structs.DeletePolicy) *fixture {
	t.Helper()
	store, mem := repotest.NewStore()
	cfg := &structs.Config{
		Cache:  &structs.CacheConfig{Enabled: false},
		Policy: &structs.PolicyConfig{Delete: policy},
	}
	clock := tickingClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	sm := NewServiceManager(gecho.NewDefaultLogger(), cfg, nil, store, WithClock(clock))
	return &fixture{sm: sm, mem: mem}
}

func (f *fixture) barista(t *testing.T, name string, tip float64) structs.BaristaPublic {
	t.Helper()
	b, err := f.sm.BaristaService.Create(context.Background(), &structs.BaristaCreate{FullName: ptr(name), TipSize: ptr(tip)})
	require.NoError(t, err)
	return b
}

func (f *fixture) coffee(t *testing.T, name string, price float64) structs.CoffeePublic {
	t.Helper()
	c, err := f.sm.CoffeeService.Create(context.Background(), &structs.CoffeeCreate{Name: ptr(name), Price: ptr(price)})
	require.NoError(t, err)
	return c
}

func (f *fixture) order(t *testing.T, baristaID int64, coffeeIDs ...int64) structs.OrderPublic {
	t.Helper()
	if coffeeIDs == nil {
		coffeeIDs = []int64{}
	}
	o, err := f.sm.OrderService.Create(context.Background(), &structs.OrderCreate{BaristaID: ptr(baristaID), CoffeeIDList: coffeeIDs})
	require.NoError(t, err)
	return o
}

func TestOrderCreatePricesAndLinks(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	b := f.barista(t, "Anna", 0.2)
	c1 := f.coffee(t, "Espresso", 100)
	c2 := f.coffee(t, "Cortado", 50)

	o := f.order(t, b.ID, c1.ID, c2.ID)
	assert.InDelta(t, 180.0, o.Price, 1e-9)
	assert.Nil(t, o.Completed)
	assert.Equal(t, b.ID, o.BaristaID.ID)
	assert.Len(t, o.Coffees, 2)
	assert.True(t, f.mem.HasLink(o.ID, c1.ID))
	assert.True(t, f.mem.HasLink(o.ID, c2.ID))

	loaded, err := f.sm.BaristaService.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, o.ID, loaded.Orders[0].ID)
}

func TestOrderCreateRollsBackWhenLinkFails(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	c := f.coffee(t, "Espresso", 2)
	f.mem.Fail = func(op string) error {
		if op == "orderCoffee.link" {
			return errors.New("connection reset")
		}
		return nil
	}

	_, err := f.sm.OrderService.Create(context.Background(), &structs.OrderCreate{
		BaristaID:    ptr(entity.DefaultBaristaID),
		CoffeeIDList: []int64{c.ID},
	})
	assert.Equal(t, lib.KindDataBase, lib.KindOf(err))

	_, _, orders, links := f.mem.Counts()
	assert.Zero(t, orders)
	assert.Zero(t, links)
}

func TestCompleteTwiceConflicts(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	o := f.order(t, entity.DefaultBaristaID)
	ctx := context.Background()

	done, err := f.sm.OrderService.Complete(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, done.Completed)
	assert.True(t, done.Completed.After(done.Created.Time))

	_, err = f.sm.OrderService.Complete(ctx, o.ID)
	assert.ErrorIs(t, err, lib.ErrOrderAlreadyCompleted)
	assert.Equal(t, lib.CategoryConflict, lib.Classify(err))

	_, err = f.sm.OrderService.Complete(ctx, 9999)
	assert.ErrorIs(t, err, lib.ErrOrderNotFound)
}

func TestUpdateCannotReopenOrder(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	ctx := context.Background()
	o := f.order(t, entity.DefaultBaristaID)
	_, err := f.sm.OrderService.Complete(ctx, o.ID)
	require.NoError(t, err)

	_, err = f.sm.OrderService.Update(ctx, o.ID, &structs.OrderUpdate{
		BaristaID:    ptr(entity.DefaultBaristaID),
		Created:      &o.Created,
		CoffeeIDList: []int64{},
	})
	assert.ErrorIs(t, err, lib.ErrOrderAlreadyCompleted)
}

func TestUpdateRejectsCreatedAfterClock(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	ctx := context.Background()
	o := f.order(t, entity.DefaultBaristaID)

	future := structs.NewTimestamp(o.Created.Add(24 * time.Hour))
	_, err := f.sm.OrderService.Update(ctx, o.ID, &structs.OrderUpdate{
		BaristaID:    ptr(entity.DefaultBaristaID),
		Created:      &future,
		CoffeeIDList: []int64{},
	})
	require.ErrorIs(t, err, lib.ErrCreatedInFuture)
	assert.Equal(t, lib.CategoryBadRequest, lib.Classify(err))

	got, err := f.sm.OrderService.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Created, got.Created)
}

func TestOrderUpdateReconcilesCoffees(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	ctx := context.Background()
	b := f.barista(t, "Anna", 0.1)
	c1 := f.coffee(t, "Espresso", 2)
	c2 := f.coffee(t, "Latte", 3)
	o := f.order(t, b.ID, c1.ID)

	updated, err := f.sm.OrderService.Update(ctx, o.ID, &structs.OrderUpdate{
		BaristaID:    ptr(b.ID),
		Created:      &o.Created,
		Price:        ptr(999.0),
		CoffeeIDList: []int64{c2.ID},
	})
	require.NoError(t, err)
	assert.InDelta(t, 3.3, updated.Price, 1e-9)
	assert.False(t, f.mem.HasLink(o.ID, c1.ID))
	assert.True(t, f.mem.HasLink(o.ID, c2.ID))

	_, err = f.sm.OrderService.Update(ctx, o.ID, &structs.OrderUpdate{
		BaristaID:    ptr(b.ID),
		Created:      &o.Created,
		CoffeeIDList: []int64{c2.ID, 777, 888},
	})
	require.ErrorIs(t, err, lib.ErrCoffeeNotFound)
	var e *lib.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []int64{777, 888}, e.IDs)
}

func TestQueueOrdersOpenOrdersByCreation(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	ctx := context.Background()
	first := f.order(t, entity.DefaultBaristaID)
	done := f.order(t, entity.DefaultBaristaID)
	second := f.order(t, entity.DefaultBaristaID)
	third := f.order(t, entity.DefaultBaristaID)
	_, err := f.sm.OrderService.Complete(ctx, done.ID)
	require.NoError(t, err)

	queue, err := f.sm.OrderService.GetQueue(ctx)
	require.NoError(t, err)
	var ids []int64
	for _, o := range queue {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int64{first.ID, second.ID, third.ID}, ids)
}

func TestBaristaDeleteMovesOrdersToDefault(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	ctx := context.Background()
	b := f.barista(t, "Anna", 0.5)
	c := f.coffee(t, "Espresso", 10)
	o := f.order(t, b.ID, c.ID)
	assert.InDelta(t, 15.0, o.Price, 1e-9)

	require.NoError(t, f.sm.BaristaService.Delete(ctx, b.ID))

	moved, err := f.sm.OrderService.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultBaristaID, moved.BaristaID.ID)
	assert.InDelta(t, 10.0, moved.Price, 1e-9)

	_, err = f.sm.BaristaService.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, lib.ErrBaristaNotFound)

	err = f.sm.BaristaService.Delete(ctx, entity.DefaultBaristaID)
	assert.ErrorIs(t, err, lib.ErrNoValidID)
}

func TestBaristaUpdateDetachesThenAttaches(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	ctx := context.Background()
	anna := f.barista(t, "Anna", 0.1)
	ben := f.barista(t, "Ben", 0)
	c := f.coffee(t, "Espresso", 10)
	kept := f.order(t, anna.ID, c.ID)
	dropped := f.order(t, anna.ID, c.ID)
	taken := f.order(t, ben.ID, c.ID)

	updated, err := f.sm.BaristaService.Update(ctx, anna.ID, &structs.BaristaUpdate{
		FullName:    ptr("Anna K"),
		TipSize:     ptr(0.2),
		OrderIDList: []int64{kept.ID, taken.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna K", updated.FullName)
	require.Len(t, updated.Orders, 2)
	for _, o := range updated.Orders {
		assert.InDelta(t, 12.0, o.Price, 1e-9)
	}

	fallback, err := f.sm.OrderService.FindByID(ctx, dropped.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultBaristaID, fallback.BaristaID.ID)
	assert.InDelta(t, 10.0, fallback.Price, 1e-9)

	_, err = f.sm.BaristaService.Update(ctx, anna.ID, &structs.BaristaUpdate{
		FullName:    ptr("Anna"),
		TipSize:     ptr(0.1),
		OrderIDList: []int64{kept.ID, kept.ID},
	})
	assert.ErrorIs(t, err, lib.ErrDuplicatedElements)
}

func TestCoffeeUpdateRepricesOrders(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	ctx := context.Background()
	b := f.barista(t, "Anna", 0.1)
	c := f.coffee(t, "Espresso", 10)
	other := f.coffee(t, "Latte", 5)
	linked := f.order(t, b.ID, c.ID)
	plain := f.order(t, b.ID, other.ID)

	updated, err := f.sm.CoffeeService.Update(ctx, c.ID, &structs.CoffeeUpdate{
		Name:        ptr("Espresso"),
		Price:       ptr(20.0),
		OrderIDList: []int64{linked.ID, plain.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated.Orders, 2)

	o, err := f.sm.OrderService.FindByID(ctx, linked.ID)
	require.NoError(t, err)
	assert.InDelta(t, 22.0, o.Price, 1e-9)

	o, err = f.sm.OrderService.FindByID(ctx, plain.ID)
	require.NoError(t, err)
	assert.InDelta(t, 27.5, o.Price, 1e-9)
}

func TestDeletePolicies(t *testing.T) {
	ctx := context.Background()

	t.Run("reject", func(t *testing.T) {
		f := newFixture(t, structs.DeletePolicyReject)
		c := f.coffee(t, "Espresso", 10)
		o := f.order(t, entity.DefaultBaristaID, c.ID)

		err := f.sm.CoffeeService.Delete(ctx, c.ID)
		assert.ErrorIs(t, err, lib.ErrCoffeeHasReferences)
		err = f.sm.OrderService.Delete(ctx, o.ID)
		assert.ErrorIs(t, err, lib.ErrOrderHasReferences)

		empty := f.order(t, entity.DefaultBaristaID)
		require.NoError(t, f.sm.OrderService.Delete(ctx, empty.ID))
		err = f.sm.OrderService.Delete(ctx, empty.ID)
		assert.ErrorIs(t, err, lib.ErrOrderNotFound)
	})

	t.Run("cascade", func(t *testing.T) {
		f := newFixture(t, structs.DeletePolicyCascade)
		c := f.coffee(t, "Espresso", 10)
		keep := f.coffee(t, "Latte", 4)
		o := f.order(t, entity.DefaultBaristaID, c.ID, keep.ID)

		require.NoError(t, f.sm.CoffeeService.Delete(ctx, c.ID))
		repriced, err := f.sm.OrderService.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, repriced.Price, 1e-9)
		assert.Len(t, repriced.Coffees, 1)

		require.NoError(t, f.sm.OrderService.Delete(ctx, o.ID))
		_, _, orders, links := f.mem.Counts()
		assert.Zero(t, orders)
		assert.Zero(t, links)
	})
}

func TestFindAllByPageValidatesWindow(t *testing.T) {
	f := newFixture(t, structs.DeletePolicyReject)
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		f.coffee(t, name, 1)
	}

	page, err := f.sm.CoffeeService.FindAllByPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	_, err = f.sm.CoffeeService.FindAllByPage(ctx, -1, 2)
	assert.ErrorIs(t, err, lib.ErrNoValidPage)
	_, err = f.sm.OrderService.FindAllByPage(ctx, 0, 0)
	assert.ErrorIs(t, err, lib.ErrNoValidLimit)
}

func TestDisabledCacheIsTransparent(t *testing.T) {
	cs := NewCacheService(gecho.NewDefaultLogger(), &structs.CacheConfig{Enabled: false})
	assert.False(t, cs.Enabled())
	assert.NoError(t, cs.Close())
	assert.Error(t, cs.Ping(context.Background()))

	calls := 0
	for range 2 {
		v, err := cached(context.Background(), cs, cs.key("x"), func() (int, error) {
			calls++
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, "coffeeshop:order:1", cs.key("order", "1"))
}
