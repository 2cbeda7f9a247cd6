package mapper

import (
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/repository"
	"coffeeshop_server/repository/repotest"
	"coffeeshop_server/structs"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func seedCoffees(t *testing.T, store *repository.Store, prices ...float64) []*entity.Coffee {
	t.Helper()
	var out []*entity.Coffee
	for _, p := range prices {
		c, err := entity.NewCoffee("Coffee", p)
		require.NoError(t, err)
		c, err = store.Coffees.Create(context.Background(), c)
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestBaristaFromCreateDefaultsTip(t *testing.T) {
	m := New(repotest.New().Store())

	b, err := m.BaristaFromCreate(&structs.BaristaCreate{FullName: ptr("Anna")})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultTipSize, b.TipSize())
	assert.False(t, b.HasID())

	_, err = m.BaristaFromCreate(&structs.BaristaCreate{FullName: ptr(""), TipSize: ptr(0.1)})
	assert.ErrorIs(t, err, lib.ErrNoValidName)

	_, err = m.BaristaFromCreate(&structs.BaristaCreate{})
	assert.ErrorIs(t, err, lib.ErrNullParam)
}

func TestResolveCoffees(t *testing.T) {
	store, _ := repotest.NewStore()
	m := New(store)
	coffees := seedCoffees(t, store, 1, 2)
	ctx := context.Background()

	t.Run("keeps input order", func(t *testing.T) {
		got, err := m.ResolveCoffees(ctx, "coffeeIdList", []int64{coffees[1].ID(), coffees[0].ID()})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, coffees[1].ID(), got[0].ID())
		assert.Equal(t, coffees[0].ID(), got[1].ID())
	})

	t.Run("duplicates", func(t *testing.T) {
		_, err := m.ResolveCoffees(ctx, "coffeeIdList", []int64{coffees[0].ID(), coffees[0].ID()})
		require.ErrorIs(t, err, lib.ErrDuplicatedElements)
		var e *lib.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, []int64{coffees[0].ID()}, e.IDs)
	})

	t.Run("every missing id is reported", func(t *testing.T) {
		_, err := m.ResolveCoffees(ctx, "coffeeIdList", []int64{coffees[0].ID(), 500, 700})
		require.ErrorIs(t, err, lib.ErrCoffeeNotFound)
		var e *lib.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, []int64{500, 700}, e.IDs)
	})

	t.Run("negative id", func(t *testing.T) {
		_, err := m.ResolveCoffees(ctx, "coffeeIdList", []int64{-3})
		assert.ErrorIs(t, err, lib.ErrNoValidID)
	})

	t.Run("empty list", func(t *testing.T) {
		got, err := m.ResolveCoffees(ctx, "coffeeIdList", []int64{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestOrderFromCreatePricesOrder(t *testing.T) {
	store, _ := repotest.NewStore()
	m := New(store)
	ctx := context.Background()

	b, err := entity.NewBarista("Anna", 0.2)
	require.NoError(t, err)
	b, err = store.Baristas.Create(ctx, b)
	require.NoError(t, err)
	coffees := seedCoffees(t, store, 100, 50)

	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	o, err := m.OrderFromCreate(ctx, &structs.OrderCreate{
		BaristaID:    ptr(b.ID()),
		CoffeeIDList: []int64{coffees[0].ID(), coffees[1].ID()},
	}, now)
	require.NoError(t, err)
	assert.InDelta(t, 180.0, o.Price(), 1e-9)
	assert.True(t, o.IsOpen())
	assert.Equal(t, now, o.Created())

	_, err = m.OrderFromCreate(ctx, &structs.OrderCreate{BaristaID: ptr(int64(999)), CoffeeIDList: []int64{}}, now)
	assert.ErrorIs(t, err, lib.ErrBaristaNotFound)
}

func storedOrder(t *testing.T, id int64, created time.Time, completed *time.Time) *entity.Order {
	t.Helper()
	b, err := entity.RestoreBarista(entity.DefaultBaristaID, "Anna", entity.DefaultTipSize)
	require.NoError(t, err)
	o, err := entity.RestoreOrder(id, b, nil, created, completed, 0)
	require.NoError(t, err)
	return o
}

func TestOrderFromUpdateIgnoresSuppliedPrice(t *testing.T) {
	store, _ := repotest.NewStore()
	m := New(store)
	coffees := seedCoffees(t, store, 3.3)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	created := structs.NewTimestamp(at)
	o, err := m.OrderFromUpdate(context.Background(), storedOrder(t, 11, at, nil), &structs.OrderUpdate{
		BaristaID:    ptr(entity.DefaultBaristaID),
		Created:      &created,
		Price:        ptr(1234.0),
		CoffeeIDList: []int64{coffees[0].ID()},
	}, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(11), o.ID())
	assert.InDelta(t, 3.3, o.Price(), 1e-9)
}

func TestOrderFromUpdateCompletedWithoutCreated(t *testing.T) {
	m := New(repotest.New().Store())
	now := time.Now()
	completed := structs.NewTimestamp(now)
	_, err := m.OrderFromUpdate(context.Background(), storedOrder(t, 1, now.Add(-time.Minute), nil), &structs.OrderUpdate{
		BaristaID:    ptr(entity.DefaultBaristaID),
		Completed:    &completed,
		CoffeeIDList: []int64{},
	}, now)
	assert.ErrorIs(t, err, lib.ErrCreatedNotDefined)
}

func TestOrderFromUpdateRejectsFutureCreated(t *testing.T) {
	m := New(repotest.New().Store())
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	current := storedOrder(t, 3, now.Add(-time.Hour), nil)

	future := structs.NewTimestamp(time.Date(2999, 5, 1, 8, 0, 0, 0, time.UTC))
	_, err := m.OrderFromUpdate(context.Background(), current, &structs.OrderUpdate{
		BaristaID:    ptr(entity.DefaultBaristaID),
		Created:      &future,
		CoffeeIDList: []int64{},
	}, now)
	require.ErrorIs(t, err, lib.ErrCreatedInFuture)
	assert.Equal(t, lib.CategoryBadRequest, lib.Classify(err))

	exact := structs.NewTimestamp(now)
	o, err := m.OrderFromUpdate(context.Background(), current, &structs.OrderUpdate{
		BaristaID:    ptr(entity.DefaultBaristaID),
		Created:      &exact,
		CoffeeIDList: []int64{},
	}, now)
	require.NoError(t, err)
	assert.Equal(t, now, o.Created())
}

func TestOrderFromUpdateEchoKeepsStoredPrecision(t *testing.T) {
	m := New(repotest.New().Store())
	created := time.Date(2024, 5, 1, 9, 0, 0, 100_000_000, time.UTC)
	completed := time.Date(2024, 5, 1, 9, 0, 0, 900_000_000, time.UTC)
	current := storedOrder(t, 4, created, &completed)

	// What a client reads back from GET /orders/4.
	body, err := json.Marshal(ToOrderPublic(current))
	require.NoError(t, err)
	var read struct {
		Created   *structs.Timestamp `json:"created"`
		Completed *structs.Timestamp `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(body, &read))
	echo := structs.OrderUpdate{
		BaristaID:    ptr(entity.DefaultBaristaID),
		Created:      read.Created,
		Completed:    read.Completed,
		CoffeeIDList: []int64{},
	}
	require.Equal(t, created.Truncate(time.Second), echo.Created.Time)

	o, err := m.OrderFromUpdate(context.Background(), current, &echo, completed.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, created, o.Created())
	require.NotNil(t, o.Completed())
	assert.Equal(t, completed, *o.Completed())

	moved := structs.NewTimestamp(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	echo.Created = &moved
	o, err = m.OrderFromUpdate(context.Background(), current, &echo, completed.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, moved.Time, o.Created())
}

func TestProjectionsUseEmptyLists(t *testing.T) {
	b, err := entity.RestoreBarista(1, "Anna", 0.15)
	require.NoError(t, err)

	body, err := json.Marshal(ToBaristaPublic(b))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"fullName":"Anna","tipSize":0.15,"orders":[]}`, string(body))

	o, err := entity.RestoreOrder(21, b, nil, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), nil, 0)
	require.NoError(t, err)
	body, err = json.Marshal(ToOrderPublic(o))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 21,
		"baristaId": {"id": 1, "fullName": "Anna", "tipSize": 0.15},
		"created": "2024-05-01T09:00:00",
		"completed": null,
		"price": 0,
		"coffees": []
	}`, string(body))
}
