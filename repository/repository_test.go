package repository_test

import (
	"coffeeshop_server/database"
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/repository"
	"coffeeshop_server/structs"
	"context"
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRollback = errors.New("rollback")

// openTestDB connects to TEST_DATABASE_URL and applies migrations, or skips.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	raw := os.Getenv("TEST_DATABASE_URL")
	if raw == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	u, err := url.Parse(raw)
	require.NoError(t, err)

	port := 5432
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		require.NoError(t, err)
	}
	password, _ := u.User.Password()
	sslMode := u.Query().Get("sslmode")
	if sslMode == "" {
		sslMode = "disable"
	}
	cfg := &structs.DatabaseConfig{
		Driver:       structs.DatabaseDriver(os.Getenv("TEST_DATABASE_DRIVER")),
		Host:         u.Hostname(),
		Port:         port,
		User:         u.User.Username(),
		Password:     password,
		Name:         strings.TrimPrefix(u.Path, "/"),
		SSLMode:      sslMode,
		MaxConns:     4,
		MinConns:     1,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		QueryTimeout: 10 * time.Second,
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg, gecho.NewDefaultLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))
	return db
}

// inRollbackTx runs fn in a transaction that is always rolled back.
func inRollbackTx(t *testing.T, db *database.DB, fn func(ctx context.Context, store *repository.Store)) {
	t.Helper()
	store := repository.NewStore(db)
	err := db.RunInTx(context.Background(), func(ctx context.Context) error {
		fn(ctx, store)
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)
}

func TestBunGatewaysRoundTrip(t *testing.T) {
	db := openTestDB(t)
	inRollbackTx(t, db, func(ctx context.Context, store *repository.Store) {
		b, err := entity.NewBarista("Anna", 0.2)
		require.NoError(t, err)
		b, err = store.Baristas.Create(ctx, b)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, b.ID(), int64(1))

		c1, err := entity.NewCoffee("Espresso", 100)
		require.NoError(t, err)
		c1, err = store.Coffees.Create(ctx, c1)
		require.NoError(t, err)
		c2, err := entity.NewCoffee("Cortado", 50)
		require.NoError(t, err)
		c2, err = store.Coffees.Create(ctx, c2)
		require.NoError(t, err)

		o, err := entity.NewOrder(b, []*entity.Coffee{c1, c2}, time.Now())
		require.NoError(t, err)
		o, err = store.Orders.Create(ctx, o)
		require.NoError(t, err)
		for _, c := range o.Coffees() {
			require.NoError(t, store.OrderCoffees.Link(ctx, o.ID(), c.ID()))
		}
		require.NoError(t, store.OrderCoffees.Link(ctx, o.ID(), c1.ID()))

		loaded, err := store.Orders.FindByID(ctx, o.ID())
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, b.ID(), loaded.Barista().ID())
		assert.Equal(t, "Anna", loaded.Barista().FullName())
		assert.InDelta(t, 180.0, loaded.Price(), 1e-9)

		coffees, err := store.Coffees.FindByOrderIDs(ctx, []int64{o.ID()})
		require.NoError(t, err)
		assert.Len(t, coffees[o.ID()], 2)

		byCoffee, err := store.Orders.FindByCoffeeID(ctx, c2.ID())
		require.NoError(t, err)
		require.Len(t, byCoffee, 1)
		assert.Equal(t, o.ID(), byCoffee[0].ID())

		err = store.OrderCoffees.Link(ctx, o.ID(), c2.ID()+1_000_000)
		assert.Equal(t, lib.KindKeyNotPresent, lib.KindOf(err))
	})
}

func TestBunGatewayNotFound(t *testing.T) {
	db := openTestDB(t)
	inRollbackTx(t, db, func(ctx context.Context, store *repository.Store) {
		missing, err := store.Coffees.FindByID(ctx, 9_999_999)
		require.NoError(t, err)
		assert.Nil(t, missing)

		err = store.Orders.Delete(ctx, 9_999_999)
		assert.ErrorIs(t, err, lib.ErrOrderNotFound)

		_, err = store.Baristas.FindAllByPage(ctx, 0, 0)
		assert.ErrorIs(t, err, lib.ErrNoValidLimit)
	})
}
