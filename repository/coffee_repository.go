package repository

import (
	"coffeeshop_server/database"
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs/tables"
	"context"
)

type CoffeeRepository struct {
	db *database.DB
}

func NewCoffeeRepository(db *database.DB) *CoffeeRepository {
	return &CoffeeRepository{db: db}
}

func (r *CoffeeRepository) Create(ctx context.Context, c *entity.Coffee) (*entity.Coffee, error) {
	row, err := database.Query[tables.Coffee](r.db.Conn(ctx)).Insert(ctx, coffeeToRow(c), "id")
	if err != nil {
		return nil, database.MapError(err)
	}
	return coffeeFromRow(row)
}

func (r *CoffeeRepository) Update(ctx context.Context, c *entity.Coffee) (*entity.Coffee, error) {
	affected, err := database.Query[tables.Coffee](r.db.Conn(ctx)).
		Where("id", c.ID()).
		Update(ctx, coffeeToRow(c), "id")
	if err != nil {
		return nil, database.MapError(err)
	}
	if affected == 0 {
		return nil, lib.CoffeeNotFound(c.ID())
	}
	return c, nil
}

func (r *CoffeeRepository) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID[tables.Coffee](ctx, r.db.Conn(ctx), "id", id)
	if err != nil {
		return database.MapError(err)
	}
	if !found {
		return lib.CoffeeNotFound(id)
	}
	return nil
}

func (r *CoffeeRepository) FindByID(ctx context.Context, id int64) (*entity.Coffee, error) {
	row, err := database.FindByID[tables.Coffee](ctx, r.db.Conn(ctx), "id", id)
	if err != nil {
		return nil, database.MapError(err)
	}
	if row == nil {
		return nil, nil
	}
	return coffeeFromRow(row)
}

func (r *CoffeeRepository) FindAll(ctx context.Context) ([]*entity.Coffee, error) {
	rows, err := database.Query[tables.Coffee](r.db.Conn(ctx)).OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	return coffeesFromRows(rows)
}

func (r *CoffeeRepository) FindAllByPage(ctx context.Context, page, limit int) ([]*entity.Coffee, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	rows, err := database.Paginate[tables.Coffee](ctx, r.db.Conn(ctx), "id", page, limit)
	if err != nil {
		return nil, database.MapError(err)
	}
	return coffeesFromRows(rows)
}

func (r *CoffeeRepository) FindAllByID(ctx context.Context, ids []int64) ([]*entity.Coffee, error) {
	rows, err := database.FindByIDs[tables.Coffee](ctx, r.db.Conn(ctx), "id", ids)
	if err != nil {
		return nil, database.MapError(err)
	}
	return coffeesFromRows(rows)
}

// FindByOrderIDs reads the association rows first and then the coffees they
// point at, so each coffee is converted once however many orders share it.
func (r *CoffeeRepository) FindByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]*entity.Coffee, error) {
	out := make(map[int64][]*entity.Coffee, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	conn := r.db.Conn(ctx)

	links, err := database.Query[tables.OrderCoffee](conn).
		WhereIn("order_id", orderIDs).
		OrderBy("order_id", database.ASC).
		OrderBy("coffee_id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	if len(links) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(links))
	seen := make(map[int64]struct{}, len(links))
	for _, l := range links {
		if _, ok := seen[l.CoffeeID]; !ok {
			seen[l.CoffeeID] = struct{}{}
			ids = append(ids, l.CoffeeID)
		}
	}

	rows, err := database.FindByIDs[tables.Coffee](ctx, conn, "id", ids)
	if err != nil {
		return nil, database.MapError(err)
	}
	coffees, err := coffeesFromRows(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*entity.Coffee, len(coffees))
	for _, c := range coffees {
		byID[c.ID()] = c
	}

	for _, l := range links {
		if c, ok := byID[l.CoffeeID]; ok {
			out[l.OrderID] = append(out[l.OrderID], c)
		}
	}
	return out, nil
}
