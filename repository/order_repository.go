package repository

import (
	"coffeeshop_server/database"
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs/tables"
	"context"
)

// Selects join the barista relation, whose alias shadows the order's
// barista column, so every order column is qualified with "o.".
type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) query(ctx context.Context) *database.QueryBuilder[tables.Order] {
	return database.Query[tables.Order](r.db.Conn(ctx)).With("Barista")
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	row, err := database.Query[tables.Order](r.db.Conn(ctx)).Insert(ctx, orderToRow(o), "id")
	if err != nil {
		return nil, database.MapError(err)
	}
	if err := o.SetID(row.ID); err != nil {
		return nil, invalidRow("order", row.ID, err)
	}
	return o, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	affected, err := database.Query[tables.Order](r.db.Conn(ctx)).
		Where("id", o.ID()).
		Update(ctx, orderToRow(o), "id")
	if err != nil {
		return nil, database.MapError(err)
	}
	if affected == 0 {
		return nil, lib.OrderNotFound(o.ID())
	}
	return o, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	found, err := database.DeleteByID[tables.Order](ctx, r.db.Conn(ctx), "id", id)
	if err != nil {
		return database.MapError(err)
	}
	if !found {
		return lib.OrderNotFound(id)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	row, err := r.query(ctx).Where("o.id", id).First(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	if row == nil {
		return nil, nil
	}
	return orderFromRow(row)
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.query(ctx).OrderBy("o.id", database.ASC).All(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	return ordersFromRows(rows)
}

func (r *OrderRepository) FindAllByPage(ctx context.Context, page, limit int) ([]*entity.Order, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	offset, ok := database.PageOffset(page, limit)
	if !ok {
		return []*entity.Order{}, nil
	}
	rows, err := r.query(ctx).
		OrderBy("o.id", database.ASC).
		Offset(offset).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	return ordersFromRows(rows)
}

func (r *OrderRepository) FindAllByID(ctx context.Context, ids []int64) ([]*entity.Order, error) {
	if len(ids) == 0 {
		return []*entity.Order{}, nil
	}
	rows, err := r.query(ctx).WhereIn("o.id", ids).OrderBy("o.id", database.ASC).All(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	return ordersFromRows(rows)
}

func (r *OrderRepository) FindByBaristaID(ctx context.Context, baristaID int64) ([]*entity.Order, error) {
	rows, err := r.query(ctx).Where("o.barista", baristaID).OrderBy("o.id", database.ASC).All(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	return ordersFromRows(rows)
}

func (r *OrderRepository) FindByBaristaIDs(ctx context.Context, baristaIDs []int64) (map[int64][]*entity.Order, error) {
	out := make(map[int64][]*entity.Order, len(baristaIDs))
	if len(baristaIDs) == 0 {
		return out, nil
	}
	rows, err := r.query(ctx).WhereIn("o.barista", baristaIDs).OrderBy("o.id", database.ASC).All(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	orders, err := ordersFromRows(rows)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		id := o.Barista().ID()
		out[id] = append(out[id], o)
	}
	return out, nil
}

func (r *OrderRepository) FindByCoffeeID(ctx context.Context, coffeeID int64) ([]*entity.Order, error) {
	rows, err := r.query(ctx).
		WhereRaw("o.id IN (SELECT order_id FROM order_coffee WHERE coffee_id = ?)", coffeeID).
		OrderBy("o.id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, database.MapError(err)
	}
	return ordersFromRows(rows)
}

func (r *OrderRepository) FindByCoffeeIDs(ctx context.Context, coffeeIDs []int64) (map[int64][]*entity.Order, error) {
	out := make(map[int64][]*entity.Order, len(coffeeIDs))
	if len(coffeeIDs) == 0 {
		return out, nil
	}
	links, err := database.Query[tables.OrderCoffee](r.db.Conn(ctx)).
		WhereIn("coffee_id", coffeeIDs).
		OrderBy("order_id", database.ASC).
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
		if _, ok := seen[l.OrderID]; !ok {
			seen[l.OrderID] = struct{}{}
			ids = append(ids, l.OrderID)
		}
	}
	orders, err := r.FindAllByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*entity.Order, len(orders))
	for _, o := range orders {
		byID[o.ID()] = o
	}
	for _, l := range links {
		if o, ok := byID[l.OrderID]; ok {
			out[l.CoffeeID] = append(out[l.CoffeeID], o)
		}
	}
	return out, nil
}

func (r *OrderRepository) AssignBarista(ctx context.Context, orderIDs []int64, baristaID int64) error {
	if len(orderIDs) == 0 {
		return nil
	}
	_, err := database.Query[tables.Order](r.db.Conn(ctx)).
		WhereIn("id", orderIDs).
		Set(ctx, "barista", baristaID)
	return database.MapError(err)
}
