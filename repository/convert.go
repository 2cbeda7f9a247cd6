package repository

import (
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/structs/tables"
	"fmt"
)

// invalidRow reports a stored row that no longer satisfies the domain rules.
func invalidRow(table string, id int64, err error) error {
	return &lib.Error{Kind: lib.KindDataBase, Message: fmt.Sprintf("stored %s %d is invalid", table, id), Err: err}
}

func validatePage(page, limit int) error {
	if page < 0 {
		return lib.NoValidPage(page)
	}
	if limit < 1 {
		return lib.NoValidLimit(limit)
	}
	return nil
}

func baristaToRow(b *entity.Barista) *tables.Barista {
	row := &tables.Barista{FullName: b.FullName(), TipSize: b.TipSize()}
	if b.HasID() {
		row.ID = b.ID()
	}
	return row
}

func baristaFromRow(row *tables.Barista) (*entity.Barista, error) {
	b, err := entity.RestoreBarista(row.ID, row.FullName, row.TipSize)
	if err != nil {
		return nil, invalidRow("barista", row.ID, err)
	}
	return b, nil
}

func baristasFromRows(rows []tables.Barista) ([]*entity.Barista, error) {
	out := make([]*entity.Barista, 0, len(rows))
	for i := range rows {
		b, err := baristaFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func coffeeToRow(c *entity.Coffee) *tables.Coffee {
	row := &tables.Coffee{Name: c.Name(), Price: c.Price()}
	if c.HasID() {
		row.ID = c.ID()
	}
	return row
}

func coffeeFromRow(row *tables.Coffee) (*entity.Coffee, error) {
	c, err := entity.RestoreCoffee(row.ID, row.Name, row.Price)
	if err != nil {
		return nil, invalidRow("coffee", row.ID, err)
	}
	return c, nil
}

func coffeesFromRows(rows []tables.Coffee) ([]*entity.Coffee, error) {
	out := make([]*entity.Coffee, 0, len(rows))
	for i := range rows {
		c, err := coffeeFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func orderToRow(o *entity.Order) *tables.Order {
	row := &tables.Order{
		BaristaID: o.Barista().ID(),
		Created:   o.Created(),
		Completed: o.Completed(),
		Price:     o.Price(),
	}
	if o.HasID() {
		row.ID = o.ID()
	}
	return row
}

// orderFromRow needs the barista relation to be loaded.
func orderFromRow(row *tables.Order) (*entity.Order, error) {
	if row.Barista == nil {
		return nil, invalidRow("order", row.ID, fmt.Errorf("barista %d was not loaded", row.BaristaID))
	}
	b, err := baristaFromRow(row.Barista)
	if err != nil {
		return nil, err
	}
	o, err := entity.RestoreOrder(row.ID, b, nil, row.Created, row.Completed, row.Price)
	if err != nil {
		return nil, invalidRow("order", row.ID, err)
	}
	return o, nil
}

func ordersFromRows(rows []tables.Order) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(rows))
	for i := range rows {
		o, err := orderFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
