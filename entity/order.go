package entity

import (
	"coffeeshop_server/lib"
	"time"
)

// Order is open until completed is set. Its price is derived from the
// coffees and the barista's tip and is never taken from callers.
type Order struct {
	id        int64
	barista   *Barista
	coffees   []*Coffee
	created   time.Time
	completed *time.Time
	price     float64
}

// NewOrder creates an open, unstored order and prices it.
func NewOrder(barista *Barista, coffees []*Coffee, created time.Time) (*Order, error) {
	o, err := RestoreOrder(UnassignedID, barista, coffees, created, nil, 0)
	if err != nil {
		return nil, err
	}
	o.Reprice()
	return o, nil
}

// RestoreOrder rebuilds an order from stored or submitted state. The price
// is validated but callers decide whether to Reprice.
func RestoreOrder(id int64, barista *Barista, coffees []*Coffee, created time.Time, completed *time.Time, price float64) (*Order, error) {
	if id != UnassignedID {
		if err := validateID(id); err != nil {
			return nil, err
		}
	}
	if created.IsZero() {
		if completed != nil {
			return nil, lib.CreatedNotDefined()
		}
		return nil, lib.NullParam("created")
	}
	o := &Order{id: id, created: normalizeTime(created)}
	if err := o.SetBarista(barista); err != nil {
		return nil, err
	}
	if err := o.SetCoffees(coffees); err != nil {
		return nil, err
	}
	if completed != nil {
		c := normalizeTime(*completed)
		if !c.After(o.created) {
			return nil, lib.CompletedBeforeCreated(o.created, c)
		}
		o.completed = &c
	}
	if err := o.SetPrice(price); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) ID() int64 { return o.id }

func (o *Order) HasID() bool { return o.id != UnassignedID }

func (o *Order) SetID(id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) Barista() *Barista { return o.barista }

func (o *Order) SetBarista(b *Barista) error {
	if b == nil {
		return lib.NullParam("baristaId")
	}
	o.barista = b
	return nil
}

func (o *Order) Coffees() []*Coffee { return o.coffees }

func (o *Order) CoffeeIDs() []int64 { return coffeeIDs(o.coffees) }

func (o *Order) SetCoffees(coffees []*Coffee) error {
	if dups := duplicateIDs(coffeeIDs(coffees)); len(dups) > 0 {
		return lib.DuplicatedElements("coffeeIdList", dups)
	}
	if coffees == nil {
		coffees = []*Coffee{}
	}
	o.coffees = coffees
	return nil
}

func (o *Order) Created() time.Time { return o.created }

func (o *Order) SetCreated(created time.Time) error {
	if created.IsZero() {
		return lib.NullParam("created")
	}
	created = normalizeTime(created)
	if o.completed != nil && !o.completed.After(created) {
		return lib.CompletedBeforeCreated(created, *o.completed)
	}
	o.created = created
	return nil
}

// Completed returns nil while the order is open.
func (o *Order) Completed() *time.Time { return o.completed }

func (o *Order) IsOpen() bool { return o.completed == nil }

// SetCompleted finalizes the order. It cannot be reopened or finalized twice.
func (o *Order) SetCompleted(completed time.Time) error {
	if o.created.IsZero() {
		return lib.CreatedNotDefined()
	}
	if o.completed != nil {
		return lib.OrderAlreadyCompleted(o.id)
	}
	completed = normalizeTime(completed)
	if !completed.After(o.created) {
		return lib.CompletedBeforeCreated(o.created, completed)
	}
	o.completed = &completed
	return nil
}

func (o *Order) Price() float64 { return o.price }

func (o *Order) SetPrice(price float64) error {
	if !validAmount(price) {
		return lib.NoValidPrice(price)
	}
	o.price = price
	return nil
}

// Reprice recomputes the price from the current coffees and barista and
// reports whether it changed.
func (o *Order) Reprice() bool {
	price := OrderPrice(o.coffees, o.barista.TipSize())
	changed := price != o.price
	o.price = price
	return changed
}

// Equal compares by id. Unassigned orders are only equal to themselves.
func (o *Order) Equal(other *Order) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.id == UnassignedID || other.id == UnassignedID {
		return o == other
	}
	return o.id == other.id
}
