package entity

import (
	"coffeeshop_server/lib"
	"strings"
)

// DefaultTipSize applies when a barista is created without a tip.
const DefaultTipSize = 0.1

type Barista struct {
	id       int64
	fullName string
	tipSize  float64
	orders   []*Order
}

// NewBarista creates a barista that has not been stored yet.
func NewBarista(fullName string, tipSize float64) (*Barista, error) {
	return RestoreBarista(UnassignedID, fullName, tipSize)
}

// RestoreBarista rebuilds a barista with a known id. UnassignedID is allowed.
func RestoreBarista(id int64, fullName string, tipSize float64) (*Barista, error) {
	if id != UnassignedID {
		if err := validateID(id); err != nil {
			return nil, err
		}
	}
	b := &Barista{id: id}
	if err := b.SetFullName(fullName); err != nil {
		return nil, err
	}
	if err := b.SetTipSize(tipSize); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Barista) ID() int64 { return b.id }

func (b *Barista) HasID() bool { return b.id != UnassignedID }

func (b *Barista) SetID(id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Barista) FullName() string { return b.fullName }

func (b *Barista) SetFullName(fullName string) error {
	if strings.TrimSpace(fullName) == "" {
		return lib.NoValidName("fullName")
	}
	b.fullName = fullName
	return nil
}

func (b *Barista) TipSize() float64 { return b.tipSize }

func (b *Barista) SetTipSize(tipSize float64) error {
	if !validAmount(tipSize) {
		return lib.NoValidTipSize(tipSize)
	}
	b.tipSize = tipSize
	return nil
}

// IsDefault reports whether this is the reserved fallback barista.
func (b *Barista) IsDefault() bool { return b.id == DefaultBaristaID }

func (b *Barista) Orders() []*Order { return b.orders }

func (b *Barista) SetOrders(orders []*Order) error {
	if err := rejectDuplicateOrders(orders); err != nil {
		return err
	}
	b.orders = orders
	return nil
}

// OrderIDs lists the ids of the orders currently attached in memory.
func (b *Barista) OrderIDs() []int64 {
	return orderIDs(b.orders)
}

// Equal compares by id. Unassigned baristas are only equal to themselves.
func (b *Barista) Equal(other *Barista) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.id == UnassignedID || other.id == UnassignedID {
		return b == other
	}
	return b.id == other.id
}

func rejectDuplicateOrders(orders []*Order) error {
	if dups := duplicateIDs(orderIDs(orders)); len(dups) > 0 {
		return lib.DuplicatedElements("orderIdList", dups)
	}
	return nil
}

func orderIDs(orders []*Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		if o.HasID() {
			ids = append(ids, o.ID())
		}
	}
	return ids
}
