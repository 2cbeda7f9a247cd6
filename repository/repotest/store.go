// Package repotest provides an in-memory Store for tests. It mirrors the
// schema's constraints: sequence ids, foreign keys and the default barista.
package repotest

import (
	"coffeeshop_server/database"
	"coffeeshop_server/entity"
	"coffeeshop_server/lib"
	"coffeeshop_server/repository"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
)

const (
	firstID = 1
	idStep  = 10
)

var errForeignKey = errors.New("violates foreign key constraint")

type baristaRow struct {
	fullName string
	tipSize  float64
}

type coffeeRow struct {
	name  string
	price float64
}

type orderRow struct {
	baristaID int64
	created   time.Time
	completed *time.Time
	price     float64
}

type link struct{ orderID, coffeeID int64 }

type state struct {
	baristas map[int64]baristaRow
	coffees  map[int64]coffeeRow
	orders   map[int64]orderRow
	links    map[link]struct{}
	next     map[string]int64
}

func (s *state) clone() *state {
	return &state{
		baristas: maps.Clone(s.baristas),
		coffees:  maps.Clone(s.coffees),
		orders:   maps.Clone(s.orders),
		links:    maps.Clone(s.links),
		next:     maps.Clone(s.next),
	}
}

// Memory holds every table behind one lock. RunInTx serializes units of
// work and restores a snapshot when fn fails.
type Memory struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data *state

	// Fail, when set, is consulted before every gateway call. A non-nil
	// result is returned as a DataBase error.
	Fail func(op string) error
}

func New() *Memory {
	m := &Memory{data: &state{
		baristas: map[int64]baristaRow{},
		coffees:  map[int64]coffeeRow{},
		orders:   map[int64]orderRow{},
		links:    map[link]struct{}{},
		next:     map[string]int64{"barista": firstID, "coffee": firstID, "order": firstID},
	}}
	m.data.baristas[entity.DefaultBaristaID] = baristaRow{fullName: "Default barista", tipSize: 0}
	return m
}

// NewStore returns a Store whose gateways all share a fresh Memory.
func NewStore() (*repository.Store, *Memory) {
	m := New()
	return m.Store(), m
}

func (m *Memory) Store() *repository.Store {
	return &repository.Store{
		Tx:           m,
		Baristas:     baristaGateway{m},
		Coffees:      coffeeGateway{m},
		Orders:       orderGateway{m},
		OrderCoffees: orderCoffeeGateway{m},
	}
}

type txKey struct{}

func (m *Memory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.data.clone()
	m.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			m.mu.Lock()
			m.data = snapshot
			m.mu.Unlock()
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// Counts reports the number of rows per table, for assertions.
func (m *Memory) Counts() (baristas, coffees, orders, links int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data.baristas), len(m.data.coffees), len(m.data.orders), len(m.data.links)
}

// HasLink reports whether the (order, coffee) pair is stored.
func (m *Memory) HasLink(orderID, coffeeID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data.links[link{orderID, coffeeID}]
	return ok
}

// lock acquires the table lock after checking ctx and the Fail hook.
func (m *Memory) lock(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return lib.DataBase(err)
	}
	if m.Fail != nil {
		if err := m.Fail(op); err != nil {
			return lib.DataBase(err)
		}
	}
	m.mu.Lock()
	return nil
}

func (m *Memory) nextID(table string) int64 {
	id := m.data.next[table]
	m.data.next[table] = id + idStep
	return id
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

func window[T any](items []T, page, limit int) []T {
	start, ok := database.PageOffset(page, limit)
	if !ok || start >= len(items) {
		return []T{}
	}
	return items[start:min(start+limit, len(items))]
}

func sortedKeys[V any](rows map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(rows))
}

func fkViolation(format string, args ...any) error {
	return lib.KeyNotPresent(fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errForeignKey))
}
